package engine

import (
	"strings"

	"checkers/internal/core"
)

// Board glyphs, matching the chat shell's vocabulary.
const (
	glyphDark      = "⬜ "
	glyphLight     = "⬛ "
	glyphRedMan    = "🔴 "
	glyphRedKing   = "👑 "
	glyphBlackMan  = "⚫ "
	glyphBlackKing = "♛ "
)

// Render returns the emoji board grid with row and column labels.
func (g *Game) Render() string {
	lines := make([]string, 0, BoardSize+1)
	lines = append(lines, "  0 1 2 3 4 5 6 7")

	for row := 0; row < BoardSize; row++ {
		var sb strings.Builder
		sb.WriteString(string(rune('0'+row)) + " ")
		for col := 0; col < BoardSize; col++ {
			switch g.board[row][col] {
			case core.CellEmpty:
				if DarkSquare(row, col) {
					sb.WriteString(glyphDark)
				} else {
					sb.WriteString(glyphLight)
				}
			case core.CellRedMan:
				sb.WriteString(glyphRedMan)
			case core.CellRedKing:
				sb.WriteString(glyphRedKing)
			case core.CellBlackMan:
				sb.WriteString(glyphBlackMan)
			case core.CellBlackKing:
				sb.WriteString(glyphBlackKing)
			}
		}
		lines = append(lines, sb.String())
	}

	return strings.Join(lines, "\n")
}

// Cells returns the structured board projection for the HTTP shell:
// color names on occupied squares, nil elsewhere.
func (g *Game) Cells() [][]*string {
	cells := make([][]*string, BoardSize)
	for row := range cells {
		cells[row] = make([]*string, BoardSize)
		for col := range cells[row] {
			if name := g.board[row][col].Name(); name != "" {
				n := name
				cells[row][col] = &n
			}
		}
	}
	return cells
}
