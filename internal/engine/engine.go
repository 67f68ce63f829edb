// Package engine implements the checkers rules: board state, legal-move
// generation with mandatory captures, multi-jump chains, promotion, and
// terminal-state detection. It has no notion of users or sessions.
package engine

import (
	"checkers/internal/core"
)

const BoardSize = 8

// Game holds one checkers game. All mutation goes through ApplyMove;
// callers sharing a Game across goroutines must serialize access.
type Game struct {
	board    [BoardSize][BoardSize]core.Cell
	turn     core.Color
	gameOver bool
	winner   core.Color
}

// New returns a game with the standard opening layout, Red to move.
func New() *Game {
	g := &Game{turn: core.ColorRed}

	// Black occupies the three rows nearest row 0, Red the three rows
	// nearest row 7, dark squares only.
	for row := 0; row < 3; row++ {
		for col := 0; col < BoardSize; col++ {
			if DarkSquare(row, col) {
				g.board[row][col] = core.CellBlackMan
			}
		}
	}
	for row := 5; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if DarkSquare(row, col) {
				g.board[row][col] = core.CellRedMan
			}
		}
	}

	return g
}

// OnBoard reports whether the position is inside the 8x8 grid.
func OnBoard(row, col int) bool {
	return row >= 0 && row < BoardSize && col >= 0 && col < BoardSize
}

// DarkSquare reports whether the cell is playable. Light squares are
// never occupied.
func DarkSquare(row, col int) bool {
	return (row+col)%2 == 1
}

func (g *Game) Turn() core.Color {
	return g.turn
}

func (g *Game) GameOver() bool {
	return g.gameOver
}

// Winner returns the winning side. ok is false while the game is ongoing.
func (g *Game) Winner() (core.Color, bool) {
	return g.winner, g.gameOver
}

// PieceAt returns the cell contents. Out-of-range positions read as empty.
func (g *Game) PieceAt(row, col int) core.Cell {
	if !OnBoard(row, col) {
		return core.CellEmpty
	}
	return g.board[row][col]
}

// directions returns the diagonals a piece may move along: men only
// toward the opponent's edge, kings all four.
func directions(piece core.Cell) [][2]int {
	switch piece {
	case core.CellRedMan:
		return [][2]int{{-1, -1}, {-1, 1}}
	case core.CellBlackMan:
		return [][2]int{{1, -1}, {1, 1}}
	case core.CellRedKing, core.CellBlackKing:
		return [][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	default:
		return nil
	}
}

// LegalDestinations returns every position the piece at (row, col) may
// move to right now. The result is empty when the cell is empty or the
// piece does not belong to the side to move. A piece with any capture
// available must capture: capture destinations exclude quiet steps.
func (g *Game) LegalDestinations(row, col int) []core.Position {
	piece := g.PieceAt(row, col)
	color, occupied := piece.Color()
	if !occupied || color != g.turn {
		return nil
	}

	if jumps := g.jumpDestinations(row, col, piece); len(jumps) > 0 {
		return jumps
	}

	var moves []core.Position
	for _, d := range directions(piece) {
		r, c := row+d[0], col+d[1]
		if OnBoard(r, c) && g.board[r][c] == core.CellEmpty {
			moves = append(moves, core.Position{Row: r, Col: c})
		}
	}
	return moves
}

// jumpDestinations returns the landing squares of every capture available
// to the piece: adjacent opponent piece, empty square behind it.
func (g *Game) jumpDestinations(row, col int, piece core.Cell) []core.Position {
	color, occupied := piece.Color()
	if !occupied {
		return nil
	}

	var jumps []core.Position
	for _, d := range directions(piece) {
		landRow, landCol := row+2*d[0], col+2*d[1]
		if !OnBoard(landRow, landCol) || g.board[landRow][landCol] != core.CellEmpty {
			continue
		}
		overColor, overOccupied := g.PieceAt(row+d[0], col+d[1]).Color()
		if !overOccupied || overColor == color {
			continue
		}
		jumps = append(jumps, core.Position{Row: landRow, Col: landCol})
	}
	return jumps
}

// ApplyMove moves the piece at from to to. It returns false, leaving the
// state unchanged, when the game is over or the destination is not among
// LegalDestinations(from). A capture that leaves the moved piece with a
// further capture keeps the turn with the mover; otherwise the turn
// toggles. The terminal check runs last.
func (g *Game) ApplyMove(fromRow, fromCol, toRow, toCol int) bool {
	if g.gameOver {
		return false
	}

	legal := false
	for _, p := range g.LegalDestinations(fromRow, fromCol) {
		if p.Row == toRow && p.Col == toCol {
			legal = true
			break
		}
	}
	if !legal {
		return false
	}

	piece := g.board[fromRow][fromCol]
	g.board[fromRow][fromCol] = core.CellEmpty

	// Captures land two rows away; the jumped piece sits midway.
	captured := false
	if abs(toRow-fromRow) == 2 {
		g.board[(fromRow+toRow)/2][(fromCol+toCol)/2] = core.CellEmpty
		captured = true
	}

	// Promotion happens at the landing square, before the chain check, so
	// a fresh king's backward captures count toward continuing the turn.
	switch {
	case piece == core.CellRedMan && toRow == 0:
		piece = core.CellRedKing
	case piece == core.CellBlackMan && toRow == BoardSize-1:
		piece = core.CellBlackKing
	}
	g.board[toRow][toCol] = piece

	if !captured || len(g.jumpDestinations(toRow, toCol, piece)) == 0 {
		g.turn = core.OppositeColor(g.turn)
	}

	g.checkGameOver()
	return true
}

// checkGameOver ends the game when one side has no pieces or the side to
// move has no legal destination anywhere. A side unable to move loses.
func (g *Game) checkGameOver() {
	var redLeft, blackLeft int
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			switch color, occupied := g.board[row][col].Color(); {
			case !occupied:
			case color == core.ColorRed:
				redLeft++
			default:
				blackLeft++
			}
		}
	}

	if redLeft == 0 {
		g.gameOver = true
		g.winner = core.ColorBlack
		return
	}
	if blackLeft == 0 {
		g.gameOver = true
		g.winner = core.ColorRed
		return
	}

	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if color, occupied := g.board[row][col].Color(); occupied && color == g.turn {
				if len(g.LegalDestinations(row, col)) > 0 {
					return
				}
			}
		}
	}

	g.gameOver = true
	g.winner = core.OppositeColor(g.turn)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
