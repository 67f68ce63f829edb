package engine

import (
	"strconv"
	"strings"
)

// ParseMove extracts board coordinates from move text. Two forms are
// tried in order: "5,0-4,1" (row,col pairs) and algebraic "a6-b5" where
// the file letter maps to the column and the rank digit minus one to the
// row. Letter case does not matter. Malformed text yields ok == false;
// the parser is purely syntactic and enforces no move legality.
func ParseMove(text string) (fromRow, fromCol, toRow, toCol int, ok bool) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) != 2 {
		return 0, 0, 0, 0, false
	}
	from := strings.TrimSpace(parts[0])
	to := strings.TrimSpace(parts[1])

	if fromRow, fromCol, ok = parsePair(from); ok {
		if toRow, toCol, ok = parsePair(to); ok {
			return fromRow, fromCol, toRow, toCol, true
		}
	}

	if fromRow, fromCol, ok = parseSquare(from); ok {
		if toRow, toCol, ok = parseSquare(to); ok {
			return fromRow, fromCol, toRow, toCol, true
		}
	}

	return 0, 0, 0, 0, false
}

// parsePair parses "row,col".
func parsePair(s string) (row, col int, ok bool) {
	fields := strings.Split(s, ",")
	if len(fields) != 2 {
		return 0, 0, false
	}
	row, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, false
	}
	col, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, false
	}
	return row, col, true
}

// parseSquare parses an algebraic square like "a6": file a-h, rank 1-8.
func parseSquare(s string) (row, col int, ok bool) {
	s = strings.ToLower(s)
	if len(s) < 2 {
		return 0, 0, false
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, 0, false
	}
	return int(rank - '1'), int(file - 'a'), true
}
