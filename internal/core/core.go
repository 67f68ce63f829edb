package core

// Color identifies a side. Red moves first.
type Color int

const (
	ColorRed Color = iota + 1
	ColorBlack
)

func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlack:
		return "black"
	default:
		return "-"
	}
}

// ParseColor maps the wire names "red" and "black" to a Color.
func ParseColor(s string) (Color, bool) {
	switch s {
	case "red":
		return ColorRed, true
	case "black":
		return ColorBlack, true
	default:
		return 0, false
	}
}

func OppositeColor(c Color) Color {
	if c == ColorRed {
		return ColorBlack
	}
	return ColorRed
}

// Cell is the content of one board square.
type Cell int

const (
	CellEmpty Cell = iota
	CellRedMan
	CellRedKing
	CellBlackMan
	CellBlackKing
)

// Color returns the owning side of a piece. ok is false for an empty cell.
func (c Cell) Color() (Color, bool) {
	switch c {
	case CellRedMan, CellRedKing:
		return ColorRed, true
	case CellBlackMan, CellBlackKing:
		return ColorBlack, true
	default:
		return 0, false
	}
}

func (c Cell) IsKing() bool {
	return c == CellRedKing || c == CellBlackKing
}

// Name returns the wire vocabulary used by both shells:
// "red", "red_king", "black", "black_king", or "" for an empty cell.
func (c Cell) Name() string {
	switch c {
	case CellRedMan:
		return "red"
	case CellRedKing:
		return "red_king"
	case CellBlackMan:
		return "black"
	case CellBlackKing:
		return "black_king"
	default:
		return ""
	}
}

// Position is a board coordinate. Row 0 is Black's home edge,
// row 7 is Red's home edge.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}
