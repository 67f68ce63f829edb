package core

// Request types

type CreateRoomRequest struct {
	UserID   string `json:"userId" validate:"required,min=1,max=64"`
	Username string `json:"username" validate:"required,min=1,max=40"`
	Color    string `json:"color,omitempty" validate:"omitempty,oneof=red black"`
}

type JoinRoomRequest struct {
	UserID   string `json:"userId" validate:"required,min=1,max=64"`
	Username string `json:"username" validate:"required,min=1,max=40"`
}

type ChooseColorRequest struct {
	UserID string `json:"userId" validate:"required,min=1,max=64"`
	Color  string `json:"color" validate:"required,oneof=red black"`
}

type MoveRequest struct {
	UserID string `json:"userId" validate:"required,min=1,max=64"`
	Move   string `json:"move" validate:"required,min=5,max=32"` // "5,0-4,1" or "a6-b5"
}

// Response types

// RoomResponse is the per-user view of a room. Board cells hold the
// color vocabulary ("red", "red_king", "black", "black_king") or null.
type RoomResponse struct {
	RoomID           string      `json:"roomId"`
	CreatorUsername  string      `json:"creatorUsername"`
	OpponentUsername string      `json:"opponentUsername,omitempty"`
	CreatorColor     string      `json:"creatorColor,omitempty"`
	PlayerColor      string      `json:"playerColor,omitempty"`
	IsMyTurn         bool        `json:"isMyTurn"`
	CurrentPlayer    string      `json:"currentPlayer"`
	Board            [][]*string `json:"board"`
	MoveCount        int         `json:"moveCount"`
	GameOver         bool        `json:"gameOver"`
	Winner           string      `json:"winner,omitempty"`
}

type BoardResponse struct {
	RoomID string      `json:"roomId"`
	Board  string      `json:"board"` // text rendering for terminals and chat
	Cells  [][]*string `json:"cells"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}
