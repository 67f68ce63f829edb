package core

// Error codes
const (
	ErrRoomNotFound      = "ROOM_NOT_FOUND"
	ErrRoomFull          = "ROOM_FULL"
	ErrGameNotStarted    = "GAME_NOT_STARTED"
	ErrNotYourTurn       = "NOT_YOUR_TURN"
	ErrNotYourPiece      = "NOT_YOUR_PIECE"
	ErrNotParticipant    = "NOT_PARTICIPANT"
	ErrInvalidMove       = "INVALID_MOVE"
	ErrGameOver          = "GAME_OVER"
	ErrRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrInvalidRequest    = "INVALID_REQUEST"
	ErrInternalError     = "INTERNAL_ERROR"
)
