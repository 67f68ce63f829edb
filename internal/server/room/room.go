// Package room layers a two-player session over one engine game: a
// creator, at most one opponent, an assigned color per participant, and
// per-user ownership checks in front of the engine.
package room

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"checkers/internal/core"
	"checkers/internal/engine"
)

// Room owns one game and its two seats. Every mutation runs under the
// room mutex: one writer per room, so concurrent move requests against
// the same room never interleave.
type Room struct {
	mu sync.Mutex

	id              string
	creatorID       string
	creatorUsername string
	creatorColor    core.Color // zero until chosen, defaults to red on join

	opponentID       string
	opponentUsername string

	game         *engine.Game
	moveCount    int
	lastActivity time.Time
}

// NewID returns a short room identifier: the first group of a UUID,
// 8 lowercase hex characters.
func NewID() string {
	return strings.SplitN(uuid.New().String(), "-", 2)[0]
}

func New(id, creatorID, creatorUsername string) *Room {
	return &Room{
		id:              id,
		creatorID:       creatorID,
		creatorUsername: creatorUsername,
		game:            engine.New(),
		lastActivity:    time.Now(),
	}
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) CreatorID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creatorID
}

// LastActivity returns the time of the last join, color choice, or move.
func (r *Room) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// MoveCount returns the number of successfully applied moves, including
// mid-chain continuations.
func (r *Room) MoveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.moveCount
}

func (r *Room) Finished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.GameOver()
}

// SetCreatorColor picks the creator's color. Only the creator may choose,
// and only before an opponent joins. The second return is an error code
// from the core package, "" on success.
func (r *Room) SetCreatorColor(userID string, color core.Color) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID != r.creatorID {
		return false, core.ErrNotParticipant
	}
	if r.opponentID != "" {
		return false, core.ErrInvalidRequest
	}
	r.creatorColor = color
	r.lastActivity = time.Now()
	return true, ""
}

// Join seats the opponent. The creator keeps the color they chose (red by
// default); the opponent gets the other one.
func (r *Room) Join(userID, username string) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if userID == r.creatorID {
		return false, core.ErrInvalidRequest
	}
	if r.opponentID != "" {
		return false, core.ErrRoomFull
	}
	if r.creatorColor == 0 {
		r.creatorColor = core.ColorRed
	}
	r.opponentID = userID
	r.opponentUsername = username
	r.lastActivity = time.Now()
	return true, ""
}

// PlayerColor returns the color a participant plays. ok is false for
// anyone who is not seated in the room.
func (r *Room) PlayerColor(userID string) (core.Color, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.playerColorLocked(userID)
}

func (r *Room) playerColorLocked(userID string) (core.Color, bool) {
	if r.creatorColor == 0 {
		return 0, false
	}
	switch userID {
	case r.creatorID:
		return r.creatorColor, true
	case r.opponentID:
		if r.opponentID == "" {
			return 0, false
		}
		return core.OppositeColor(r.creatorColor), true
	default:
		return 0, false
	}
}

// IsPlayerTurn reports whether the user is seated and their color is the
// side to move.
func (r *Room) IsPlayerTurn(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	color, ok := r.playerColorLocked(userID)
	return ok && color == r.game.Turn()
}

// MakeMove applies a move on behalf of a user. Session errors come back
// as distinct codes before the engine is consulted; an engine rejection
// is reported as ErrInvalidMove with the state unchanged.
func (r *Room) MakeMove(userID string, fromRow, fromCol, toRow, toCol int) (bool, string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.opponentID == "" {
		return false, core.ErrGameNotStarted
	}
	color, ok := r.playerColorLocked(userID)
	if !ok {
		return false, core.ErrNotParticipant
	}
	if r.game.GameOver() {
		return false, core.ErrGameOver
	}
	if color != r.game.Turn() {
		return false, core.ErrNotYourTurn
	}
	pieceColor, occupied := r.game.PieceAt(fromRow, fromCol).Color()
	if !occupied || pieceColor != color {
		return false, core.ErrNotYourPiece
	}

	if !r.game.ApplyMove(fromRow, fromCol, toRow, toCol) {
		return false, core.ErrInvalidMove
	}
	r.moveCount++
	r.lastActivity = time.Now()
	return true, ""
}

// Snapshot builds the per-user API view of the room.
func (r *Room) Snapshot(userID string) core.RoomResponse {
	r.mu.Lock()
	defer r.mu.Unlock()

	resp := core.RoomResponse{
		RoomID:           r.id,
		CreatorUsername:  r.creatorUsername,
		OpponentUsername: r.opponentUsername,
		CurrentPlayer:    r.game.Turn().String(),
		Board:            r.game.Cells(),
		MoveCount:        r.moveCount,
		GameOver:         r.game.GameOver(),
	}
	if r.creatorColor != 0 {
		resp.CreatorColor = r.creatorColor.String()
	}
	if color, ok := r.playerColorLocked(userID); ok {
		resp.PlayerColor = color.String()
		resp.IsMyTurn = !r.game.GameOver() && color == r.game.Turn()
	}
	if winner, over := r.game.Winner(); over {
		resp.Winner = winner.String()
	}
	return resp
}

// Board returns the textual and structured board projections.
func (r *Room) Board() (string, [][]*string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Render(), r.game.Cells()
}
