// Package processor executes room commands against the service layer,
// translating session and rule failures into API error responses.
package processor

import (
	"checkers/internal/core"
	"checkers/internal/engine"
	"checkers/internal/server/service"
)

// Processor handles command execution on top of the room service.
type Processor struct {
	svc *service.Service
}

func New(svc *service.Service) *Processor {
	return &Processor{svc: svc}
}

func (p *Processor) Execute(cmd Command) Response {
	switch cmd.Type {
	case CmdCreateRoom:
		return p.handleCreateRoom(cmd)
	case CmdChooseColor:
		return p.handleChooseColor(cmd)
	case CmdJoinRoom:
		return p.handleJoinRoom(cmd)
	case CmdGetRoom:
		return p.handleGetRoom(cmd)
	case CmdMakeMove:
		return p.handleMakeMove(cmd)
	case CmdGetBoard:
		return p.handleGetBoard(cmd)
	case CmdDeleteRoom:
		return p.handleDeleteRoom(cmd)
	default:
		return p.errorResponse("unknown command", core.ErrInvalidRequest)
	}
}

func (p *Processor) handleCreateRoom(cmd Command) Response {
	args, ok := cmd.Args.(core.CreateRoomRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	r, err := p.svc.CreateRoom(args.UserID, args.Username)
	if err != nil {
		return p.errorResponse(err.Error(), core.ErrInternalError)
	}

	if args.Color != "" {
		color, valid := core.ParseColor(args.Color)
		if !valid {
			return p.errorResponse("color must be red or black", core.ErrInvalidRequest)
		}
		if ok, code := r.SetCreatorColor(args.UserID, color); !ok {
			return p.errorResponse(messageFor(code), code)
		}
	}

	return Response{
		Success: true,
		Data:    r.Snapshot(args.UserID),
	}
}

func (p *Processor) handleChooseColor(cmd Command) Response {
	args, ok := cmd.Args.(core.ChooseColorRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	r, err := p.svc.Room(cmd.RoomID)
	if err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	color, valid := core.ParseColor(args.Color)
	if !valid {
		return p.errorResponse("color must be red or black", core.ErrInvalidRequest)
	}
	if ok, code := r.SetCreatorColor(args.UserID, color); !ok {
		return p.errorResponse(messageFor(code), code)
	}

	return Response{
		Success: true,
		Data:    r.Snapshot(args.UserID),
	}
}

func (p *Processor) handleJoinRoom(cmd Command) Response {
	args, ok := cmd.Args.(core.JoinRoomRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	r, err := p.svc.Room(cmd.RoomID)
	if err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	if ok, code := r.Join(args.UserID, args.Username); !ok {
		return p.errorResponse(messageFor(code), code)
	}

	// The game becomes playable the moment the opponent sits down; wake
	// the creator's long poll.
	p.svc.NotifyRoom(r.ID(), r.MoveCount())

	return Response{
		Success: true,
		Data:    r.Snapshot(args.UserID),
	}
}

func (p *Processor) handleGetRoom(cmd Command) Response {
	r, err := p.svc.Room(cmd.RoomID)
	if err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	return Response{
		Success: true,
		Data:    r.Snapshot(cmd.UserID),
	}
}

func (p *Processor) handleMakeMove(cmd Command) Response {
	args, ok := cmd.Args.(core.MoveRequest)
	if !ok {
		return p.errorResponse("invalid arguments", core.ErrInvalidRequest)
	}

	r, err := p.svc.Room(cmd.RoomID)
	if err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	fromRow, fromCol, toRow, toCol, parsed := engine.ParseMove(args.Move)
	if !parsed {
		return p.errorResponse("malformed move text", core.ErrInvalidRequest)
	}
	if !engine.OnBoard(fromRow, fromCol) || !engine.OnBoard(toRow, toCol) {
		return p.errorResponse("coordinates out of range", core.ErrInvalidRequest)
	}

	if ok, code := r.MakeMove(args.UserID, fromRow, fromCol, toRow, toCol); !ok {
		return p.errorResponse(messageFor(code), code)
	}

	p.svc.NotifyRoom(r.ID(), r.MoveCount())

	return Response{
		Success: true,
		Data:    r.Snapshot(args.UserID),
	}
}

func (p *Processor) handleGetBoard(cmd Command) Response {
	r, err := p.svc.Room(cmd.RoomID)
	if err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	text, cells := r.Board()
	return Response{
		Success: true,
		Data: core.BoardResponse{
			RoomID: r.ID(),
			Board:  text,
			Cells:  cells,
		},
	}
}

func (p *Processor) handleDeleteRoom(cmd Command) Response {
	r, err := p.svc.Room(cmd.RoomID)
	if err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	if cmd.UserID != r.CreatorID() {
		return p.errorResponse("only the creator can delete a room", core.ErrNotParticipant)
	}
	if err := p.svc.DeleteRoom(cmd.RoomID); err != nil {
		return p.errorResponse(messageFor(core.ErrRoomNotFound), core.ErrRoomNotFound)
	}

	return Response{Success: true}
}

// messageFor maps error codes to the user-facing reason strings.
func messageFor(code string) string {
	switch code {
	case core.ErrRoomNotFound:
		return "room not found"
	case core.ErrRoomFull:
		return "room already has an opponent"
	case core.ErrGameNotStarted:
		return "game not started - waiting for opponent"
	case core.ErrNotYourTurn:
		return "not your turn"
	case core.ErrNotYourPiece:
		return "that's not your piece"
	case core.ErrNotParticipant:
		return "you are not a participant in this room"
	case core.ErrInvalidMove:
		return "invalid move"
	case core.ErrGameOver:
		return "game is over"
	default:
		return "invalid request"
	}
}

func (p *Processor) errorResponse(message, code string) Response {
	return Response{
		Success: false,
		Error: &core.ErrorResponse{
			Error: message,
			Code:  code,
		},
	}
}
