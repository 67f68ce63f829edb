package processor

import (
	"checkers/internal/core"
)

// CommandType defines the type of command being executed
type CommandType int

const (
	CmdCreateRoom CommandType = iota
	CmdChooseColor
	CmdJoinRoom
	CmdGetRoom
	CmdMakeMove
	CmdGetBoard
	CmdDeleteRoom
)

// Command is a unified structure for all processor operations
type Command struct {
	Type   CommandType
	RoomID string
	UserID string // acting user, for room-scoped commands
	Args   any
}

// Response wraps command results with metadata
type Response struct {
	Success bool                `json:"success"`
	Data    any                 `json:"data,omitempty"`
	Error   *core.ErrorResponse `json:"error,omitempty"`
}

func NewCreateRoomCommand(req core.CreateRoomRequest) Command {
	return Command{
		Type:   CmdCreateRoom,
		UserID: req.UserID,
		Args:   req,
	}
}

func NewChooseColorCommand(roomID string, req core.ChooseColorRequest) Command {
	return Command{
		Type:   CmdChooseColor,
		RoomID: roomID,
		UserID: req.UserID,
		Args:   req,
	}
}

func NewJoinRoomCommand(roomID string, req core.JoinRoomRequest) Command {
	return Command{
		Type:   CmdJoinRoom,
		RoomID: roomID,
		UserID: req.UserID,
		Args:   req,
	}
}

func NewGetRoomCommand(roomID, userID string) Command {
	return Command{
		Type:   CmdGetRoom,
		RoomID: roomID,
		UserID: userID,
	}
}

func NewMakeMoveCommand(roomID string, req core.MoveRequest) Command {
	return Command{
		Type:   CmdMakeMove,
		RoomID: roomID,
		UserID: req.UserID,
		Args:   req,
	}
}

func NewGetBoardCommand(roomID string) Command {
	return Command{
		Type:   CmdGetBoard,
		RoomID: roomID,
	}
}

func NewDeleteRoomCommand(roomID, userID string) Command {
	return Command{
		Type:   CmdDeleteRoom,
		RoomID: roomID,
		UserID: userID,
	}
}
