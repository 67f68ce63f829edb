// Package http exposes the room API over a Fiber application.
package http

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"checkers/internal/core"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"
)

const rateLimitRate = 10 // req/sec

// Handler routes HTTP requests to the processor.
type Handler struct {
	proc *processor.Processor
	svc  *service.Service
}

func NewHandler(proc *processor.Processor, svc *service.Service) *Handler {
	return &Handler{proc: proc, svc: svc}
}

func NewFiberApp(proc *processor.Processor, svc *service.Service, devMode bool) *fiber.App {
	h := NewHandler(proc, svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	})

	// Global middleware (order matters)
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	// Health check (no rate limit)
	app.Get("/health", h.Health)

	api := app.Group("/api/v1")

	maxReq := rateLimitRate
	if devMode {
		maxReq = rateLimitRate * 2
	}
	api.Use(limiter.New(limiter.Config{
		Max:        maxReq,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			if xff := c.Get("X-Forwarded-For"); xff != "" {
				if idx := strings.Index(xff, ","); idx != -1 {
					return strings.TrimSpace(xff[:idx])
				}
				return xff
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(core.ErrorResponse{
				Error:   "rate limit exceeded",
				Code:    core.ErrRateLimitExceeded,
				Details: fmt.Sprintf("%d requests per second allowed", maxReq),
			})
		},
	}))

	api.Use(contentTypeValidator)
	api.Use(validationMiddleware)

	api.Post("/rooms", h.CreateRoom)
	api.Get("/rooms/:roomId", h.GetRoom)
	api.Delete("/rooms/:roomId", h.DeleteRoom)
	api.Post("/rooms/:roomId/join", h.JoinRoom)
	api.Put("/rooms/:roomId/color", h.ChooseColor)
	api.Post("/rooms/:roomId/moves", h.MakeMove)
	api.Get("/rooms/:roomId/board", h.GetBoard)

	return app
}

// contentTypeValidator ensures POST and PUT requests have application/json
func contentTypeValidator(c *fiber.Ctx) error {
	method := c.Method()
	if method == fiber.MethodPost || method == fiber.MethodPut {
		contentType := c.Get("Content-Type")
		if contentType != "application/json" && contentType != "" {
			return c.Status(fiber.StatusUnsupportedMediaType).JSON(core.ErrorResponse{
				Error:   "unsupported media type",
				Code:    core.ErrInvalidContent,
				Details: "Content-Type must be application/json",
			})
		}
	}
	return c.Next()
}

// customErrorHandler provides consistent error responses
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	response := core.ErrorResponse{
		Error: "internal server error",
		Code:  core.ErrInternalError,
	}

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		response.Error = e.Message

		switch code {
		case fiber.StatusNotFound:
			response.Code = core.ErrRoomNotFound
		case fiber.StatusBadRequest:
			response.Code = core.ErrInvalidRequest
		case fiber.StatusTooManyRequests:
			response.Code = core.ErrRateLimitExceeded
		}
	}

	return c.Status(code).JSON(response)
}

// statusFor maps processor error codes onto HTTP statuses.
func statusFor(code string) int {
	switch code {
	case core.ErrRoomNotFound:
		return fiber.StatusNotFound
	case core.ErrRoomFull:
		return fiber.StatusConflict
	case core.ErrNotYourTurn, core.ErrNotYourPiece, core.ErrNotParticipant:
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func (h *Handler) respond(c *fiber.Ctx, resp processor.Response, successStatus int) error {
	if !resp.Success {
		return c.Status(statusFor(resp.Error.Code)).JSON(resp.Error)
	}
	if resp.Data == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.Status(successStatus).JSON(resp.Data)
}

// validatedBody fetches the struct the validation middleware parsed.
func validatedBody[T any](c *fiber.Ctx) (T, error) {
	var zero T
	validated, ok := c.Locals("validated").(bool)
	if !ok || !validated {
		return zero, fmt.Errorf("validation bypass detected")
	}
	body, ok := c.Locals("validatedBody").(*T)
	if !ok || body == nil {
		return zero, fmt.Errorf("validation data missing")
	}
	return *body, nil
}

// Health check endpoint with room count
func (h *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Unix(),
		"rooms":  h.svc.RoomCount(),
	})
}

// CreateRoom opens a room with the requester as creator
func (h *Handler) CreateRoom(c *fiber.Ctx) error {
	req, err := validatedBody[core.CreateRoomRequest](c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrInternalError,
		})
	}

	resp := h.proc.Execute(processor.NewCreateRoomCommand(req))
	return h.respond(c, resp, fiber.StatusCreated)
}

// JoinRoom seats the requester as the opponent
func (h *Handler) JoinRoom(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if !isValidRoomID(roomID) {
		return badRoomID(c)
	}

	req, err := validatedBody[core.JoinRoomRequest](c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrInternalError,
		})
	}

	resp := h.proc.Execute(processor.NewJoinRoomCommand(roomID, req))
	return h.respond(c, resp, fiber.StatusOK)
}

// ChooseColor sets the creator's color before the opponent joins
func (h *Handler) ChooseColor(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if !isValidRoomID(roomID) {
		return badRoomID(c)
	}

	req, err := validatedBody[core.ChooseColorRequest](c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrInternalError,
		})
	}

	resp := h.proc.Execute(processor.NewChooseColorCommand(roomID, req))
	return h.respond(c, resp, fiber.StatusOK)
}

// GetRoom returns the requester's view of a room, optionally long-polling
// until the move count changes
func (h *Handler) GetRoom(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if !isValidRoomID(roomID) {
		return badRoomID(c)
	}

	userID := c.Query("userId")

	// Non-wait path
	if c.Query("wait", "false") != "true" {
		resp := h.proc.Execute(processor.NewGetRoomCommand(roomID, userID))
		return h.respond(c, resp, fiber.StatusOK)
	}

	moveCount, err := strconv.Atoi(c.Query("moveCount", "-1"))
	if err != nil {
		moveCount = -1
	}

	r, err := h.svc.Room(roomID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(core.ErrorResponse{
			Error: "room not found",
			Code:  core.ErrRoomNotFound,
		})
	}

	// Already stale, answer immediately.
	if moveCount != r.MoveCount() {
		resp := h.proc.Execute(processor.NewGetRoomCommand(roomID, userID))
		return h.respond(c, resp, fiber.StatusOK)
	}

	ctx := c.Context()
	notify := h.svc.RegisterWait(roomID, moveCount, ctx)

	select {
	case <-notify:
		// State changed, timed out, or the room went away.
		resp := h.proc.Execute(processor.NewGetRoomCommand(roomID, userID))
		return h.respond(c, resp, fiber.StatusOK)
	case <-ctx.Done():
		// Client disconnected
		return nil
	}
}

// MakeMove applies a move on behalf of the acting user
func (h *Handler) MakeMove(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if !isValidRoomID(roomID) {
		return badRoomID(c)
	}

	req, err := validatedBody[core.MoveRequest](c)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(core.ErrorResponse{
			Error: err.Error(),
			Code:  core.ErrInternalError,
		})
	}

	resp := h.proc.Execute(processor.NewMakeMoveCommand(roomID, req))
	return h.respond(c, resp, fiber.StatusOK)
}

// GetBoard returns the text and structured board projections
func (h *Handler) GetBoard(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if !isValidRoomID(roomID) {
		return badRoomID(c)
	}

	resp := h.proc.Execute(processor.NewGetBoardCommand(roomID))
	return h.respond(c, resp, fiber.StatusOK)
}

// DeleteRoom removes a room; only the creator may do so
func (h *Handler) DeleteRoom(c *fiber.Ctx) error {
	roomID := c.Params("roomId")
	if !isValidRoomID(roomID) {
		return badRoomID(c)
	}

	resp := h.proc.Execute(processor.NewDeleteRoomCommand(roomID, c.Query("userId")))
	return h.respond(c, resp, fiber.StatusNoContent)
}

func badRoomID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(core.ErrorResponse{
		Error:   "invalid room ID format",
		Code:    core.ErrInvalidRequest,
		Details: "room ID must be 8 hex characters",
	})
}
