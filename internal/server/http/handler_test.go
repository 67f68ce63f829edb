package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"checkers/internal/core"
	"checkers/internal/server/processor"
	"checkers/internal/server/service"
)

var requestSeq int

func newTestApp() *fiber.App {
	svc := service.New()
	proc := processor.New(svc)
	return NewFiberApp(proc, svc, true)
}

// doJSON issues a request with a unique client IP so the rate limiter
// never trips across a test run.
func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = strings.NewReader(string(raw))
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestSeq++
	req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.%d.%d", requestSeq/256, requestSeq%256))

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == fiber.StatusNoContent {
		return resp.StatusCode, nil
	}
	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("%s %s: decode: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}

func createRoom(t *testing.T, app *fiber.App, userID, username string) string {
	t.Helper()
	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/rooms",
		core.CreateRoomRequest{UserID: userID, Username: username})
	if status != fiber.StatusCreated {
		t.Fatalf("create room: status %d body %v", status, body)
	}
	roomID, _ := body["roomId"].(string)
	if roomID == "" {
		t.Fatalf("create room: no roomId in %v", body)
	}
	return roomID
}

func TestHealth(t *testing.T) {
	app := newTestApp()

	status, body := doJSON(t, app, fiber.MethodGet, "/health", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status %d", status)
	}
	if body["status"] != "healthy" {
		t.Errorf("body %v", body)
	}
	if body["rooms"] != float64(0) {
		t.Errorf("rooms = %v", body["rooms"])
	}
}

func TestCreateJoinMoveFlow(t *testing.T) {
	app := newTestApp()

	roomID := createRoom(t, app, "u-alice", "alice")

	// Creator view before anyone joins.
	status, body := doJSON(t, app, fiber.MethodGet, "/api/v1/rooms/"+roomID+"?userId=u-alice", nil)
	if status != fiber.StatusOK {
		t.Fatalf("get room: status %d", status)
	}
	if body["opponentUsername"] != nil && body["opponentUsername"] != "" {
		t.Errorf("opponent set before join: %v", body)
	}

	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/join",
		core.JoinRoomRequest{UserID: "u-bob", Username: "bob"})
	if status != fiber.StatusOK {
		t.Fatalf("join: status %d body %v", status, body)
	}
	if body["playerColor"] != "black" {
		t.Errorf("joiner color = %v", body["playerColor"])
	}
	if body["isMyTurn"] != false {
		t.Errorf("joiner should not be on turn: %v", body)
	}

	// Red (creator) opens.
	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/moves",
		core.MoveRequest{UserID: "u-alice", Move: "5,0-4,1"})
	if status != fiber.StatusOK {
		t.Fatalf("move: status %d body %v", status, body)
	}
	if body["moveCount"] != float64(1) {
		t.Errorf("moveCount = %v", body["moveCount"])
	}
	if body["currentPlayer"] != "black" {
		t.Errorf("currentPlayer = %v", body["currentPlayer"])
	}

	// Board projection.
	status, body = doJSON(t, app, fiber.MethodGet, "/api/v1/rooms/"+roomID+"/board", nil)
	if status != fiber.StatusOK {
		t.Fatalf("board: status %d", status)
	}
	if text, _ := body["board"].(string); !strings.Contains(text, "🔴") {
		t.Errorf("board text missing pieces: %q", text)
	}
}

func TestChooseColor(t *testing.T) {
	app := newTestApp()
	roomID := createRoom(t, app, "u-alice", "alice")

	status, body := doJSON(t, app, fiber.MethodPut, "/api/v1/rooms/"+roomID+"/color",
		core.ChooseColorRequest{UserID: "u-alice", Color: "black"})
	if status != fiber.StatusOK {
		t.Fatalf("choose color: status %d body %v", status, body)
	}

	_, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/join",
		core.JoinRoomRequest{UserID: "u-bob", Username: "bob"})
	if body["playerColor"] != "red" {
		t.Errorf("joiner color = %v, want red", body["playerColor"])
	}

	// Bob is red and opens; black creator must wait.
	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/moves",
		core.MoveRequest{UserID: "u-alice", Move: "2,1-3,2"})
	if status != fiber.StatusForbidden || body["code"] != core.ErrNotYourTurn {
		t.Errorf("creator out of turn: status %d body %v", status, body)
	}
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp()
	roomID := createRoom(t, app, "u-alice", "alice")

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
		code   string
	}{
		{
			name:   "unknown room",
			method: fiber.MethodGet,
			path:   "/api/v1/rooms/deadbeef",
			status: fiber.StatusNotFound,
			code:   core.ErrRoomNotFound,
		},
		{
			name:   "malformed room id",
			method: fiber.MethodGet,
			path:   "/api/v1/rooms/NOPE",
			status: fiber.StatusBadRequest,
			code:   core.ErrInvalidRequest,
		},
		{
			name:   "move before opponent",
			method: fiber.MethodPost,
			path:   "/api/v1/rooms/" + roomID + "/moves",
			body:   core.MoveRequest{UserID: "u-alice", Move: "5,0-4,1"},
			status: fiber.StatusBadRequest,
			code:   core.ErrGameNotStarted,
		},
		{
			name:   "missing username",
			method: fiber.MethodPost,
			path:   "/api/v1/rooms/" + roomID + "/join",
			body:   map[string]string{"userId": "u-bob"},
			status: fiber.StatusBadRequest,
			code:   core.ErrInvalidRequest,
		},
		{
			name:   "bad color value",
			method: fiber.MethodPut,
			path:   "/api/v1/rooms/" + roomID + "/color",
			body:   map[string]string{"userId": "u-alice", "color": "green"},
			status: fiber.StatusBadRequest,
			code:   core.ErrInvalidRequest,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, tt.method, tt.path, tt.body)
			if status != tt.status {
				t.Fatalf("status = %d, want %d (%v)", status, tt.status, body)
			}
			if body["code"] != tt.code {
				t.Errorf("code = %v, want %s", body["code"], tt.code)
			}
		})
	}
}

func TestJoinConflicts(t *testing.T) {
	app := newTestApp()
	roomID := createRoom(t, app, "u-alice", "alice")

	doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/join",
		core.JoinRoomRequest{UserID: "u-bob", Username: "bob"})

	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/join",
		core.JoinRoomRequest{UserID: "u-carol", Username: "carol"})
	if status != fiber.StatusConflict || body["code"] != core.ErrRoomFull {
		t.Errorf("full room join: status %d body %v", status, body)
	}

	// Stranger making a move is forbidden, not a validation error.
	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/moves",
		core.MoveRequest{UserID: "u-carol", Move: "5,0-4,1"})
	if status != fiber.StatusForbidden || body["code"] != core.ErrNotParticipant {
		t.Errorf("stranger move: status %d body %v", status, body)
	}
}

func TestMoveTextValidation(t *testing.T) {
	app := newTestApp()
	roomID := createRoom(t, app, "u-alice", "alice")
	doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/join",
		core.JoinRoomRequest{UserID: "u-bob", Username: "bob"})

	// Parseable but off-board coordinates.
	status, body := doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/moves",
		core.MoveRequest{UserID: "u-alice", Move: "9,0-8,1"})
	if status != fiber.StatusBadRequest || body["code"] != core.ErrInvalidRequest {
		t.Errorf("off-board move: status %d body %v", status, body)
	}

	// Unparseable move text.
	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/moves",
		core.MoveRequest{UserID: "u-alice", Move: "go forward"})
	if status != fiber.StatusBadRequest || body["code"] != core.ErrInvalidRequest {
		t.Errorf("junk move: status %d body %v", status, body)
	}

	// Legal destination set does not include (3,0).
	status, body = doJSON(t, app, fiber.MethodPost, "/api/v1/rooms/"+roomID+"/moves",
		core.MoveRequest{UserID: "u-alice", Move: "5,0-3,0"})
	if status != fiber.StatusBadRequest || body["code"] != core.ErrInvalidMove {
		t.Errorf("illegal move: status %d body %v", status, body)
	}
}

func TestDeleteRoom(t *testing.T) {
	app := newTestApp()
	roomID := createRoom(t, app, "u-alice", "alice")

	// Only the creator may delete.
	status, body := doJSON(t, app, fiber.MethodDelete, "/api/v1/rooms/"+roomID+"?userId=u-bob", nil)
	if status != fiber.StatusForbidden || body["code"] != core.ErrNotParticipant {
		t.Errorf("non-creator delete: status %d body %v", status, body)
	}

	status, _ = doJSON(t, app, fiber.MethodDelete, "/api/v1/rooms/"+roomID+"?userId=u-alice", nil)
	if status != fiber.StatusNoContent {
		t.Fatalf("delete: status %d", status)
	}

	status, _ = doJSON(t, app, fiber.MethodGet, "/api/v1/rooms/"+roomID+"?userId=u-alice", nil)
	if status != fiber.StatusNotFound {
		t.Errorf("deleted room still reachable: status %d", status)
	}
}

func TestContentTypeRejected(t *testing.T) {
	app := newTestApp()

	req := httptest.NewRequest(fiber.MethodPost, "/api/v1/rooms",
		strings.NewReader(`{"userId":"u","username":"alice"}`))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("X-Forwarded-For", "10.9.9.9")

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestLongPollAnswersStaleCountImmediately(t *testing.T) {
	app := newTestApp()
	roomID := createRoom(t, app, "u-alice", "alice")

	// Client claims an out-of-date move count, so the wait path answers
	// without blocking.
	status, body := doJSON(t, app, fiber.MethodGet,
		"/api/v1/rooms/"+roomID+"?userId=u-alice&wait=true&moveCount=5", nil)
	if status != fiber.StatusOK {
		t.Fatalf("status %d", status)
	}
	if body["moveCount"] != float64(0) {
		t.Errorf("moveCount = %v", body["moveCount"])
	}
}
