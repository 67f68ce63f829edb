// Package chat maps free-text commands and move messages onto the rules
// engine, one volatile game per chat session, and renders results as
// text with a fixed set of emoji glyphs.
package chat

import (
	"fmt"
	"strings"
	"sync"

	"checkers/internal/core"
	"checkers/internal/engine"
)

const helpText = `🎮 Checkers Help

📋 Commands:
/start - Welcome message
/newgame - Start a new game
/board - Show current board
/help - Show this help

🎯 Making Moves:
Send coordinates in format:
• Row,Col-Row,Col
  Example: 5,0-4,1
• Or chess notation: a6-b5

📐 Board Coordinates:
Rows: 0-7 (top to bottom)
Cols: 0-7 (left to right)

🎨 Pieces:
🔴 Red piece
👑 Red king
⚫ Black piece
♛ Black king

Rules:
• Red moves first
• Must capture if possible
• Kings can move backward
• Win by capturing all opponent pieces`

const welcomeText = `🎮 Welcome to Checkers!

Commands:
/newgame - Start a game here
/board - Show the board
/help - Show help

To make a move, send coordinates like:
• Row,Col-Row,Col (e.g., 5,0-4,1)
• Or chess notation (e.g., a6-b5)

Red pieces (🔴) move first!`

// Store owns the per-session games. Each session serializes its own
// handling, so concurrent messages for one chat never interleave; no two
// sessions share a game.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu   sync.Mutex
	game *engine.Game
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*session)}
}

func (s *Store) session(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{game: engine.New()}
		s.sessions[id] = sess
	}
	return sess
}

// Handle processes one incoming message for a session and returns the
// reply text.
func (s *Store) Handle(sessionID, text string) string {
	sess := s.session(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	text = strings.TrimSpace(text)
	switch {
	case text == "/start":
		return welcomeText
	case text == "/help":
		return helpText
	case text == "/newgame":
		sess.game = engine.New()
		return fmt.Sprintf("🎮 New game started!\n\nCurrent player: %s\n\n%s\n\nMake your move!",
			playerLabel(sess.game.Turn()), sess.game.Render())
	case text == "/board":
		return boardReply(sess.game)
	case strings.HasPrefix(text, "/"):
		return "Unknown command. Use /help to see what I understand."
	default:
		return moveReply(sess.game, text)
	}
}

func playerLabel(c core.Color) string {
	if c == core.ColorRed {
		return "🔴 Red"
	}
	return "⚫ Black"
}

func boardReply(g *engine.Game) string {
	if winner, over := g.Winner(); over {
		return fmt.Sprintf("%s\n🎉 Game Over! %s wins!", g.Render(), playerLabel(winner))
	}
	return fmt.Sprintf("%s\nCurrent player: %s", g.Render(), playerLabel(g.Turn()))
}

func moveReply(g *engine.Game, text string) string {
	if g.GameOver() {
		return "Game is over! Use /newgame to start a new game."
	}

	fromRow, fromCol, toRow, toCol, ok := engine.ParseMove(text)
	if !ok {
		return "❌ Invalid move format!\n\nUse format: Row,Col-Row,Col\nExample: 5,0-4,1\n\nOr chess notation: a6-b5"
	}

	if !engine.OnBoard(fromRow, fromCol) || !engine.OnBoard(toRow, toCol) {
		return "❌ Invalid coordinates! Use 0-7 for rows and columns."
	}

	pieceColor, occupied := g.PieceAt(fromRow, fromCol).Color()
	if !occupied || pieceColor != g.Turn() {
		return fmt.Sprintf("❌ That's not your piece! %s's turn.", playerLabel(g.Turn()))
	}

	if !g.ApplyMove(fromRow, fromCol, toRow, toCol) {
		destinations := g.LegalDestinations(fromRow, fromCol)
		if len(destinations) == 0 {
			return "❌ No valid moves from that position!"
		}
		hints := make([]string, len(destinations))
		for i, d := range destinations {
			hints[i] = fmt.Sprintf("%d,%d", d.Row, d.Col)
		}
		return fmt.Sprintf("❌ Invalid move!\n\nValid moves from (%d,%d): %s",
			fromRow, fromCol, strings.Join(hints, ", "))
	}

	if winner, over := g.Winner(); over {
		return fmt.Sprintf("✅ Move made!\n\n%s\n\n🎉 Game Over! %s wins!",
			g.Render(), playerLabel(winner))
	}
	return fmt.Sprintf("✅ Move made!\n\n%s\n\nCurrent player: %s",
		g.Render(), playerLabel(g.Turn()))
}
