package chat

import (
	"strings"
	"testing"
)

func TestCommands(t *testing.T) {
	store := NewStore()

	tests := []struct {
		name    string
		input   string
		contain []string
	}{
		{"start", "/start", []string{"Welcome to Checkers", "Red pieces (🔴) move first!"}},
		{"help", "/help", []string{"Checkers Help", "/newgame", "a6-b5"}},
		{"newgame", "/newgame", []string{"🎮 New game started!", "Current player: 🔴 Red", "Make your move!"}},
		{"board", "/board", []string{"0 1 2 3 4 5 6 7", "Current player: 🔴 Red"}},
		{"unknown command", "/dance", []string{"Unknown command"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := store.Handle("s1", tt.input)
			for _, want := range tt.contain {
				if !strings.Contains(reply, want) {
					t.Errorf("reply missing %q:\n%s", want, reply)
				}
			}
		})
	}
}

func TestMoveReplies(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []string
		contain []string
	}{
		{
			name:    "valid move",
			inputs:  []string{"5,0-4,1"},
			contain: []string{"✅ Move made!", "Current player: ⚫ Black"},
		},
		{
			name:    "algebraic form",
			inputs:  []string{"a6-b5"},
			contain: []string{"✅ Move made!"},
		},
		{
			name:    "bad format",
			inputs:  []string{"move it"},
			contain: []string{"❌ Invalid move format!", "Row,Col-Row,Col"},
		},
		{
			name:    "out of range",
			inputs:  []string{"8,0-7,1"},
			contain: []string{"❌ Invalid coordinates!"},
		},
		{
			name:    "empty source square",
			inputs:  []string{"4,1-3,2"},
			contain: []string{"❌ That's not your piece! 🔴 Red's turn."},
		},
		{
			name:    "opponent piece",
			inputs:  []string{"2,1-3,2"},
			contain: []string{"❌ That's not your piece! 🔴 Red's turn."},
		},
		{
			name:    "illegal destination with hints",
			inputs:  []string{"5,0-3,0"},
			contain: []string{"❌ Invalid move!", "Valid moves from (5,0): 4,1"},
		},
		{
			name:    "blocked piece",
			inputs:  []string{"6,1-5,2"},
			contain: []string{"❌ No valid moves from that position!"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			var reply string
			for _, input := range tt.inputs {
				reply = store.Handle("s1", input)
			}
			for _, want := range tt.contain {
				if !strings.Contains(reply, want) {
					t.Errorf("reply missing %q:\n%s", want, reply)
				}
			}
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	store := NewStore()

	reply := store.Handle("a", "5,0-4,1")
	if !strings.Contains(reply, "✅ Move made!") {
		t.Fatalf("session a move rejected:\n%s", reply)
	}

	// Session b still has a fresh game, so the same move is legal again.
	reply = store.Handle("b", "5,0-4,1")
	if !strings.Contains(reply, "✅ Move made!") {
		t.Fatalf("session b move rejected:\n%s", reply)
	}

	// Session a already vacated (5,0).
	reply = store.Handle("a", "5,0-4,1")
	if !strings.Contains(reply, "That's not your piece") {
		t.Fatalf("expected turn rejection for session a:\n%s", reply)
	}
}

func TestNewGameResets(t *testing.T) {
	store := NewStore()

	store.Handle("s", "5,0-4,1")
	store.Handle("s", "/newgame")

	reply := store.Handle("s", "5,0-4,1")
	if !strings.Contains(reply, "✅ Move made!") {
		t.Fatalf("move after /newgame rejected:\n%s", reply)
	}
}
