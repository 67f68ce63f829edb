// Package main implements an interactive checkers session in the terminal,
// driven by the same command surface the chat shell exposes.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"checkers/internal/chat"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

const sessionID = "local"

func main() {
	store := chat.NewStore()

	fmt.Println(store.Handle(sessionID, "/start"))
	fmt.Println()
	fmt.Println(store.Handle(sessionID, "/newgame"))
	fmt.Println()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		runPiped(store)
		return
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "checkers> ",
		HistoryFile:     ".checkers_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "readline: %v\n", err)
		os.Exit(1)
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" || line == "x" {
			break
		}

		fmt.Println(store.Handle(sessionID, line))
		fmt.Println()
	}
}

// runPiped reads commands line by line without the readline machinery,
// for use in pipes and scripts.
func runPiped(store *chat.Store) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" || line == "x" {
			return
		}
		fmt.Println(store.Handle(sessionID, line))
		fmt.Println()
	}
}
