// cmd/stockdeck/main.go
//
// This is the entry point for the stockdeck terminal client.
//
// Flow:
// 1. Resolve and initialize the home directory (~/.stockdeck)
// 2. Load configuration and restore any persisted session
// 3. Build the API client with the session as its token source
// 4. Run the TUI

package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/stockdeck/stockdeck/internal/api"
	"github.com/stockdeck/stockdeck/internal/config"
	"github.com/stockdeck/stockdeck/internal/logbook"
	"github.com/stockdeck/stockdeck/internal/session"
	"github.com/stockdeck/stockdeck/internal/tui"
)

func main() {
	home, err := config.ResolveHome()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving home directory: %v\n", err)
		os.Exit(1)
	}
	if err := config.InitHome(home); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s: %v\n", home, err)
		os.Exit(1)
	}

	cfg, err := config.New(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	lb, err := logbook.New(cfg.LogPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening logbook: %v\n", err)
		os.Exit(1)
	}

	store := session.NewStore(home)
	if err := store.Restore(); err != nil {
		fmt.Fprintf(os.Stderr, "Error restoring session: %v\n", err)
		os.Exit(1)
	}

	// Any unauthorized answer invalidates the persisted credential before
	// the UI even sees the error.
	client := api.NewClient(cfg.BaseURL(), store,
		api.WithTimeout(cfg.RequestTimeout()),
		api.WithUnauthorizedHook(func() {
			_ = store.Clear()
			lb.Append(logbook.ScopeSession, logbook.LevelWarn, "credential rejected; session cleared")
		}),
	)

	p := tea.NewProgram(
		tui.NewApp(cfg, store, client, lb),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
