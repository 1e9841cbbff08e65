package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"f2yaml/internal/adapters/editor"
	"f2yaml/internal/adapters/filesystem"
	"f2yaml/internal/adapters/sqlite"
	"f2yaml/internal/adapters/tui"
	"f2yaml/internal/application"
	"f2yaml/internal/config"
)

func main() {
	rootFlag := flag.String("root", "", "workspace root holding the task files (default from config)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *rootFlag != "" {
		cfg.RootPath = config.ExpandHome(*rootFlag)
	}

	// Initialize adapters
	ws := filesystem.NewWorkspace(cfg.RootPath, cfg.PathSeparator, cfg.FileExtensions)
	engine := application.NewEngine(ws, application.Options{
		IgnoreWords:   cfg.IgnoreWords,
		PathSeparator: cfg.PathSeparator,
		UserName:      cfg.UserName,
		CSVFields:     cfg.CSVFields,
	}, nil)

	store, err := sqlite.Open(cfg.StatePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Create and run TUI app
	app := tui.NewApp(context.Background(), engine, store, editor.NewOpener(), editor.Clipboard{})

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}
