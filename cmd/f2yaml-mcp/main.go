package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"f2yaml/internal/adapters/filesystem"
	mcpadapter "f2yaml/internal/adapters/mcp"
	"f2yaml/internal/adapters/sqlite"
	"f2yaml/internal/application"
	"f2yaml/internal/config"
)

func main() {
	rootFlag := flag.String("root", "", "workspace root holding the task files (default from config)")
	configFlag := flag.String("config", "", "config file")
	verbose := flag.Bool("verbose", false, "trace link resolution on stderr")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configFlag != "" {
		cfg, err = config.LoadFrom(*configFlag)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		log.Fatalf("f2yaml-mcp: %v", err)
	}
	if *rootFlag != "" {
		cfg.RootPath = config.ExpandHome(*rootFlag)
	}

	// stdout carries the protocol; traces go to stderr
	var logger *log.Logger
	if *verbose {
		logger = log.New(os.Stderr, "f2yaml-mcp: ", log.Ltime)
	}

	ws := filesystem.NewWorkspace(cfg.RootPath, cfg.PathSeparator, cfg.FileExtensions)
	engine := application.NewEngine(ws, application.Options{
		IgnoreWords:   cfg.IgnoreWords,
		PathSeparator: cfg.PathSeparator,
		UserName:      cfg.UserName,
		CSVFields:     cfg.CSVFields,
	}, logger)

	store, err := sqlite.Open(cfg.StatePath)
	if err != nil {
		log.Fatalf("f2yaml-mcp: %v", err)
	}
	defer store.Close()

	mcpServer := server.NewMCPServer(
		"f2yaml-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, engine, store)
	mcpadapter.RegisterWriteTools(mcpServer, engine, store)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("f2yaml-mcp: %v", err)
	}
}
