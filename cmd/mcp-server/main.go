// Package main provides the standalone MCP server entry point. It needs
// no external databases; feedback lands in a local SQLite file.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/config"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/mcp"
	"github.com/mg26984-hash/nephrology-calculator-dashboard-sub001/internal/setup"
)

func main() {
	// "mcp-server setup ..." runs the installer CLI instead of serving.
	if len(os.Args) > 1 && os.Args[1] == "setup" {
		if err := setup.NewCLI().Run(os.Args[2:]); err != nil {
			log.Fatalf("Setup failed: %v", err)
		}
		return
	}

	// Environment-only configuration
	cfg := config.LoadLiteConfig()

	log.Printf("Starting clinical calculator MCP server")
	log.Printf("Data directory: %s", cfg.DataDir)

	server, err := mcp.NewServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create MCP server: %v", err)
	}
	defer server.Close()

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Shutdown signal received, gracefully shutting down...")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		log.Fatalf("MCP server failed: %v", err)
	}

	log.Println("MCP server stopped")
}
