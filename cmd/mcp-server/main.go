// cmd/mcp-server/main.go - Standalone HTTP MCP server for gopoly
//
// Exposes the polynomial tools and stateful calculator sessions over HTTP.
//
// Usage:
//
//	go run ./cmd/mcp-server -port 8080 -config gopoly.yaml
//
// Tool call endpoint:   POST   /tool
// Schema endpoint:      GET    /schema
// Health endpoint:      GET    /health
// Calculator sessions:  POST   /sessions
//                       POST   /sessions/{id}/exec
//                       DELETE /sessions/{id}
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/njchilds90/gopoly/internal/config"
	"github.com/njchilds90/gopoly/internal/session"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	port := flag.Int("port", 0, "Port to listen on (overrides server.addr)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *port != 0 {
		cfg.Server.Addr = fmt.Sprintf(":%d", *port)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := session.NewStore(cfg.Server.SessionTTL, cfg.Server.MaxSessions)
	go store.Run(ctx, time.Minute)

	addr := cfg.Server.Addr
	log.Printf("gopoly MCP server listening on %s", addr)
	log.Printf("  POST   /tool               - execute a tool call")
	log.Printf("  GET    /schema             - tool schema for agent registration")
	log.Printf("  GET    /health             - health check")
	log.Printf("  POST   /sessions           - open a calculator session")
	log.Printf("  POST   /sessions/{id}/exec - run calculator lines")
	log.Printf("  DELETE /sessions/{id}      - close a session")

	srv := &http.Server{
		Addr:              addr,
		Handler:           newMux(cfg.Server, store),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
