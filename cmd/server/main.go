/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the invoicing dashboard server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load .env and read required environment
  2. Initialize SQLite store (plus demo seed when asked)
  3. Build view cache, mutation service, auth service
  4. Configure HTTP router
  5. Start server with graceful shutdown

ENVIRONMENT:
  DATABASE_URL     SQLite path or ":memory:". Required; absence is
                   fatal at startup, never handled per-request.
  SESSION_SECRET   HMAC secret for session tokens. Optional; a dev
                   default is used when unset.

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -seed    Load the demo dataset on startup

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/finboard/invoicing/api"
	"github.com/finboard/invoicing/auth"
	"github.com/finboard/invoicing/invoice"
	"github.com/finboard/invoicing/logger"
	"github.com/finboard/invoicing/store/sqlite"
	"github.com/finboard/invoicing/viewcache"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	seed := flag.Bool("seed", false, "load the demo dataset on startup")
	flag.Parse()

	log, err := logger.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	// Environment. .env is optional; DATABASE_URL is not.
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatalw("DATABASE_URL is required")
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Warnw("SESSION_SECRET unset, using insecure dev default")
		secret = "dev-insecure-session-secret"
	}

	// Initialize store
	store, err := sqlite.New(databaseURL)
	if err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer store.Close()

	if *seed {
		if err := store.Seed(context.Background()); err != nil {
			log.Fatalw("failed to seed database", "error", err)
		}
		log.Infow("demo dataset loaded", "login", sqlite.DemoUserEmail)
	}

	// Wire services
	views := viewcache.New()
	mutations := invoice.NewMutations(store, views, log)
	sessions := auth.NewService(auth.NewCredentialsProvider(store, []byte(secret)))

	handler := api.NewHandler(store, views, mutations, sessions, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Infow("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "error", err)
	}

	log.Infow("server stopped")
}
