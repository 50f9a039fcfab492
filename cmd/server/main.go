/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the rewards engine server: configuration,
  dependency wiring, graceful shutdown.

CONFIGURATION:
  Flags, overridable by environment:
    -port / PORT         HTTP server port (default: 8080)
    -db / DB_PATH        SQLite database path (default: rewards.db,
                         use ":memory:" for in-memory)
    -admins / ADMIN_IDS  Comma-separated admin identifiers (emails or
                         employee ids). At least one is required.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  active requests, close the database, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite:  Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/warp/rewards-engine/api"
	"github.com/warp/rewards-engine/rewards"
	"github.com/warp/rewards-engine/store/sqlite"
)

type config struct {
	Port   int    `env:"PORT"`
	DBPath string `env:"DB_PATH"`
	Admins string `env:"ADMIN_IDS"`
}

func main() {
	cfg := config{Port: 8080, DBPath: "rewards.db", Admins: ""}
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	flag.StringVar(&cfg.Admins, "admins", cfg.Admins, "comma-separated admin identifiers")
	flag.Parse()

	// Environment overrides flags, so containerized deployments need no args.
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Failed to parse environment: %v", err)
	}

	var adminIDs []string
	for _, id := range strings.Split(cfg.Admins, ",") {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			adminIDs = append(adminIDs, trimmed)
		}
	}
	registry, err := rewards.NewStaticRegistry(adminIDs...)
	if err != nil {
		log.Fatalf("Failed to seed admin registry (set -admins or ADMIN_IDS): %v", err)
	}

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	svc := rewards.NewService(store, registry)
	router := api.NewRouter(api.NewHandler(svc))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Rewards engine listening on http://localhost:%d/api", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
