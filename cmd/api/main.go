package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jmcardle/gatewalker/internal/config"
	"github.com/jmcardle/gatewalker/internal/handlers"
	"github.com/jmcardle/gatewalker/internal/logger"
	"github.com/jmcardle/gatewalker/internal/middleware"
	"github.com/jmcardle/gatewalker/internal/storage"
	"github.com/jmcardle/gatewalker/pkg/engine"
	"github.com/jmcardle/gatewalker/pkg/story"
	"github.com/jmcardle/gatewalker/pkg/world"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logg := logger.Setup(cfg)

	logg.Info("Starting Gatewalker API",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"world_file", cfg.WorldFile,
		"story_file", cfg.StoryFile)

	// World and story documents are required; no session can exist
	// without them.
	w, err := world.LoadFromFile(cfg.WorldFile, logg)
	if err != nil {
		logg.Error("Failed to load world", "error", err)
		os.Exit(1)
	}
	st, err := story.LoadFromFile(cfg.StoryFile)
	if err != nil {
		logg.Error("Failed to load story", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewRedisStorage(cfg.RedisURL, cfg.SnapshotTTL, logg)
	if err != nil {
		logg.Error("Failed to create storage", "error", err)
		os.Exit(1)
	}
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer storageCancel()
	if err := store.WaitForConnection(storageCtx); err != nil {
		logg.Error("Failed to connect to storage", "error", err)
		os.Exit(1)
	}

	resolver := engine.New(st, engine.DefaultScript(), nil, logg)

	mux := http.NewServeMux()

	healthHandler := handlers.NewHealthHandler(store, logg)
	mux.Handle("/health", healthHandler)

	sessionHandler := handlers.NewSessionHandler(w, resolver, store, logg)
	mux.Handle("/v1/sessions", sessionHandler)

	actionHandler := handlers.NewActionHandler(sessionHandler, w, resolver, store, logg)

	// /v1/sessions/{id}/action goes to the action handler; every other
	// path under the subtree is session CRUD.
	mux.Handle("/v1/sessions/", http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/action") {
			actionHandler.ServeHTTP(rw, req)
			return
		}
		sessionHandler.ServeHTTP(rw, req)
	}))

	server := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     middleware.Logger(mux),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logg.Info("Server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logg.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("Server is shutting down...")

	if err := store.Close(); err != nil {
		logg.Error("Error closing storage connection", "error", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logg.Info("Server exited")
}
