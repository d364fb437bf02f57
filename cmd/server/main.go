package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mkessler/stemtutor/internal/api"
	"github.com/mkessler/stemtutor/internal/config"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/repository/jsonfile"
	"github.com/mkessler/stemtutor/internal/services"
	"github.com/mkessler/stemtutor/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New(logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("STEM Tutor Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("data_dir=%s", cfg.DataDir)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("commit_queue_buffer=%d", cfg.CommitQueueBuffer)

	fileStore, err := store.NewFileStore(cfg.DataDir)
	if err != nil {
		log.Error("failed to open data directory: %v", err)
		os.Exit(1)
	}

	queue := store.NewCommitQueue(fileStore, cfg.CommitQueueBuffer)
	defer queue.Close()

	flashcardRepo := jsonfile.NewFlashcardRepository(queue)
	subjectRepo := jsonfile.NewSubjectRepository(queue)
	progressRepo := jsonfile.NewProgressRepository(queue)

	// Seed empty collections so a fresh installation can list before its
	// first create.
	ctx := context.Background()
	if err := flashcardRepo.Ensure(ctx); err != nil {
		log.Error("failed to initialize flashcards collection: %v", err)
		os.Exit(1)
	}
	if err := subjectRepo.Ensure(ctx); err != nil {
		log.Error("failed to initialize subjects collection: %v", err)
		os.Exit(1)
	}
	if err := progressRepo.Ensure(ctx); err != nil {
		log.Error("failed to initialize progress record: %v", err)
		os.Exit(1)
	}

	srv := &api.Server{
		Flashcards:  services.NewFlashcardService(flashcardRepo),
		Subjects:    services.NewSubjectService(subjectRepo, flashcardRepo),
		Progress:    services.NewProgressService(progressRepo),
		CORSOrigins: cfg.CORSOrigins,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("draining commit queue")
	queue.Close()

	log.Info("===========================================")
	log.Info("STEM Tutor Server Stopped")
	log.Info("===========================================")
}
