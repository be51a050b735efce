package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"clipseek/internal/api"
	"clipseek/internal/config"
	"clipseek/internal/criteria"
	"clipseek/internal/database"
	"clipseek/internal/dres"
	"clipseek/internal/notify"
	"clipseek/internal/search"
	"clipseek/internal/storage"
)

func main() {
	cfg := config.Load()

	localStorage, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	db, err := database.NewDB(database.Config{
		Type:       cfg.DBType,
		Host:       cfg.DBHost,
		Port:       cfg.DBPort,
		User:       cfg.DBUser,
		Password:   cfg.DBPassword,
		Name:       cfg.DBName,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	submissionRepo := database.NewSubmissionRepository(db)

	hub := notify.NewHub()
	go hub.Run()

	backend := search.NewClient(cfg.BackendBaseURL, cfg.SearchTimeout)
	orchestrator := search.NewOrchestrator(backend, search.FallbackVideos())

	builder := criteria.NewBuilder(func(c criteria.Criteria) {
		orchestrator.Search(context.Background(), c)
	})

	local := func(videoID string, timestampSec float64) {
		log.Printf("Local submission: %s @ %.2f s", videoID, timestampSec)
		hub.Notify("Submission recorded", videoID, "blue")
	}

	dresClient := dres.NewClient(cfg.DRESBaseURL, cfg.DRESUsername, cfg.DRESPassword)
	session := dres.NewSession(dresClient, cfg.DRESEvaluationName, cfg.DRESCollection,
		hub, local, submissionRepo)

	if cfg.DRESEnabled {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := session.Connect(ctx); err != nil {
			log.Printf("Contest server unavailable, submissions will be recorded locally: %v", err)
		}
		cancel()
	} else {
		log.Println("Contest integration disabled, submissions will be recorded locally")
	}

	app := &api.App{
		Builder:       builder,
		Search:        orchestrator,
		DRES:          session,
		History:       submissionRepo,
		Hub:           hub,
		Storage:       localStorage,
		MaxUploadSize: cfg.MaxUploadSize,
		TemplateDir:   "web/templates",
	}

	router := api.NewRouter(app)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
