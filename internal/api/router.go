package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/", app.HomeHandler)
	r.Get("/ping", PingHandler)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/ws/notifications", app.NotificationsHandler)

	fileServer := http.FileServer(http.Dir("./web/static"))
	r.Handle("/static/*", http.StripPrefix("/static", fileServer))

	r.Route("/api", func(r chi.Router) {
		r.Route("/filters", func(r chi.Router) {
			r.Post("/toggle", app.FilterToggleHandler)
			r.Post("/text", app.SetTextHandler)
			r.Post("/color", app.SetColorHandler)
			r.Post("/words", app.SetWordsHandler)
			r.Post("/objects", app.AddObjectHandler)
			r.Post("/objects/draft", app.SetObjectDraftHandler)
			r.Post("/objects/backspace", app.BackspaceObjectHandler)
			r.Delete("/objects/{tag}", app.RemoveObjectHandler)
			r.Post("/interval", app.SetIntervalPartHandler)
			r.Post("/interval/blur", app.BlurIntervalHandler)
			r.Post("/reset", app.ResetHandler)
		})

		r.Post("/search", app.SearchHandler)
		r.Get("/results", app.ResultsHandler)
		r.Get("/results/partial", app.ResultsPartialHandler)
		r.Post("/results/dismiss", app.DismissErrorHandler)
		r.Post("/media", app.MediaUploadHandler)
		r.Get("/media/{filename}", app.MediaFileHandler)

		r.Route("/dres", func(r chi.Router) {
			r.Post("/submit", app.DRESSubmitHandler)
			r.Get("/status", app.DRESStatusHandler)
			r.Get("/history", app.DRESHistoryHandler)
			r.Get("/submission/{id}", app.SubmissionStatusHandler)
			r.Post("/submission/{id}/dismiss", app.SubmissionDismissHandler)
		})
	})

	return r
}
