package api

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"clipseek/internal/criteria"
	"clipseek/internal/database"
	"clipseek/internal/dres"
	"clipseek/internal/notify"
	"clipseek/internal/search"
	"clipseek/internal/storage"
)

type App struct {
	Builder       *criteria.Builder
	Search        *search.Orchestrator
	DRES          *dres.Session
	History       *database.SubmissionRepository
	Hub           *notify.Hub
	Storage       storage.Storage
	MaxUploadSize int64
	TemplateDir   string
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

type pageData struct {
	Panel   criteria.Snapshot
	Results search.State
}

func (app *App) HomeHandler(w http.ResponseWriter, r *http.Request) {
	tmpl, err := template.ParseFiles(
		filepath.Join(app.TemplateDir, "base.html"),
		filepath.Join(app.TemplateDir, "_filter_panel.html"),
		filepath.Join(app.TemplateDir, "_results.html"),
	)
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}

	data := pageData{
		Panel:   app.Builder.Snapshot(),
		Results: app.Search.State(),
	}
	if err := tmpl.Execute(w, data); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (app *App) renderPanel(w http.ResponseWriter) {
	tmpl, err := template.ParseFiles(filepath.Join(app.TemplateDir, "_filter_panel.html"))
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "filter_panel", app.Builder.Snapshot()); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

func (app *App) renderResults(w http.ResponseWriter) {
	tmpl, err := template.ParseFiles(filepath.Join(app.TemplateDir, "_results.html"))
	if err != nil {
		http.Error(w, "Error loading template", http.StatusInternalServerError)
		return
	}
	if err := tmpl.ExecuteTemplate(w, "results", app.Search.State()); err != nil {
		http.Error(w, "Error rendering template", http.StatusInternalServerError)
	}
}

// FilterToggleHandler flips one filter kind on or off.
func (app *App) FilterToggleHandler(w http.ResponseWriter, r *http.Request) {
	kind := criteria.Kind(r.FormValue("kind"))
	if err := app.Builder.Toggle(kind); err != nil {
		app.renderError(w, err.Error())
		return
	}
	app.renderPanel(w)
}

func (app *App) SetTextHandler(w http.ResponseWriter, r *http.Request) {
	app.Builder.SetText(r.FormValue("value"))
	app.renderPanel(w)
}

func (app *App) SetColorHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.Builder.SetColor(r.FormValue("value")); err != nil {
		app.renderError(w, err.Error())
		return
	}
	app.renderPanel(w)
}

func (app *App) SetWordsHandler(w http.ResponseWriter, r *http.Request) {
	app.Builder.SetWords(r.FormValue("value"))
	app.renderPanel(w)
}

func (app *App) SetObjectDraftHandler(w http.ResponseWriter, r *http.Request) {
	app.Builder.SetObjectDraft(r.FormValue("value"))
	app.renderPanel(w)
}

// AddObjectHandler commits a tag; duplicates and blank input are suppressed.
func (app *App) AddObjectHandler(w http.ResponseWriter, r *http.Request) {
	app.Builder.AddObject(r.FormValue("value"))
	app.renderPanel(w)
}

func (app *App) RemoveObjectHandler(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	app.Builder.RemoveObject(tag)
	app.renderPanel(w)
}

// BackspaceObjectHandler handles backspace in the empty tag input: the
// most-recently-added tag is removed.
func (app *App) BackspaceObjectHandler(w http.ResponseWriter, r *http.Request) {
	app.Builder.BackspaceObject()
	app.renderPanel(w)
}

func (app *App) SetIntervalPartHandler(w http.ResponseWriter, r *http.Request) {
	ep := criteria.Endpoint(r.FormValue("endpoint"))
	part, err := strconv.Atoi(r.FormValue("part"))
	if err != nil {
		app.renderError(w, "Invalid time component")
		return
	}

	if err := app.Builder.SetIntervalPart(ep, part, r.FormValue("value")); err != nil {
		app.renderError(w, err.Error())
		return
	}
	app.renderPanel(w)
}

func (app *App) BlurIntervalHandler(w http.ResponseWriter, r *http.Request) {
	ep := criteria.Endpoint(r.FormValue("endpoint"))
	if err := app.Builder.BlurInterval(ep); err != nil {
		app.renderError(w, err.Error())
		return
	}
	app.renderPanel(w)
}

// SearchHandler runs the explicit search action: the builder assembles the
// criteria and notifies its consumer (the orchestrator), then the resolved
// result state is rendered.
func (app *App) SearchHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("HX-Trigger", "searchResolved")
	app.Builder.Build()
	app.renderResults(w)
}

// ResetHandler restores the default panel and, through the builder's
// build+notify sequence, re-runs the search with the empty criteria.
func (app *App) ResetHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("HX-Trigger", "filtersReset")
	app.Builder.Reset()
	app.renderPanel(w)
}

// ResultsPartialHandler re-renders the result area, used by the page to
// refresh after out-of-band state changes such as a panel reset.
func (app *App) ResultsPartialHandler(w http.ResponseWriter, r *http.Request) {
	app.renderResults(w)
}

// ResultsHandler exposes the current result-area snapshot as JSON.
func (app *App) ResultsHandler(w http.ResponseWriter, r *http.Request) {
	state := app.Search.State()
	writeJSON(w, http.StatusOK, map[string]any{
		"display_state":      state.DisplayState(),
		"videos":             state.Videos,
		"error":              state.Error,
		"fallback":           state.Fallback,
		"extracted_keywords": state.ExtractedKeywords,
		"original_text":      state.OriginalText,
	})
}

func (app *App) DismissErrorHandler(w http.ResponseWriter, r *http.Request) {
	app.Search.DismissError()
	app.renderResults(w)
}

// MediaUploadHandler stores an uploaded reference image/video and attaches its
// stored filename to the media filter.
func (app *App) MediaUploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(app.MaxUploadSize); err != nil {
		app.renderError(w, "File too large")
		return
	}

	file, header, err := r.FormFile("media")
	if err != nil {
		app.renderError(w, "Failed to get file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") && !strings.HasPrefix(contentType, "image/") {
		app.renderError(w, "Only image or video reference files are allowed")
		return
	}

	filename, err := app.Storage.SaveFile(file, storage.FileInfo{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
	})
	if err != nil {
		app.renderError(w, "Failed to save file")
		return
	}

	// A new upload replaces the previous reference media.
	if previous := app.Builder.Snapshot().File; previous != "" && previous != filename {
		if err := app.Storage.DeleteFile(previous); err != nil {
			log.Printf("deleting replaced reference media %s: %v", previous, err)
		}
	}

	app.Builder.SetFile(filename)
	w.Header().Set("HX-Trigger", "mediaUploaded")
	app.renderSuccess(w, "Reference media uploaded")
}

// MediaFileHandler streams a stored reference file back, e.g. for the panel
// preview.
func (app *App) MediaFileHandler(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	file, err := app.Storage.OpenFile(filename)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	http.ServeContent(w, r, filename, time.Time{}, file)
}

func (app *App) renderError(w http.ResponseWriter, message string) {
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `<div class="alert alert-error">%s</div>`, template.HTMLEscapeString(message))
}

func (app *App) renderSuccess(w http.ResponseWriter, message string) {
	fmt.Fprintf(w, `<div class="alert alert-success">%s</div>`, template.HTMLEscapeString(message))
}
