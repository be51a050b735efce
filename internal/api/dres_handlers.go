package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clipseek/internal/dres"
	"clipseek/internal/models"
)

type submitRequest struct {
	ID           string  `json:"id"`
	VideoPath    string  `json:"video_path"`
	TimestampSec float64 `json:"timestamp"`
}

// DRESSubmitHandler dispatches one contest submission. While logged in, the
// response is an immediate acknowledgment and the verdict arrives through the
// notification channel; while logged out, the local handler runs and the
// outcome is returned directly.
func (app *App) DRESSubmitHandler(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "Invalid submission body",
		})
		return
	}
	if req.TimestampSec < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "Timestamp must not be negative",
		})
		return
	}

	video := models.Video{ID: req.ID, VideoPath: req.VideoPath}
	name := video.SubmissionName()
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false, "message": "Missing video identifier",
		})
		return
	}

	// The verdict outlives this request, so the submission runs against the
	// background context rather than the request's.
	id, done := app.DRES.Submit(context.Background(), name, req.TimestampSec)

	if app.DRES.IsLoggedIn() {
		writeJSON(w, http.StatusAccepted, map[string]any{
			"submission_id": id,
			"status":        app.DRES.Tracker().Status(id),
			"message":       "Submission sent",
		})
		return
	}

	outcome := <-done
	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id": id,
		"success":       outcome.Success,
		"message":       outcome.Message,
	})
}

// DRESStatusHandler reports the contest connection state.
func (app *App) DRESStatusHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"connected":     app.DRES.IsLoggedIn(),
		"evaluation_id": app.DRES.EvaluationID(),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

// DRESHistoryHandler lists recorded submission attempts, newest first.
func (app *App) DRESHistoryHandler(w http.ResponseWriter, r *http.Request) {
	if app.History == nil {
		writeJSON(w, http.StatusOK, map[string]any{"history": []any{}})
		return
	}

	records, err := app.History.List(r.Context(), r.URL.Query().Get("video_id"), 50)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false, "message": "Failed to load submission history",
		})
		return
	}
	if records == nil {
		records = []dres.SubmissionRecord{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"history": records})
}

// SubmissionStatusHandler reports the display state of one attempt.
func (app *App) SubmissionStatusHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id": id,
		"status":        app.DRES.Tracker().Status(id),
	})
}

// SubmissionDismissHandler clears a failed attempt back to idle.
func (app *App) SubmissionDismissHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	app.DRES.Tracker().Dismiss(id)
	writeJSON(w, http.StatusOK, map[string]any{
		"submission_id": id,
		"status":        app.DRES.Tracker().Status(id),
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
