package dres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"clipseek/internal/metrics"
)

// API is the slice of Client the session depends on.
type API interface {
	Login(ctx context.Context) (*LoginResponse, error)
	FindEvaluation(ctx context.Context, sessionID, name string) (*EvaluationInfo, error)
	Submit(ctx context.Context, sessionID, evaluationID, taskName, mediaItemName, collection string, timestampSec float64) (*SubmissionResult, error)
}

// Notifier receives user-facing notifications. Color follows the contest
// convention: green for an accepted submission, red otherwise.
type Notifier interface {
	Notify(title, message, color string)
}

// LocalHandler receives submissions while the session is logged out, keeping
// the UI usable for plain result curation without contest connectivity.
type LocalHandler func(videoID string, timestampSec float64)

// SubmissionRecord is one entry of the submission history.
type SubmissionRecord struct {
	ID           string    `json:"id"`
	VideoID      string    `json:"video_id"`
	TimestampSec float64   `json:"timestamp_sec"`
	Verdict      string    `json:"verdict"`
	Description  string    `json:"description"`
	Success      bool      `json:"success"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// HistoryStore persists submission attempts.
type HistoryStore interface {
	Record(ctx context.Context, rec SubmissionRecord) error
}

// Outcome is the transient per-attempt result shown in the submission overlay.
type Outcome struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Session owns the contest login state for the application's lifetime. It is
// written once by Connect at startup and only read afterwards; the submission
// flow never mutates it.
type Session struct {
	client         API
	evaluationName string
	collection     string
	notifier       Notifier
	local          LocalHandler
	history        HistoryStore
	tracker        *Tracker

	sessionID    string
	evaluationID string
	loggedIn     bool
}

func NewSession(client API, evaluationName, collection string, notifier Notifier, local LocalHandler, history HistoryStore) *Session {
	return &Session{
		client:         client,
		evaluationName: evaluationName,
		collection:     collection,
		notifier:       notifier,
		local:          local,
		history:        history,
		tracker:        NewTracker(defaultIdleDelay),
	}
}

// Connect runs the startup login + evaluation-lookup sequence once. Any
// failure leaves the session logged out for the rest of the run; there is no
// automatic retry.
func (s *Session) Connect(ctx context.Context) error {
	login, err := s.client.Login(ctx)
	if err != nil {
		return fmt.Errorf("contest login: %w", err)
	}

	evaluation, err := s.client.FindEvaluation(ctx, login.SessionID, s.evaluationName)
	if err != nil {
		return fmt.Errorf("evaluation lookup: %w", err)
	}

	s.sessionID = login.SessionID
	s.evaluationID = evaluation.ID
	s.loggedIn = true
	log.Printf("Connected to contest server, evaluation %s (%s)", s.evaluationName, s.evaluationID)
	return nil
}

func (s *Session) IsLoggedIn() bool {
	return s.loggedIn
}

// EvaluationID returns the resolved evaluation, or "" while logged out.
func (s *Session) EvaluationID() string {
	return s.evaluationID
}

// Tracker exposes the per-submission display state machine.
func (s *Session) Tracker() *Tracker {
	return s.tracker
}

// Submit dispatches one timestamped answer. While logged in, the "submission
// sent" notification fires before the external call and the verdict arrives
// asynchronously through the returned channel and the notifier. While logged
// out, the local handler is invoked exactly once with the original arguments
// and the contest server is never contacted.
//
// The returned id identifies the attempt in the tracker and the history.
func (s *Session) Submit(ctx context.Context, videoID string, timestampSec float64) (string, <-chan Outcome) {
	id := uuid.New().String()
	done := make(chan Outcome, 1)

	s.tracker.Begin(id)

	if !s.loggedIn {
		if s.local != nil {
			s.local(videoID, timestampSec)
		}
		metrics.SubmissionsTotal.WithLabelValues("local").Inc()

		outcome := Outcome{Success: true, Message: "Recorded locally (contest server offline)"}
		s.tracker.Succeed(id)
		done <- outcome
		return id, done
	}

	if s.notifier != nil {
		s.notifier.Notify("Submission sent",
			fmt.Sprintf("VideoId: %s @ %.2f s", videoID, timestampSec), "")
	}

	go s.resolve(ctx, id, videoID, timestampSec, done)
	return id, done
}

func (s *Session) resolve(ctx context.Context, id, videoID string, timestampSec float64, done chan<- Outcome) {
	result, err := s.client.Submit(ctx, s.sessionID, s.evaluationID, s.evaluationName,
		videoID, s.collection, timestampSec)

	var outcome Outcome
	switch {
	case err != nil:
		outcome = Outcome{Success: false, Message: err.Error()}
	case result.Correct():
		outcome = Outcome{Success: true, Message: result.Description}
	default:
		outcome = Outcome{Success: false, Message: result.Description}
	}
	if outcome.Message == "" {
		outcome.Message = "No response"
	}

	if outcome.Success {
		s.tracker.Succeed(id)
		metrics.SubmissionsTotal.WithLabelValues("correct").Inc()
	} else {
		s.tracker.Fail(id)
		metrics.SubmissionsTotal.WithLabelValues("wrong").Inc()
	}

	if s.notifier != nil {
		color := "red"
		if outcome.Success {
			color = "green"
		}
		s.notifier.Notify("Result", outcome.Message, color)
	}

	if s.history != nil {
		verdict := ""
		if result != nil {
			verdict = result.Submission
		}
		rec := SubmissionRecord{
			ID:           id,
			VideoID:      videoID,
			TimestampSec: timestampSec,
			Verdict:      verdict,
			Description:  outcome.Message,
			Success:      outcome.Success,
			SubmittedAt:  time.Now().UTC(),
		}
		if err := s.history.Record(ctx, rec); err != nil {
			log.Printf("recording submission %s: %v", id, err)
		}
	}

	done <- outcome
}
