package search

import (
	"context"
	"log"
	"sync"

	"clipseek/internal/criteria"
	"clipseek/internal/metrics"
	"clipseek/internal/models"
	"clipseek/internal/query"
)

// Display states of the result area, in priority order.
const (
	StateIdle      = "idle"
	StateLoading   = "loading"
	StateEmpty     = "empty"
	StatePopulated = "populated"
)

// Backend is the slice of Client the orchestrator depends on.
type Backend interface {
	Multimodal(ctx context.Context, req query.Request) (*Response, error)
}

// State is a snapshot of the result area. Videos are read-only to callers.
type State struct {
	Searched          bool
	Loading           bool
	Error             string
	Fallback          bool
	Videos            []models.Video
	ExtractedKeywords []string
	OriginalText      string
}

// DisplayState resolves the three mutually exclusive render states: loading
// while a search is outstanding, empty after a zero-result success, populated
// otherwise (including the fallback set). Errors never hide the fallback.
func (s State) DisplayState() string {
	switch {
	case s.Loading:
		return StateLoading
	case !s.Searched:
		return StateIdle
	case len(s.Videos) == 0 && s.Error == "":
		return StateEmpty
	default:
		return StatePopulated
	}
}

// Orchestrator issues translated queries to the backend and owns the shared
// result state. Racing searches resolve last-write-wins, sharpened by a
// monotonically increasing sequence number: a response from a superseded
// request is dropped instead of overwriting a newer one.
type Orchestrator struct {
	backend  Backend
	fallback []models.Video

	mu      sync.Mutex
	seq     uint64 // last sequence number handed out
	applied uint64 // sequence number of the last applied response
	state   State
}

func NewOrchestrator(backend Backend, fallback []models.Video) *Orchestrator {
	return &Orchestrator{
		backend:  backend,
		fallback: fallback,
	}
}

// Search translates the criteria, performs one backend call and resolves the
// result state. On success the displayed collection is fully replaced; an
// empty result list is a valid "no matches" outcome. On any failure the fixed
// fallback set is displayed with an error notice and no automatic retry.
func (o *Orchestrator) Search(ctx context.Context, c criteria.Criteria) State {
	o.mu.Lock()
	o.seq++
	n := o.seq
	o.state.Loading = true
	o.mu.Unlock()

	req, err := query.Translate(c)
	if err != nil {
		return o.fail(n, err.Error())
	}

	resp, err := o.backend.Multimodal(ctx, req)
	if err != nil {
		log.Printf("search %d failed: %v", n, err)
		metrics.SearchesTotal.WithLabelValues("error").Inc()
		return o.fail(n, err.Error())
	}

	metrics.SearchesTotal.WithLabelValues("ok").Inc()

	o.mu.Lock()
	defer o.mu.Unlock()

	if n < o.applied {
		// Superseded by a newer response; keep the current state.
		return o.state
	}
	o.applied = n

	o.state = State{
		Searched:          true,
		Loading:           o.seq > n,
		Videos:            resp.Results,
		ExtractedKeywords: resp.ExtractedKeywords,
		OriginalText:      resp.OriginalText,
	}
	if o.state.Videos == nil {
		o.state.Videos = []models.Video{}
	}
	return o.state
}

func (o *Orchestrator) fail(n uint64, message string) State {
	metrics.FallbackServedTotal.Inc()

	o.mu.Lock()
	defer o.mu.Unlock()

	if n < o.applied {
		return o.state
	}
	o.applied = n

	o.state = State{
		Searched: true,
		Loading:  o.seq > n,
		Error:    message,
		Fallback: true,
		Videos:   o.fallback,
	}
	return o.state
}

// State returns the current result snapshot.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// DismissError clears the inline error notice without touching the displayed
// collection.
func (o *Orchestrator) DismissError() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.Error = ""
}
