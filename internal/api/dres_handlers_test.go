package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clipseek/internal/dres"
	"clipseek/internal/search"
)

func postJSON(handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler(rr, req)
	return rr
}

func TestDRESSubmitHandlerLoggedOut(t *testing.T) {
	var localCalls []string
	app := newTestApp(&fakeBackend{resp: &search.Response{}})
	app.DRES = dres.NewSession(nil, "TESTEVAL", "TESTCOLL", nil,
		func(videoID string, timestampSec float64) {
			localCalls = append(localCalls, videoID)
		}, nil)

	rr := postJSON(app.DRESSubmitHandler,
		`{"id":"42","video_path":"http://cdn/clips/00801.mp4","timestamp":7.25}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["success"] != true {
		t.Errorf("expected success, got %v", body)
	}
	if len(localCalls) != 1 || localCalls[0] != "00801" {
		t.Errorf("expected one local submission for 00801, got %v", localCalls)
	}
}

func TestDRESSubmitHandlerRejectsNegativeTimestamp(t *testing.T) {
	app := newTestApp(&fakeBackend{resp: &search.Response{}})

	rr := postJSON(app.DRESSubmitHandler, `{"id":"1","timestamp":-1}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestDRESSubmitHandlerRejectsMissingIdentifier(t *testing.T) {
	app := newTestApp(&fakeBackend{resp: &search.Response{}})

	rr := postJSON(app.DRESSubmitHandler, `{"timestamp":1}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

func TestDRESSubmitHandlerRejectsInvalidBody(t *testing.T) {
	app := newTestApp(&fakeBackend{resp: &search.Response{}})

	rr := postJSON(app.DRESSubmitHandler, `{`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", rr.Code)
	}
}

// newContestServer serves the login, evaluation-list and submit endpoints of a
// contest server that accepts everything.
func newContestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"sessionId": "sess-1"})
	})
	mux.HandleFunc("/api/v2/client/evaluation/list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]string{
			{"id": "eval-1", "name": "TESTEVAL"},
		})
	})
	mux.HandleFunc("/api/v2/submit/eval-1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"status": true, "submission": "CORRECT", "description": "Well done",
		})
	})
	return httptest.NewServer(mux)
}

func TestDRESSubmitHandlerLoggedIn(t *testing.T) {
	server := newContestServer(t)
	defer server.Close()

	app := newTestApp(&fakeBackend{resp: &search.Response{}})
	client := dres.NewClient(server.URL, "user", "pass")
	app.DRES = dres.NewSession(client, "TESTEVAL", "TESTCOLL", nil, nil, nil)
	if err := app.DRES.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}

	rr := postJSON(app.DRESSubmitHandler,
		`{"id":"42","video_path":"http://cdn/clips/00801.mp4","timestamp":7.25}`)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected status 202, got %d", rr.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["submission_id"] == "" {
		t.Error("expected a submission id in the acknowledgment")
	}
	if body["message"] != "Submission sent" {
		t.Errorf("expected acknowledgment message, got %v", body["message"])
	}
}

func TestDRESStatusHandler(t *testing.T) {
	app := newTestApp(&fakeBackend{resp: &search.Response{}})

	req := httptest.NewRequest("GET", "/api/dres/status", nil)
	rr := httptest.NewRecorder()
	app.DRESStatusHandler(rr, req)

	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["connected"] != false {
		t.Errorf("expected disconnected status, got %v", body)
	}
}

func TestDRESHistoryHandlerWithoutStore(t *testing.T) {
	app := newTestApp(&fakeBackend{resp: &search.Response{}})
	app.History = nil

	req := httptest.NewRequest("GET", "/api/dres/history", nil)
	rr := httptest.NewRecorder()
	app.DRESHistoryHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"history":[]`) {
		t.Errorf("expected empty history, got %s", rr.Body.String())
	}
}

func TestSubmissionStatusRoundTrip(t *testing.T) {
	app := newTestApp(&fakeBackend{resp: &search.Response{}})
	router := NewRouter(app)

	req := httptest.NewRequest("GET", "/api/dres/submission/unknown-id", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), dres.StatusIdle) {
		t.Errorf("expected idle status for unknown id, got %s", rr.Body.String())
	}

	req = httptest.NewRequest("POST", "/api/dres/submission/unknown-id/dismiss", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rr.Code)
	}
}
