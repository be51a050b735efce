package dres

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientLogin(t *testing.T) {
	var gotBody map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/login" {
			t.Errorf("path = %q, want /api/v2/login", r.URL.Path)
		}
		if r.Method != "POST" {
			t.Errorf("method = %q, want POST", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		fmt.Fprint(w, `{"id":"u1","username":"team13","role":"PARTICIPANT","sessionId":"sess-abc"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "team13", "secret")
	login, err := client.Login(context.Background())
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if gotBody["username"] != "team13" || gotBody["password"] != "secret" {
		t.Errorf("credentials = %v", gotBody)
	}
	if login.SessionID != "sess-abc" {
		t.Errorf("SessionID = %q, want sess-abc", login.SessionID)
	}
}

func TestClientLoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"description":"bad credentials"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "team13", "wrong")
	if _, err := client.Login(context.Background()); err == nil {
		t.Error("expected error for rejected login")
	}
}

func TestClientLoginWithoutSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"u1"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "team13", "secret")
	if _, err := client.Login(context.Background()); err == nil {
		t.Error("expected error when no session id is returned")
	}
}

func TestClientFindEvaluation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/client/evaluation/list" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("session"); got != "sess-abc" {
			t.Errorf("session = %q, want sess-abc", got)
		}
		fmt.Fprint(w, `[
			{"id":"e1","name":"OTHER2025","type":"SYNCHRONOUS","status":"CREATED"},
			{"id":"e2","name":"IVADL2025","type":"SYNCHRONOUS","status":"CREATED"}
		]`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "u", "p")
	evaluation, err := client.FindEvaluation(context.Background(), "sess-abc", "IVADL2025")
	if err != nil {
		t.Fatalf("FindEvaluation failed: %v", err)
	}
	if evaluation.ID != "e2" {
		t.Errorf("ID = %q, want e2", evaluation.ID)
	}
}

func TestClientFindEvaluationAmbiguous(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no match", `[{"id":"e1","name":"OTHER2025"}]`},
		{"duplicate match", `[{"id":"e1","name":"IVADL2025"},{"id":"e2","name":"IVADL2025"}]`},
		{"empty list", `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, tt.body)
			}))
			defer server.Close()

			client := NewClient(server.URL, "u", "p")
			if _, err := client.FindEvaluation(context.Background(), "s", "IVADL2025"); err == nil {
				t.Error("expected error when not exactly one evaluation matches")
			}
		})
	}
}

func TestClientSubmit(t *testing.T) {
	var gotPath string
	var gotBody submitBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if got := r.URL.Query().Get("session"); got != "sess-abc" {
			t.Errorf("session = %q, want sess-abc", got)
		}
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		fmt.Fprint(w, `{"status":true,"submission":"CORRECT","description":"Submission correct!"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, "u", "p")
	result, err := client.Submit(context.Background(), "sess-abc", "eval-1", "IVADL2025", "00801", "IVADL", 12.5)
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if gotPath != "/api/v2/submit/eval-1" {
		t.Errorf("path = %q, want /api/v2/submit/eval-1", gotPath)
	}
	if len(gotBody.AnswerSets) != 1 {
		t.Fatalf("answerSets = %+v, want exactly one", gotBody.AnswerSets)
	}

	set := gotBody.AnswerSets[0]
	if set.TaskID != "eval-1" || set.TaskName != "IVADL2025" {
		t.Errorf("answer set = %+v", set)
	}
	if len(set.Answers) != 1 {
		t.Fatalf("answers = %+v, want exactly one", set.Answers)
	}

	a := set.Answers[0]
	if a.MediaItemName != "00801" || a.MediaItemCollectionName != "IVADL" {
		t.Errorf("answer = %+v", a)
	}
	if a.Start != 12500 || a.End != 12500 {
		t.Errorf("bounds = (%d, %d), want ms-converted (12500, 12500)", a.Start, a.End)
	}

	if !result.Correct() {
		t.Error("Correct() = false for a CORRECT submission")
	}
	if result.Description != "Submission correct!" {
		t.Errorf("Description = %q", result.Description)
	}
}

func TestSubmissionResultCorrect(t *testing.T) {
	if (SubmissionResult{Submission: "WRONG"}).Correct() {
		t.Error("WRONG should not count as correct")
	}
	if (SubmissionResult{}).Correct() {
		t.Error("empty verdict should not count as correct")
	}
}
