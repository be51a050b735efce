package dres

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Client speaks the contest server's evaluation API: login, evaluation lookup
// and timestamped submissions.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
}

func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  baseURL,
		username: username,
		password: password,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type LoginResponse struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	SessionID string `json:"sessionId"`
}

// Login exchanges the configured credentials for a session token.
func (c *Client) Login(ctx context.Context) (*LoginResponse, error) {
	body, err := json.Marshal(map[string]string{
		"username": c.username,
		"password": c.password,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding login request: %w", err)
	}

	loginURL := c.baseURL + "/api/v2/login"
	req, err := http.NewRequestWithContext(ctx, "POST", loginURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contest server returned status %d on login", resp.StatusCode)
	}

	var login LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("decoding login response: %w", err)
	}
	if login.SessionID == "" {
		return nil, fmt.Errorf("login response carried no session id")
	}

	return &login, nil
}

type EvaluationInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Type   string `json:"type"`
	Status string `json:"status"`
}

// EvaluationList fetches the evaluations visible to a session.
func (c *Client) EvaluationList(ctx context.Context, sessionID string) ([]EvaluationInfo, error) {
	listURL := fmt.Sprintf("%s/api/v2/client/evaluation/list?session=%s",
		c.baseURL, url.QueryEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, "GET", listURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("contest server returned status %d on evaluation list", resp.StatusCode)
	}

	var evaluations []EvaluationInfo
	if err := json.NewDecoder(resp.Body).Decode(&evaluations); err != nil {
		return nil, fmt.Errorf("decoding evaluation list: %w", err)
	}

	return evaluations, nil
}

// FindEvaluation resolves the single evaluation matching name. Zero or
// multiple matches are errors.
func (c *Client) FindEvaluation(ctx context.Context, sessionID, name string) (*EvaluationInfo, error) {
	evaluations, err := c.EvaluationList(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var matches []EvaluationInfo
	for _, e := range evaluations {
		if e.Name == name {
			matches = append(matches, e)
		}
	}
	if len(matches) != 1 {
		return nil, fmt.Errorf("evaluation %q: %d matches, want exactly 1", name, len(matches))
	}

	return &matches[0], nil
}

type submitBody struct {
	AnswerSets []answerSet `json:"answerSets"`
}

type answerSet struct {
	TaskID   string   `json:"taskId"`
	TaskName string   `json:"taskName"`
	Answers  []answer `json:"answers"`
}

type answer struct {
	MediaItemName           string `json:"mediaItemName"`
	MediaItemCollectionName string `json:"mediaItemCollectionName"`
	Start                   int64  `json:"start"`
	End                     int64  `json:"end"`
}

type SubmissionResult struct {
	Status      bool   `json:"status"`
	Submission  string `json:"submission"`
	Description string `json:"description"`
}

// Correct reports whether the judge accepted the submission.
func (r SubmissionResult) Correct() bool {
	return r.Submission == "CORRECT"
}

// Submit posts one timestamped answer for an evaluation. The timestamp is a
// point in time within the video, sent as equal start/end millisecond bounds.
func (c *Client) Submit(ctx context.Context, sessionID, evaluationID, taskName, mediaItemName, collection string, timestampSec float64) (*SubmissionResult, error) {
	ms := int64(timestampSec * 1000)
	body, err := json.Marshal(submitBody{
		AnswerSets: []answerSet{
			{
				TaskID:   evaluationID,
				TaskName: taskName,
				Answers: []answer{
					{
						MediaItemName:           mediaItemName,
						MediaItemCollectionName: collection,
						Start:                   ms,
						End:                     ms,
					},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encoding submission: %w", err)
	}

	submitURL := fmt.Sprintf("%s/api/v2/submit/%s?session=%s",
		c.baseURL, url.PathEscape(evaluationID), url.QueryEscape(sessionID))

	req, err := http.NewRequestWithContext(ctx, "POST", submitURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	var result SubmissionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding submission result: %w", err)
	}

	return &result, nil
}
