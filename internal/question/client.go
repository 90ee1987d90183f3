package question

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prepmate/interview-server/internal/model"
)

var _ model.QuestionService = (*Client)(nil)

// Client talks to the external question generation service over HTTP.
// One POST per turn; the service keeps conversational context keyed by
// the session id it returned on the first call.
//
// The client never retries; a timed-out call surfaces as
// ErrRemoteUnavailable and the orchestrator decides what to do.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a question service client with a bounded timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type interviewRequest struct {
	Domain     string `json:"domain"`
	Difficulty string `json:"difficulty"`
	Answer     string `json:"answer"`
	Session    string `json:"session,omitempty"`
}

type interviewResponse struct {
	SessionID string `json:"session_id"`
	Question  string `json:"ai"`
}

// StartInterview opens a new remote interview session.
func (c *Client) StartInterview(ctx context.Context, domain model.Domain, difficulty model.Difficulty, openingAnswer string) (model.StartedInterview, error) {
	resp, err := c.post(ctx, interviewRequest{
		Domain:     string(domain),
		Difficulty: string(difficulty),
		Answer:     openingAnswer,
	}, false)
	if err != nil {
		return model.StartedInterview{}, err
	}

	if resp.SessionID == "" || resp.Question == "" {
		return model.StartedInterview{}, fmt.Errorf("%w: incomplete response", model.ErrRemoteUnavailable)
	}

	return model.StartedInterview{
		RemoteSessionID: resp.SessionID,
		Question:        resp.Question,
	}, nil
}

// ContinueInterview requests the next question for an existing remote session.
func (c *Client) ContinueInterview(ctx context.Context, remoteSessionID string, domain model.Domain, difficulty model.Difficulty, answer string) (string, error) {
	resp, err := c.post(ctx, interviewRequest{
		Domain:     string(domain),
		Difficulty: string(difficulty),
		Answer:     answer,
		Session:    remoteSessionID,
	}, true)
	if err != nil {
		return "", err
	}

	if resp.Question == "" {
		return "", fmt.Errorf("%w: incomplete response", model.ErrRemoteUnavailable)
	}

	return resp.Question, nil
}

func (c *Client) post(ctx context.Context, reqBody interviewRequest, continuing bool) (interviewResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return interviewResponse{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/interview", bytes.NewReader(body))
	if err != nil {
		return interviewResponse{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return interviewResponse{}, fmt.Errorf("%w: %v", model.ErrRemoteUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return interviewResponse{}, fmt.Errorf("%w: read response: %v", model.ErrRemoteUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return interviewResponse{}, mapStatus(resp.StatusCode, continuing)
	}

	var result interviewResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return interviewResponse{}, fmt.Errorf("%w: unmarshal response: %v", model.ErrRemoteUnavailable, err)
	}

	return result, nil
}

func mapStatus(code int, continuing bool) error {
	switch {
	case code == http.StatusNotFound && continuing:
		// The service forgot the session; only a restart can recover.
		return model.ErrRemoteSessionExpired
	case code == http.StatusBadRequest || code == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: status %d", model.ErrRemoteRejected, code)
	default:
		return fmt.Errorf("%w: status %d", model.ErrRemoteUnavailable, code)
	}
}
