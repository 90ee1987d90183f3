package model

import "context"

// QuestionService abstracts the external AI question generator. Its
// responses are opaque strings; callers must never branch on their
// content, only on the returned error.
//
// The client does not retry internally. Retry policy belongs to the
// orchestrator so that at most one transcript mutation happens per
// user action.
type QuestionService interface {
	StartInterview(ctx context.Context, domain Domain, difficulty Difficulty, openingAnswer string) (StartedInterview, error)
	ContinueInterview(ctx context.Context, remoteSessionID string, domain Domain, difficulty Difficulty, answer string) (string, error)
}

// StartedInterview is the result of opening a remote interview session.
type StartedInterview struct {
	RemoteSessionID string
	Question        string
}
