// Package gateway fetches match data from the livescore API.
package gateway

import (
	"context"
	"fmt"

	"github.com/deevus/matchday-tui/match"
)

// Gateway fetches match data. Fetch returns a payload with a value (possibly
// empty) for every requested kind.
type Gateway interface {
	Fetch(ctx context.Context, subjectID string, kinds match.KindSet) (match.Payload, error)
	Subject(ctx context.Context, subjectID string) (match.Subject, error)
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
}

// Mock is a Gateway whose behavior is supplied by func fields. Nil funcs return
// empty results.
type Mock struct {
	FetchFunc   func(ctx context.Context, subjectID string, kinds match.KindSet) (match.Payload, error)
	SubjectFunc func(ctx context.Context, subjectID string) (match.Subject, error)
}

func (m *Mock) Fetch(ctx context.Context, subjectID string, kinds match.KindSet) (match.Payload, error) {
	if m.FetchFunc == nil {
		return match.Payload{}, nil
	}
	return m.FetchFunc(ctx, subjectID, kinds)
}

func (m *Mock) Subject(ctx context.Context, subjectID string) (match.Subject, error) {
	if m.SubjectFunc == nil {
		return match.Subject{ID: subjectID}, nil
	}
	return m.SubjectFunc(ctx, subjectID)
}
