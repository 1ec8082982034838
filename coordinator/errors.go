package coordinator

import (
	"errors"
	"fmt"

	"github.com/deevus/matchday-tui/match"
)

var (
	// ErrUnknownTab is returned for a tab id outside the known set.
	ErrUnknownTab = errors.New("unknown tab")
	// ErrMissingKind means a payload lacks a kind its tab requires.
	ErrMissingKind = errors.New("missing kind")
	// ErrClosed is returned by operations on a coordinator after Close.
	ErrClosed = errors.New("coordinator closed")
)

// FetchError records a failed load for one tab. It is retryable by selecting
// the tab again.
type FetchError struct {
	Tab   TabID
	Kinds match.KindSet
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("loading %s (%s): %v", e.Tab, e.Kinds, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
