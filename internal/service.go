package internal

import (
	"context"
	"io"

	"github.com/deevus/matchday-tui/gateway"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/store"
)

// Feed streams subject updates. livefeed.Feed implements it.
type Feed interface {
	Start(ctx context.Context, subjectID string, onUpdate func(match.Subject))
	Stop()
}

// Services holds the initialized backends for one server profile.
type Services struct {
	Gateway gateway.Gateway
	// Feed is nil when the server has no live endpoint.
	Feed  Feed
	Store store.Store
}

// NewServices creates a Services container from the given backends.
func NewServices(gw gateway.Gateway, feed Feed, st store.Store) *Services {
	if st == nil {
		st = store.NewMemory()
	}
	return &Services{
		Gateway: gw,
		Feed:    feed,
		Store:   st,
	}
}

// Close stops the feed and releases the store.
func (s *Services) Close() error {
	if s.Feed != nil {
		s.Feed.Stop()
	}
	if c, ok := s.Store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
