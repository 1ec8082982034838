// Package livefeed streams status updates for one match over a websocket.
package livefeed

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/deevus/matchday-tui/match"
)

// Params holds configuration for creating a Feed.
type Params struct {
	// URL is the live endpoint root, e.g. wss://live.example.com/v1.
	URL                string
	APIKey             string
	InsecureSkipVerify bool
	Logger             *zap.Logger
}

// Feed subscribes to {URL}/matches/{id} and reconnects with exponential
// backoff until stopped.
type Feed struct {
	base   *url.URL
	header http.Header
	dialer *websocket.Dialer
	log    *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// RetryBaseDelay is the base delay for reconnect backoff.
	// Defaults to 1s; tests can set to a small value.
	RetryBaseDelay time.Duration
}

func New(p Params) (*Feed, error) {
	base, err := url.Parse(strings.TrimRight(p.URL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing live url: %w", err)
	}
	switch base.Scheme {
	case "ws", "wss":
	case "http":
		base.Scheme = "ws"
	case "https":
		base.Scheme = "wss"
	default:
		return nil, fmt.Errorf("live url %q must use ws or wss", p.URL)
	}

	header := http.Header{}
	if p.APIKey != "" {
		header.Set("Authorization", "Bearer "+p.APIKey)
	}
	dialer := *websocket.DefaultDialer
	if p.InsecureSkipVerify {
		dialer.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Feed{base: base, header: header, dialer: &dialer, log: log.Named("livefeed")}, nil
}

// Start follows subjectID, calling onUpdate for every message received. Any
// previous subscription is stopped first.
func (f *Feed) Start(ctx context.Context, subjectID string, onUpdate func(match.Subject)) {
	f.Stop()

	subCtx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		f.run(subCtx, subjectID, onUpdate)
	}()
}

// Stop ends the subscription and waits for it to shut down.
func (f *Feed) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	f.wg.Wait()
}

// retryBackoff sleeps with exponential backoff, returning false if ctx is cancelled.
func (f *Feed) retryBackoff(ctx context.Context, attempt int) bool {
	base := f.RetryBaseDelay
	if base == 0 {
		base = time.Second
	}
	delay := base * time.Duration(1<<min(attempt, 5)) // base*1, base*2, base*4, ... base*32 max
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (f *Feed) run(ctx context.Context, subjectID string, onUpdate func(match.Subject)) {
	endpoint := f.base.JoinPath("matches", subjectID).String()
	for attempt := 0; ; attempt++ {
		conn, _, err := f.dialer.DialContext(ctx, endpoint, f.header)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			f.log.Warn("live feed connect failed",
				zap.String("url", endpoint),
				zap.Int("attempt", attempt+1),
				zap.Error(err))
			if !f.retryBackoff(ctx, attempt) {
				return
			}
			continue
		}
		attempt = -1
		f.log.Debug("live feed connected", zap.String("url", endpoint))

		err = f.read(ctx, conn, subjectID, onUpdate)
		if ctx.Err() != nil {
			return
		}
		f.log.Info("live feed closed, reconnecting", zap.Error(err))
		if !f.retryBackoff(ctx, 0) {
			return
		}
	}
}

// read delivers messages until the connection fails or ctx is cancelled.
func (f *Feed) read(ctx context.Context, conn *websocket.Conn, subjectID string, onUpdate func(match.Subject)) error {
	done := make(chan struct{})
	var closer sync.WaitGroup
	closer.Add(1)
	go func() {
		defer closer.Done()
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()
	defer func() {
		close(done)
		closer.Wait()
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		s, err := match.DecodeSubject(data)
		if err != nil {
			f.log.Warn("ignoring malformed live update", zap.Error(err))
			continue
		}
		if s.ID == "" {
			s.ID = subjectID
		}
		if s.ID != subjectID {
			continue
		}
		onUpdate(s)
	}
}
