package gateway

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/deevus/matchday-tui/match"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// kindPaths maps each kind to its endpoint below /matches/{id}.
var kindPaths = map[match.Kind]string{
	match.KindEvents:      "events",
	match.KindLineups:     "lineups",
	match.KindStats:       "stats",
	match.KindStandings:   "standings",
	match.KindPower:       "power",
	match.KindPlayerStats: "player-stats",
}

// HTTPParams holds configuration for creating an HTTP gateway.
type HTTPParams struct {
	BaseURL            string
	APIKey             string
	InsecureSkipVerify bool
	Timeout            time.Duration
	Client             *http.Client // optional; overrides InsecureSkipVerify and Timeout
	Logger             *zap.Logger
}

// HTTP is a Gateway backed by the livescore REST API.
type HTTP struct {
	base   *url.URL
	apiKey string
	client *http.Client
	log    *zap.Logger
}

// NewHTTP creates an HTTP gateway for the given base URL.
func NewHTTP(p HTTPParams) (*HTTP, error) {
	base, err := url.Parse(strings.TrimRight(p.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", p.BaseURL)
	}

	client := p.Client
	if client == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if p.InsecureSkipVerify {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		client = &http.Client{Transport: transport, Timeout: p.Timeout}
	}

	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTP{base: base, apiKey: p.APIKey, client: client, log: log.Named("gateway")}, nil
}

// Fetch requests every kind concurrently and assembles one payload. Any failed
// kind fails the whole fetch.
func (h *HTTP) Fetch(ctx context.Context, subjectID string, kinds match.KindSet) (match.Payload, error) {
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	raw := make(map[match.Kind]json.RawMessage, kinds.Len())

	for _, k := range kinds.Slice() {
		path, ok := kindPaths[k]
		if !ok {
			return match.Payload{}, fmt.Errorf("no endpoint for kind %q", k)
		}
		k := k
		g.Go(func() error {
			body, err := h.get(gctx, "matches", subjectID, path)
			if err != nil {
				return fmt.Errorf("%s: %w", k, err)
			}
			mu.Lock()
			raw[k] = body
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return match.Payload{}, err
	}

	var out match.Payload
	for _, k := range kinds.Slice() {
		next, err := out.SetKindJSON(k, raw[k])
		if err != nil {
			return match.Payload{}, err
		}
		out = next
	}
	h.log.Debug("fetched", zap.String("match", subjectID), zap.Stringer("kinds", kinds))
	return out, nil
}

// Subject fetches the match header: status and team ids.
func (h *HTTP) Subject(ctx context.Context, subjectID string) (match.Subject, error) {
	body, err := h.get(ctx, "matches", subjectID)
	if err != nil {
		return match.Subject{}, err
	}
	s, err := match.DecodeSubject(body)
	if err != nil {
		return match.Subject{}, fmt.Errorf("decoding match %s: %w", subjectID, err)
	}
	if s.ID == "" {
		s.ID = subjectID
	}
	return s, nil
}

func (h *HTTP) get(ctx context.Context, segments ...string) (json.RawMessage, error) {
	u := h.base.JoinPath(segments...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if h.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+h.apiKey)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: u.String(), Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return json.RawMessage("null"), nil
	}
	return body, nil
}
