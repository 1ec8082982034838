package coordinator

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/store"
)

// CacheKey names the persisted entry for one kind of one subject.
func CacheKey(subjectID string, k match.Kind) string {
	return "matchday:" + subjectID + ":" + string(k)
}

type fingerprintEntry struct {
	Data        json.RawMessage `json:"data"`
	StoredAt    int64           `json:"storedAt"`
	TTLMs       int64           `json:"ttlMs"`
	Fingerprint string          `json:"fingerprint"`
}

// FingerprintCache persists entries that are only valid while they are young
// enough and were stored under the same composition fingerprint.
type FingerprintCache struct {
	store store.Store
	now   func() time.Time
	log   *zap.Logger
}

func NewFingerprintCache(s store.Store, now func() time.Time, log *zap.Logger) *FingerprintCache {
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &FingerprintCache{store: s, now: now, log: log}
}

// Get returns the stored data for key if it has not expired and was stored
// with the same fingerprint. Expired, mismatched and unreadable entries are
// removed and reported as a miss.
func (c *FingerprintCache) Get(key, fingerprint string) (json.RawMessage, bool) {
	raw, ok := c.store.Read(key)
	if !ok {
		return nil, false
	}

	var e fingerprintEntry
	err := json.Unmarshal([]byte(raw), &e)
	if err == nil && len(e.Data) == 0 {
		err = errors.New("entry has no data")
	}
	if err != nil {
		c.log.Warn("discarding corrupt cache entry", zap.String("key", key), zap.Error(err))
		c.store.Remove(key)
		return nil, false
	}

	if c.now().UnixMilli()-e.StoredAt > e.TTLMs {
		c.log.Debug("cache entry expired", zap.String("key", key))
		c.store.Remove(key)
		return nil, false
	}
	if e.Fingerprint != fingerprint {
		c.log.Debug("cache fingerprint mismatch",
			zap.String("key", key),
			zap.String("stored", e.Fingerprint),
			zap.String("current", fingerprint))
		c.store.Remove(key)
		return nil, false
	}
	return e.Data, true
}

// Put stores data under key, replacing any previous entry.
func (c *FingerprintCache) Put(key string, data json.RawMessage, fingerprint string, ttl time.Duration) error {
	b, err := json.Marshal(fingerprintEntry{
		Data:        data,
		StoredAt:    c.now().UnixMilli(),
		TTLMs:       ttl.Milliseconds(),
		Fingerprint: fingerprint,
	})
	if err != nil {
		return fmt.Errorf("encoding cache entry %s: %w", key, err)
	}
	c.store.Write(key, string(b))
	return nil
}

// Invalidate removes key.
func (c *FingerprintCache) Invalidate(key string) {
	c.store.Remove(key)
}
