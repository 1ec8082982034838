package coordinator

import (
	"time"

	"github.com/deevus/matchday-tui/match"
)

// CacheEntry is one tab's assembled data and when it was stored.
type CacheEntry struct {
	Data     TabPayload
	LoadedAt time.Time
}

// TabCache holds the in-memory data for a single subject. Loaded kinds are kept
// in a shared pool, and each tab's entry is assembled from it. An entry is only
// ever replaced as a whole.
//
// TabCache is not safe for concurrent use; the Coordinator serializes access.
type TabCache struct {
	pool    match.Payload
	entries map[TabID]CacheEntry
	now     func() time.Time
}

func NewTabCache(now func() time.Time) *TabCache {
	if now == nil {
		now = time.Now
	}
	return &TabCache{
		entries: make(map[TabID]CacheEntry),
		now:     now,
	}
}

// Has reports whether every kind the tab requires is present. It is computed
// from the stored kinds and never tracked separately.
func (c *TabCache) Has(tab TabID) bool {
	reqs, err := RequirementsFor(tab)
	if err != nil {
		return false
	}
	return reqs.SubsetOf(c.pool.Kinds())
}

// Get returns the tab's data.
func (c *TabCache) Get(tab TabID) (TabPayload, bool) {
	e, ok := c.Entry(tab)
	return e.Data, ok
}

// Entry returns the tab's entry, assembling one from the pool if the tab is
// satisfied but has no entry yet.
func (c *TabCache) Entry(tab TabID) (CacheEntry, bool) {
	if e, ok := c.entries[tab]; ok {
		return e, true
	}
	if !c.Has(tab) {
		return CacheEntry{}, false
	}
	data, err := Assemble(tab, c.pool)
	if err != nil {
		return CacheEntry{}, false
	}
	e := CacheEntry{Data: data, LoadedAt: c.now()}
	c.entries[tab] = e
	return e, true
}

// Put merges fresh into the pool and replaces the tab's entry. Every other tab
// that fresh now satisfies is populated too: tabs with no entry get one, and
// tabs whose kinds fresh touched are rebuilt. Put returns the tab's data and
// those other tabs.
//
// If the merged data still lacks a kind the tab requires, nothing is stored.
func (c *TabCache) Put(tab TabID, fresh match.Payload) (TabPayload, []TabID, error) {
	merged := c.pool.Merge(fresh)
	data, err := Assemble(tab, merged)
	if err != nil {
		return nil, nil, err
	}

	now := c.now()
	c.pool = merged
	c.entries[tab] = CacheEntry{Data: data, LoadedAt: now}
	return data, c.populate(tab, fresh.Kinds(), now), nil
}

// Merge adds fresh to the pool without building an entry for any particular
// tab, as when a load finishes after some of the kinds it relied on were
// forgotten. It returns the tabs that fresh now satisfies.
func (c *TabCache) Merge(fresh match.Payload) []TabID {
	if fresh.Kinds().Empty() {
		return nil
	}
	c.pool = c.pool.Merge(fresh)
	return c.populate("", fresh.Kinds(), c.now())
}

// populate builds entries for the satisfied tabs other than skip, rebuilding
// those whose kinds were touched.
func (c *TabCache) populate(skip TabID, touched match.KindSet, now time.Time) []TabID {
	var also []TabID
	for _, other := range tabOrder {
		if other == skip {
			continue
		}
		reqs := mustRequirements(other)
		if reqs.Empty() || !reqs.SubsetOf(c.pool.Kinds()) {
			continue
		}
		if _, had := c.entries[other]; had && reqs.Intersect(touched).Empty() {
			continue
		}
		d, err := Assemble(other, c.pool)
		if err != nil {
			continue
		}
		c.entries[other] = CacheEntry{Data: d, LoadedAt: now}
		also = append(also, other)
	}
	return also
}

// Seed stores pre-fetched data and builds entries for every tab it satisfies.
func (c *TabCache) Seed(p match.Payload) []TabID {
	if p.Kinds().Empty() {
		return nil
	}
	c.pool = c.pool.Merge(p)
	now := c.now()
	var seeded []TabID
	for _, tab := range tabOrder {
		reqs := mustRequirements(tab)
		if reqs.Empty() || !reqs.SubsetOf(c.pool.Kinds()) {
			continue
		}
		d, err := Assemble(tab, c.pool)
		if err != nil {
			continue
		}
		c.entries[tab] = CacheEntry{Data: d, LoadedAt: now}
		seeded = append(seeded, tab)
	}
	return seeded
}

// Forget drops the given kinds and every entry built from them. It returns the
// tabs that lost their entry.
func (c *TabCache) Forget(kinds match.KindSet) []TabID {
	c.pool = c.pool.Without(kinds)
	var dropped []TabID
	for _, tab := range tabOrder {
		if mustRequirements(tab).Intersect(kinds).Empty() {
			continue
		}
		if _, ok := c.entries[tab]; ok {
			delete(c.entries, tab)
			dropped = append(dropped, tab)
		}
	}
	return dropped
}

// Clear drops everything, as when the subject changes.
func (c *TabCache) Clear() {
	c.pool = match.Payload{}
	c.entries = make(map[TabID]CacheEntry)
}

// Kinds returns the kinds currently held.
func (c *TabCache) Kinds() match.KindSet {
	return c.pool.Kinds()
}

// Pool returns every loaded kind as one payload.
func (c *TabCache) Pool() match.Payload {
	return c.pool
}
