// Package coordinator decides when and what to fetch for each tab of a match
// detail view. It serves tabs from memory when possible, falls back to a
// persisted cache keyed by composition fingerprints, and otherwise issues one
// gateway request per load. Results that arrive after the view moved on to
// another subject are dropped.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deevus/matchday-tui/gateway"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/store"
)

// State is a tab's load state.
type State int

const (
	Idle State = iota
	Loading
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Change reports an asynchronous state transition of one tab.
type Change struct {
	Tab   TabID
	State State
	Err   error
}

// Params configures a Coordinator.
type Params struct {
	Gateway gateway.Gateway
	// Store persists fingerprinted entries. Defaults to an in-memory store.
	Store   store.Store
	Subject match.Subject
	// InitialTab defaults to the power tab.
	InitialTab TabID
	// Initial is data the caller already has; tabs it satisfies start Ready.
	Initial      match.Payload
	Policy       Policy
	FetchTimeout time.Duration
	Now          func() time.Time
	// OnChange is called without internal locks held, from the goroutine that
	// completed the load.
	OnChange func(Change)
	Logger   *zap.Logger
}

type tabState struct {
	state State
	err   error
}

// Coordinator owns the tab state of one match detail view.
type Coordinator struct {
	gateway      gateway.Gateway
	policy       Policy
	fetchTimeout time.Duration
	onChange     func(Change)
	log          *zap.Logger

	gen GenerationGuard
	wg  sync.WaitGroup

	mu        sync.Mutex
	subject   match.Subject
	current   TabID
	states    map[TabID]tabState
	inflight  map[TabID]Generation
	cache     *TabCache
	persisted *FingerprintCache
	watcher   *StatusWatcher
	closed    bool
}

func New(p Params) (*Coordinator, error) {
	if p.Gateway == nil {
		return nil, fmt.Errorf("coordinator: gateway is required")
	}
	tab := p.InitialTab
	if tab == "" {
		tab = TabPower
	}
	if _, err := RequirementsFor(tab); err != nil {
		return nil, err
	}
	if p.Store == nil {
		p.Store = store.NewMemory()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	policy := p.Policy.withDefaults()

	c := &Coordinator{
		gateway:      p.Gateway,
		policy:       policy,
		fetchTimeout: p.FetchTimeout,
		onChange:     p.OnChange,
		log:          p.Logger.Named("coordinator"),
		current:      tab,
		cache:        NewTabCache(p.Now),
		persisted:    NewFingerprintCache(p.Store, p.Now, p.Logger.Named("cache")),
		watcher:      NewStatusWatcher(policy.StatusCooldown, p.Now),
	}
	c.gen.Bump()
	c.resetLocked(p.Subject, p.Initial)
	return c, nil
}

// resetLocked starts over for subject, seeding tabs satisfied by initial.
func (c *Coordinator) resetLocked(subject match.Subject, initial match.Payload) {
	c.subject = subject
	c.cache.Clear()
	c.inflight = make(map[TabID]Generation)
	c.states = make(map[TabID]tabState, len(tabOrder))
	for _, tab := range tabOrder {
		c.states[tab] = tabState{state: Idle}
	}
	c.states[TabSupport] = tabState{state: Ready}
	for _, tab := range c.cache.Seed(initial) {
		c.states[tab] = tabState{state: Ready}
	}
	c.learnParticipantsLocked()
	c.watcher.Reset(subject.Status)
}

// CurrentTab returns the selected tab.
func (c *Coordinator) CurrentTab() TabID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subject returns the subject as last reported.
func (c *Coordinator) Subject() match.Subject {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subject
}

// IsLoading reports whether any tab is loading.
func (c *Coordinator) IsLoading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, st := range c.states {
		if st.state == Loading {
			return true
		}
	}
	return false
}

// Error returns the current tab's failure, if any.
func (c *Coordinator) Error() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.states[c.current].err
}

// State returns a tab's state and failure.
func (c *Coordinator) State(tab TabID) (State, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	st, ok := c.states[tab]
	if !ok {
		return Idle, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	return st.state, st.err
}

// DataFor returns a tab's data if it is loaded.
func (c *Coordinator) DataFor(tab TabID) (TabPayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Get(tab)
}

// LoadedAt returns when a tab's data was stored.
func (c *Coordinator) LoadedAt(tab TabID) (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.cache.Entry(tab)
	return e.LoadedAt, ok
}

// SwitchTab selects tab and loads its data if it is not already loaded or
// loading. A failed tab is retried.
func (c *Coordinator) SwitchTab(tab TabID) error {
	if _, err := RequirementsFor(tab); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if tab == c.current {
		c.mu.Unlock()
		return nil
	}
	c.current = tab
	c.ensureLocked(tab)
	c.mu.Unlock()
	return nil
}

// Prefetch loads tab without selecting it.
func (c *Coordinator) Prefetch(tab TabID) error {
	if _, err := RequirementsFor(tab); err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.ensureLocked(tab)
	c.mu.Unlock()
	return nil
}

// Refresh drops the tab's kinds from memory and the persisted cache, then
// loads them again. Other tabs that shared those kinds go back to Idle. A tab
// that is already loading is left alone.
func (c *Coordinator) Refresh(tab TabID) error {
	reqs, err := RequirementsFor(tab)
	if err != nil {
		return err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.isInflightLocked(tab) {
		c.mu.Unlock()
		return nil
	}
	for _, k := range reqs.Intersect(c.policy.PersistedKinds).Slice() {
		c.persisted.Invalidate(CacheKey(c.subject.ID, k))
	}
	for _, other := range c.cache.Forget(reqs) {
		if st := c.states[other]; st.state == Ready {
			c.states[other] = tabState{state: Idle}
		}
	}
	c.log.Debug("refresh", zap.String("tab", string(tab)), zap.Stringer("kinds", reqs))
	c.ensureLocked(tab)
	c.mu.Unlock()
	return nil
}

// SubjectChanged reports a new subject or an update to the current one. A new
// id discards every loaded and in-flight result and reseeds from initial. An
// update to the same id may invalidate live data when the status moves; an
// empty status or zero team ids leave the known values in place.
func (c *Coordinator) SubjectChanged(subject match.Subject, initial match.Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	if subject.ID != c.subject.ID {
		g := c.gen.Bump()
		c.log.Debug("subject changed",
			zap.String("from", c.subject.ID),
			zap.String("to", subject.ID),
			zap.Uint64("generation", uint64(g)))
		c.resetLocked(subject, initial)
		return
	}

	if subject.Status != "" {
		if c.watcher.Observe(subject.Status) {
			c.invalidateLiveLocked(subject.Status)
		}
		c.subject.Status = subject.Status
	}
	if subject.HomeTeamID != 0 {
		c.subject.HomeTeamID = subject.HomeTeamID
	}
	if subject.AwayTeamID != 0 {
		c.subject.AwayTeamID = subject.AwayTeamID
	}
	if len(subject.Participants) > 0 {
		c.subject.Participants = subject.Participants
	}
}

// invalidateLiveLocked drops live kinds from the persisted cache and from
// memory. Tabs built from them go back to Idle, and the current tab reloads.
func (c *Coordinator) invalidateLiveLocked(status match.Status) {
	live := c.policy.LiveKinds
	for _, k := range live.Slice() {
		c.persisted.Invalidate(CacheKey(c.subject.ID, k))
	}
	for _, tab := range c.cache.Forget(live) {
		if st := c.states[tab]; st.state == Ready {
			c.states[tab] = tabState{state: Idle}
		}
	}
	c.log.Info("status changed, invalidated live data",
		zap.String("subject", c.subject.ID),
		zap.String("status", string(status)),
		zap.Stringer("kinds", live))

	if !mustRequirements(c.current).Intersect(live).Empty() {
		c.ensureLocked(c.current)
	}
}

// Close discards any load still in flight. It does not wait for them.
func (c *Coordinator) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.gen.Bump()
	c.inflight = make(map[TabID]Generation)
}

// Wait blocks until every started fetch has returned.
func (c *Coordinator) Wait() {
	c.wg.Wait()
}

func (c *Coordinator) isInflightLocked(tab TabID) bool {
	g, ok := c.inflight[tab]
	return ok && c.gen.IsCurrent(g)
}

// ensureLocked resolves tab from memory or the persisted cache, or starts a
// fetch for whatever is still missing. Synchronous resolutions are not
// reported through OnChange; the caller reads the new state directly.
func (c *Coordinator) ensureLocked(tab TabID) {
	if c.cache.Has(tab) {
		c.states[tab] = tabState{state: Ready}
		return
	}
	if c.isInflightLocked(tab) {
		return
	}

	g := c.gen.Current()
	missing := mustRequirements(tab).Minus(c.cache.Kinds())
	found := c.lookupPersistedLocked(missing)
	missing = missing.Minus(found.Kinds())

	if missing.Empty() {
		c.log.Debug("served from persisted cache",
			zap.String("tab", string(tab)),
			zap.Stringer("kinds", found.Kinds()))
		c.applyLocked(tab, found, match.Payload{})
		return
	}

	c.states[tab] = tabState{state: Loading}
	c.inflight[tab] = g
	c.wg.Add(1)
	go c.fetch(g, tab, c.subject.ID, missing, found)
}

func (c *Coordinator) fetch(g Generation, tab TabID, subjectID string, missing match.KindSet, found match.Payload) {
	defer c.wg.Done()

	ctx := context.Background()
	if c.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.fetchTimeout)
		defer cancel()
	}

	start := time.Now()
	fresh, err := c.gateway.Fetch(ctx, subjectID, missing)
	if err == nil {
		if absent := missing.Minus(fresh.Kinds()); !absent.Empty() {
			err = fmt.Errorf("%w: response lacks %s", ErrMissingKind, absent)
		}
	}

	c.mu.Lock()
	if !c.gen.IsCurrent(g) {
		c.mu.Unlock()
		c.log.Debug("discarding stale result",
			zap.String("tab", string(tab)),
			zap.String("subject", subjectID),
			zap.Uint64("generation", uint64(g)))
		return
	}
	if cur, ok := c.inflight[tab]; ok && cur == g {
		delete(c.inflight, tab)
	}

	var changes []Change
	if err != nil {
		fe := &FetchError{Tab: tab, Kinds: missing, Err: err}
		c.states[tab] = tabState{state: Failed, err: fe}
		changes = append(changes, Change{Tab: tab, State: Failed, Err: fe})
		c.log.Warn("load failed",
			zap.String("tab", string(tab)),
			zap.Stringer("kinds", missing),
			zap.Error(err))
	} else {
		c.log.Debug("loaded",
			zap.String("tab", string(tab)),
			zap.Stringer("kinds", missing),
			zap.Duration("took", time.Since(start)))
		changes = c.applyLocked(tab, found, fresh.Only(missing))
	}
	c.mu.Unlock()

	c.notify(changes)
}

// applyLocked stores persisted hits and fresh data for tab and marks every tab
// they satisfy as Ready. Fresh data for persisted kinds is written back.
func (c *Coordinator) applyLocked(tab TabID, found, fresh match.Payload) []Change {
	_, also, err := c.cache.Put(tab, found.Merge(fresh))
	if err != nil {
		return c.applyPartialLocked(tab, found, fresh)
	}
	c.learnParticipantsLocked()
	c.persistLocked(fresh)

	c.states[tab] = tabState{state: Ready}
	return append([]Change{{Tab: tab, State: Ready}}, c.markReadyLocked(also)...)
}

// applyPartialLocked keeps data that no longer completes tab because kinds it
// relied on were forgotten while the load was in flight. The gap is loaded
// again and the tab stays Loading until it arrives.
func (c *Coordinator) applyPartialLocked(tab TabID, found, fresh match.Payload) []Change {
	also := c.cache.Merge(found.Merge(fresh))
	c.learnParticipantsLocked()
	c.persistLocked(fresh)

	gap := mustRequirements(tab).Minus(c.cache.Kinds())
	c.log.Debug("kinds dropped while loading",
		zap.String("tab", string(tab)),
		zap.Stringer("gap", gap))

	changes := c.markReadyLocked(also)
	c.states[tab] = tabState{state: Idle}
	c.ensureLocked(tab)
	if c.states[tab].state == Ready {
		changes = append(changes, Change{Tab: tab, State: Ready})
	}
	return changes
}

// markReadyLocked marks tabs populated as a side effect of another load.
func (c *Coordinator) markReadyLocked(also []TabID) []Change {
	var changes []Change
	for _, other := range also {
		if st := c.states[other]; st.state == Loading || st.state == Ready {
			continue
		}
		c.states[other] = tabState{state: Ready}
		changes = append(changes, Change{Tab: other, State: Ready})
	}
	return changes
}

func (c *Coordinator) lookupPersistedLocked(missing match.KindSet) match.Payload {
	var out match.Payload
	lineups := c.cache.Pool().Lineups()
	for _, k := range missing.Intersect(c.policy.PersistedKinds).Slice() {
		fp := match.Fingerprint(c.subject, k, lineups)
		if fp == "" {
			continue
		}
		key := CacheKey(c.subject.ID, k)
		raw, ok := c.persisted.Get(key, fp)
		if !ok {
			continue
		}
		next, err := out.SetKindJSON(k, raw)
		if err != nil {
			c.log.Warn("discarding undecodable cache entry", zap.String("key", key), zap.Error(err))
			c.persisted.Invalidate(key)
			continue
		}
		out = next
	}
	return out
}

func (c *Coordinator) persistLocked(fresh match.Payload) {
	lineups := c.cache.Pool().Lineups()
	for _, k := range fresh.Kinds().Intersect(c.policy.PersistedKinds).Slice() {
		fp := match.Fingerprint(c.subject, k, lineups)
		if fp == "" {
			continue
		}
		key := CacheKey(c.subject.ID, k)
		raw, err := fresh.KindJSON(k)
		if err != nil {
			c.log.Warn("encoding cache entry", zap.String("key", key), zap.Error(err))
			continue
		}
		if err := c.persisted.Put(key, raw, fp, c.policy.TTLFor(fresh.IsEmptyKind(k))); err != nil {
			c.log.Warn("writing cache entry", zap.String("key", key), zap.Error(err))
		}
	}
}

// learnParticipantsLocked fills in the roster from loaded lineups when the
// subject did not carry one.
func (c *Coordinator) learnParticipantsLocked() {
	if len(c.subject.Participants) > 0 {
		return
	}
	if ids := c.cache.Pool().Lineups().PlayerIDs(); len(ids) > 0 {
		c.subject.Participants = ids
	}
}

func (c *Coordinator) notify(changes []Change) {
	if c.onChange == nil {
		return
	}
	for _, ch := range changes {
		c.onChange(ch)
	}
}
