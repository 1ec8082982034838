package coordinator

import (
	"time"

	"github.com/deevus/matchday-tui/match"
)

const (
	DefaultFilledTTL = 2 * time.Minute
	DefaultEmptyTTL  = 10 * time.Second
)

// Policy controls what is persisted across sessions and for how long.
type Policy struct {
	// FilledTTL applies to entries holding data, EmptyTTL to empty ones.
	FilledTTL time.Duration
	EmptyTTL  time.Duration

	StatusCooldown time.Duration

	// PersistedKinds are written to the store after a fetch.
	PersistedKinds match.KindSet
	// LiveKinds are invalidated when the subject's status changes.
	LiveKinds match.KindSet
}

func DefaultPolicy() Policy {
	return Policy{
		FilledTTL:      DefaultFilledTTL,
		EmptyTTL:       DefaultEmptyTTL,
		StatusCooldown: DefaultStatusCooldown,
		PersistedKinds: match.NewKindSet(match.KindPlayerStats, match.KindPower, match.KindStandings),
		LiveKinds:      match.NewKindSet(match.KindPlayerStats),
	}
}

// withDefaults fills zero fields from DefaultPolicy.
func (p Policy) withDefaults() Policy {
	d := DefaultPolicy()
	if p.FilledTTL <= 0 {
		p.FilledTTL = d.FilledTTL
	}
	if p.EmptyTTL <= 0 {
		p.EmptyTTL = d.EmptyTTL
	}
	if p.StatusCooldown <= 0 {
		p.StatusCooldown = d.StatusCooldown
	}
	if p.PersistedKinds.Empty() {
		p.PersistedKinds = d.PersistedKinds
	}
	if p.LiveKinds.Empty() {
		p.LiveKinds = d.LiveKinds
	}
	return p
}

// TTLFor returns how long an entry may be reused.
func (p Policy) TTLFor(empty bool) time.Duration {
	if empty {
		return p.EmptyTTL
	}
	return p.FilledTTL
}
