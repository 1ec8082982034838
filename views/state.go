package views

import (
	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
)

// TabLoaded is a custom vaxis event posted when a tab's load settles. It is
// sent from the coordinator's fetch goroutines via PostEvent.
type TabLoaded struct {
	Tab   coordinator.TabID
	State coordinator.State
	Err   error
}

// SubjectUpdated is posted by the live feed when the match header changes.
type SubjectUpdated struct {
	Subject match.Subject
}

// Source is the read side of the coordinator the views draw from.
type Source interface {
	DataFor(tab coordinator.TabID) (coordinator.TabPayload, bool)
	State(tab coordinator.TabID) (coordinator.State, error)
	Subject() match.Subject
}
