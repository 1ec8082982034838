package coordinator

import (
	"fmt"
	"strings"

	"github.com/deevus/matchday-tui/match"
)

// TabID identifies one section of the match detail view.
type TabID string

const (
	TabEvents    TabID = "events"
	TabLineups   TabID = "lineups"
	TabStats     TabID = "stats"
	TabStandings TabID = "standings"
	TabPower     TabID = "power"
	TabSupport   TabID = "support"
)

var tabOrder = []TabID{TabEvents, TabLineups, TabStats, TabStandings, TabPower, TabSupport}

var requirements = map[TabID][]match.Kind{
	TabEvents:    {match.KindEvents},
	TabLineups:   {match.KindLineups, match.KindEvents, match.KindPlayerStats},
	TabStats:     {match.KindStats},
	TabStandings: {match.KindStandings},
	TabPower:     {match.KindPower, match.KindStandings, match.KindEvents},
	TabSupport:   nil, // pure UI state, never fetched
}

// Tabs returns every tab in display order.
func Tabs() []TabID {
	out := make([]TabID, len(tabOrder))
	copy(out, tabOrder)
	return out
}

// RequirementsFor returns the kinds a tab needs.
func RequirementsFor(tab TabID) (match.KindSet, error) {
	kinds, ok := requirements[tab]
	if !ok {
		return match.KindSet{}, fmt.Errorf("%w: %q", ErrUnknownTab, tab)
	}
	return match.NewKindSet(kinds...), nil
}

// mustRequirements is RequirementsFor for tabs already known to be valid.
func mustRequirements(tab TabID) match.KindSet {
	return match.NewKindSet(requirements[tab]...)
}

// ParseTab converts user input such as "Lineups" to a TabID.
func ParseTab(s string) (TabID, error) {
	tab := TabID(strings.ToLower(strings.TrimSpace(s)))
	if _, err := RequirementsFor(tab); err != nil {
		return "", err
	}
	return tab, nil
}

// Index returns the tab's display position, or -1.
func (t TabID) Index() int {
	for i, known := range tabOrder {
		if t == known {
			return i
		}
	}
	return -1
}

// Label is the title shown in the tab bar.
func (t TabID) Label() string {
	switch t {
	case TabEvents:
		return "Events"
	case TabLineups:
		return "Lineups"
	case TabStats:
		return "Stats"
	case TabStandings:
		return "Standings"
	case TabPower:
		return "Power"
	case TabSupport:
		return "Support"
	}
	return string(t)
}
