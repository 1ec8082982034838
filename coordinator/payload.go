package coordinator

import (
	"fmt"

	"github.com/deevus/matchday-tui/match"
)

// TabPayload is the assembled data for one tab. Each tab has exactly one
// variant, and a variant only exists once every kind its tab requires is present.
type TabPayload interface {
	Tab() TabID
	isTabPayload()
}

type EventsData struct {
	Events []match.Event
}

type LineupsData struct {
	Lineups     *match.Lineups
	Events      []match.Event
	PlayerStats match.PlayerStatsMap
}

type StatsData struct {
	Stats []match.TeamStats
}

type StandingsData struct {
	Standings *match.Standings
}

type PowerData struct {
	Power     *match.HeadToHead
	Standings *match.Standings
	Events    []match.Event
}

// SupportData carries nothing; the support tab is view-local state.
type SupportData struct{}

func (EventsData) Tab() TabID    { return TabEvents }
func (LineupsData) Tab() TabID   { return TabLineups }
func (StatsData) Tab() TabID     { return TabStats }
func (StandingsData) Tab() TabID { return TabStandings }
func (PowerData) Tab() TabID     { return TabPower }
func (SupportData) Tab() TabID   { return TabSupport }

func (EventsData) isTabPayload()    {}
func (LineupsData) isTabPayload()   {}
func (StatsData) isTabPayload()     {}
func (StandingsData) isTabPayload() {}
func (PowerData) isTabPayload()     {}
func (SupportData) isTabPayload()   {}

// Assemble builds the tab's payload from p, failing if a required kind is absent.
func Assemble(tab TabID, p match.Payload) (TabPayload, error) {
	reqs, err := RequirementsFor(tab)
	if err != nil {
		return nil, err
	}
	if missing := reqs.Minus(p.Kinds()); !missing.Empty() {
		return nil, fmt.Errorf("%w: %s tab needs %s", ErrMissingKind, tab, missing)
	}

	switch tab {
	case TabEvents:
		return EventsData{Events: p.Events()}, nil
	case TabLineups:
		return LineupsData{Lineups: p.Lineups(), Events: p.Events(), PlayerStats: p.PlayerStats()}, nil
	case TabStats:
		return StatsData{Stats: p.Stats()}, nil
	case TabStandings:
		return StandingsData{Standings: p.Standings()}, nil
	case TabPower:
		return PowerData{Power: p.Power(), Standings: p.Standings(), Events: p.Events()}, nil
	default:
		return SupportData{}, nil
	}
}
