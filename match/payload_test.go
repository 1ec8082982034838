package match_test

import (
	"encoding/json"
	"testing"

	"github.com/deevus/matchday-tui/match"
)

func TestPayload_PresenceIsDistinctFromEmpty(t *testing.T) {
	var p match.Payload
	if p.Has(match.KindLineups) {
		t.Fatal("expected zero payload to have no kinds")
	}

	p = p.WithLineups(nil)
	if !p.Has(match.KindLineups) {
		t.Error("expected lineups present after WithLineups(nil)")
	}
	if !p.IsEmptyKind(match.KindLineups) {
		t.Error("expected nil lineups to be empty")
	}
}

func TestPayload_WithDoesNotMutateReceiver(t *testing.T) {
	base := match.Payload{}.WithEvents([]match.Event{{Minute: 12, Type: "Goal"}})
	_ = base.WithStats(nil)
	if base.Has(match.KindStats) {
		t.Error("expected base payload unchanged by WithStats")
	}
}

func TestPayload_Merge(t *testing.T) {
	a := match.Payload{}.
		WithEvents([]match.Event{{Minute: 1}}).
		WithStandings(&match.Standings{League: "K League 1"})
	b := match.Payload{}.WithEvents([]match.Event{{Minute: 2}, {Minute: 3}})

	merged := a.Merge(b)
	if got := len(merged.Events()); got != 2 {
		t.Errorf("expected events from b to win, got %d events", got)
	}
	if merged.Standings() == nil || merged.Standings().League != "K League 1" {
		t.Error("expected standings kept from a")
	}
	if len(a.Events()) != 1 {
		t.Error("expected a unchanged by Merge")
	}
}

func TestPayload_OnlyAndWithout(t *testing.T) {
	p := match.Payload{}.
		WithEvents(nil).
		WithLineups(nil).
		WithPlayerStats(match.PlayerStatsMap{7: {PlayerID: 7}})

	only := p.Only(match.NewKindSet(match.KindEvents, match.KindStats))
	if !only.Kinds().Equal(match.NewKindSet(match.KindEvents)) {
		t.Errorf("expected only events, got %s", only.Kinds())
	}

	without := p.Without(match.NewKindSet(match.KindLineups))
	if without.Has(match.KindLineups) {
		t.Error("expected lineups removed")
	}
	if !without.Has(match.KindPlayerStats) {
		t.Error("expected playerStats kept")
	}
}

func TestPayload_UnmarshalJSON_NullIsPresent(t *testing.T) {
	var p match.Payload
	err := json.Unmarshal([]byte(`{"lineups": null, "events": [{"minute": 9, "type": "Card"}], "unknown": 1}`), &p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Has(match.KindLineups) {
		t.Error("expected null lineups to count as present")
	}
	if !p.Has(match.KindEvents) || len(p.Events()) != 1 {
		t.Errorf("expected 1 event, got %d", len(p.Events()))
	}
	if p.Has(match.KindStats) {
		t.Error("expected stats absent")
	}
}

func TestPayload_KindJSONRoundTrip(t *testing.T) {
	p := match.Payload{}.WithPlayerStats(match.PlayerStatsMap{
		10: {PlayerID: 10, Rating: 7.4, Goals: 1},
	})
	raw, err := p.KindJSON(match.KindPlayerStats)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored, err := match.Payload{}.SetKindJSON(match.KindPlayerStats, raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.PlayerStats()[10].Goals != 1 {
		t.Errorf("expected goals=1, got %d", restored.PlayerStats()[10].Goals)
	}
}

func TestPayload_KindJSON_Absent(t *testing.T) {
	if _, err := (match.Payload{}).KindJSON(match.KindEvents); err == nil {
		t.Error("expected error for absent kind")
	}
}

func TestPayload_SetKindJSON_Corrupt(t *testing.T) {
	if _, err := (match.Payload{}).SetKindJSON(match.KindStats, json.RawMessage(`{"nope"`)); err == nil {
		t.Error("expected decode error")
	}
}

func TestKindSet_Operations(t *testing.T) {
	req := match.NewKindSet(match.KindLineups, match.KindEvents, match.KindPlayerStats)
	have := match.NewKindSet(match.KindEvents)

	missing := req.Minus(have)
	if missing.String() != "lineups,playerStats" {
		t.Errorf("expected lineups,playerStats, got %s", missing)
	}
	if !have.SubsetOf(req) {
		t.Error("expected events to be a subset")
	}
	if req.SubsetOf(have) {
		t.Error("expected requirements not to be a subset of events")
	}
	if !(match.KindSet{}).Empty() {
		t.Error("expected zero KindSet to be empty")
	}
}
