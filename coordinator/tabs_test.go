package coordinator_test

import (
	"errors"
	"testing"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
)

func TestRequirementsFor(t *testing.T) {
	want := map[coordinator.TabID]string{
		coordinator.TabEvents:    "events",
		coordinator.TabLineups:   "events,lineups,playerStats",
		coordinator.TabStats:     "stats",
		coordinator.TabStandings: "standings",
		coordinator.TabPower:     "events,standings,power",
		coordinator.TabSupport:   "",
	}
	for _, tab := range coordinator.Tabs() {
		got, err := coordinator.RequirementsFor(tab)
		if err != nil {
			t.Fatalf("RequirementsFor(%s): %v", tab, err)
		}
		if got.String() != want[tab] {
			t.Errorf("RequirementsFor(%s) = %q, want %q", tab, got, want[tab])
		}
	}
}

func TestRequirementsFor_Unknown(t *testing.T) {
	_, err := coordinator.RequirementsFor("highlights")
	if !errors.Is(err, coordinator.ErrUnknownTab) {
		t.Errorf("expected ErrUnknownTab, got %v", err)
	}
}

func TestParseTab(t *testing.T) {
	tab, err := coordinator.ParseTab(" Lineups ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tab != coordinator.TabLineups {
		t.Errorf("expected lineups, got %s", tab)
	}
	if _, err := coordinator.ParseTab("nope"); err == nil {
		t.Error("expected error for unknown tab")
	}
}

func TestTabID_IndexAndLabel(t *testing.T) {
	if coordinator.TabEvents.Index() != 0 || coordinator.TabSupport.Index() != 5 {
		t.Error("unexpected tab order")
	}
	if coordinator.TabID("x").Index() != -1 {
		t.Error("expected -1 for unknown tab")
	}
	if coordinator.TabStandings.Label() != "Standings" {
		t.Errorf("unexpected label %q", coordinator.TabStandings.Label())
	}
}

func TestAssemble_MissingKind(t *testing.T) {
	_, err := coordinator.Assemble(coordinator.TabPower, sample(kinds(match.KindPower, match.KindEvents)))
	if !errors.Is(err, coordinator.ErrMissingKind) {
		t.Errorf("expected ErrMissingKind, got %v", err)
	}
}

func TestAssemble_Support(t *testing.T) {
	data, err := coordinator.Assemble(coordinator.TabSupport, match.Payload{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if data.Tab() != coordinator.TabSupport {
		t.Errorf("expected support payload, got %s", data.Tab())
	}
}

func TestGenerationGuard(t *testing.T) {
	var g coordinator.GenerationGuard
	first := g.Current()
	if !g.IsCurrent(first) {
		t.Error("expected current generation to be current")
	}
	next := g.Bump()
	if next <= first {
		t.Errorf("expected generation to increase, got %d after %d", next, first)
	}
	if g.IsCurrent(first) {
		t.Error("expected old generation to be stale")
	}
	if g.Current() != next {
		t.Error("Current should not advance the generation")
	}
}
