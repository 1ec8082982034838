package match_test

import (
	"testing"

	"github.com/deevus/matchday-tui/match"
)

func TestParseStatus(t *testing.T) {
	cases := map[string]match.Status{
		"NS":   match.StatusNotStarted,
		"tbd":  match.StatusNotStarted,
		"1H":   match.StatusInProgress,
		"HT":   match.StatusInProgress,
		"FT":   match.StatusFinished,
		"PEN":  match.StatusFinished,
		"CANC": match.StatusOther,
		"":     match.StatusOther,
	}
	for in, want := range cases {
		if got := match.ParseStatus(in); got != want {
			t.Errorf("ParseStatus(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestFingerprint_PlayerStatsSortedParticipants(t *testing.T) {
	s := match.Subject{ID: "42", Participants: []int{3, 1, 2, 2}}
	if got := match.Fingerprint(s, match.KindPlayerStats, nil); got != "1,2,3" {
		t.Errorf("expected 1,2,3, got %q", got)
	}
}

func TestFingerprint_PlayerStatsFromLineups(t *testing.T) {
	lineups := &match.Lineups{
		Home: match.TeamLineup{StartXI: []match.LineupPlayer{{ID: 9}, {ID: 4}}},
		Away: match.TeamLineup{Substitutes: []match.LineupPlayer{{ID: 12}}},
	}
	got := match.Fingerprint(match.Subject{ID: "42"}, match.KindPlayerStats, lineups)
	if got != "4,9,12" {
		t.Errorf("expected 4,9,12, got %q", got)
	}
}

func TestFingerprint_NotDerivable(t *testing.T) {
	s := match.Subject{ID: "42"}
	if got := match.Fingerprint(s, match.KindPlayerStats, nil); got != "" {
		t.Errorf("expected empty fingerprint, got %q", got)
	}
	if got := match.Fingerprint(s, match.KindPower, nil); got != "" {
		t.Errorf("expected empty fingerprint without team ids, got %q", got)
	}
	if got := match.Fingerprint(s, match.KindEvents, nil); got != "" {
		t.Errorf("expected events to have no fingerprint, got %q", got)
	}
}

func TestFingerprint_Teams(t *testing.T) {
	s := match.Subject{ID: "42", HomeTeamID: 2762, AwayTeamID: 2767}
	if got := match.Fingerprint(s, match.KindStandings, nil); got != "2762,2767" {
		t.Errorf("expected 2762,2767, got %q", got)
	}
}

func TestDecodeSubject(t *testing.T) {
	s, err := match.DecodeSubject([]byte(`{"id": 42, "status": "HT", "home": 2762, "away": 2767, "participants": [10, 20]}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "42" || s.Status != match.StatusInProgress {
		t.Errorf("unexpected subject %+v", s)
	}
	if len(s.Participants) != 2 {
		t.Errorf("expected 2 participants, got %v", s.Participants)
	}

	s, err = match.DecodeSubject([]byte(`{"id": "abc", "status": "FT"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID != "abc" || s.Status != match.StatusFinished {
		t.Errorf("unexpected subject %+v", s)
	}

	if _, err := match.DecodeSubject([]byte(`{`)); err == nil {
		t.Error("expected error for malformed input")
	}
}

func TestDecodeSubject_NoStatus(t *testing.T) {
	for _, body := range []string{`{"id": 42, "participants": [10, 20]}`, `{"id": 42, "status": " "}`} {
		s, err := match.DecodeSubject([]byte(body))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Status != "" {
			t.Errorf("%s: expected empty status, got %q", body, s.Status)
		}
	}
}
