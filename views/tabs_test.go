package views_test

import (
	"strings"
	"testing"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/views"
)

var (
	ulsan = match.Team{ID: 2762, Name: "Ulsan HD"}
	daegu = match.Team{ID: 2767, Name: "Daegu FC"}

	testLineups = &match.Lineups{
		Home: match.TeamLineup{
			Team:      ulsan,
			Formation: "4-2-3-1",
			StartXI: []match.LineupPlayer{
				{ID: 10, Name: "Joo Min-kyu", Number: 18, Position: "F"},
				{ID: 11, Name: "Jo Hyeon-woo", Number: 21, Position: "G"},
			},
			Substitutes: []match.LineupPlayer{{ID: 12, Name: "Kim Min-woo", Number: 7, Position: "M"}},
		},
		Away: match.TeamLineup{
			Team:    daegu,
			StartXI: []match.LineupPlayer{{ID: 20, Name: "Cesinha", Number: 11, Position: "F"}},
		},
	}

	testStandings = &match.Standings{
		League: "K League 1",
		Season: 2024,
		Rows: []match.StandingRow{
			{Rank: 1, Team: ulsan, Played: 30, Won: 18, Drawn: 7, Lost: 5, GoalsFor: 52, GoalsAgainst: 30, Points: 61, Form: "WWDLW"},
			{Rank: 2, Team: match.Team{ID: 2750, Name: "Gangwon FC"}, Played: 30, Points: 55},
			{Rank: 10, Team: daegu, Played: 30, GoalsFor: 33, GoalsAgainst: 41, Points: 36},
		},
	}
)

func TestLineupsView_Draw(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.LineupsData{
		Lineups: testLineups,
		Events: []match.Event{
			{Minute: 12, TeamID: 2762, PlayerID: 10, Type: "Goal"},
			{Minute: 30, TeamID: 2767, PlayerID: 20, Type: "Card", Detail: "Yellow Card"},
		},
		PlayerStats: match.PlayerStatsMap{10: {PlayerID: 10, Rating: 8.4}},
	})

	s, err := views.NewLineupsView(src).Draw(testDrawContext(80, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := surfaceText(s)
	for _, want := range []string{"Ulsan HD", "4-2-3-1", "Joo Min-kyu", "8.4", "Substitutes", "Daegu FC", "Cesinha"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in lineup, got %q", want, text)
		}
	}
	if strings.Index(text, "Ulsan HD") > strings.Index(text, "Daegu FC") {
		t.Error("expected home side first")
	}
}

func TestLineupsView_NotAnnounced(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.LineupsData{})

	s, err := views.NewLineupsView(src).Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(surfaceText(s), "not announced") {
		t.Errorf("expected empty state, got %q", surfaceText(s))
	}
}

func TestParseStatValue(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"55%", 55},
		{"12", 12},
		{" 0.83 ", 0.83},
		{"", 0},
		{"null", 0},
	}
	for _, tc := range tests {
		if got := views.ParseStatValue(tc.in); got != tc.want {
			t.Errorf("ParseStatValue(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestStatGauges_OrdersBySubject(t *testing.T) {
	stats := []match.TeamStats{
		{Team: daegu, Statistics: []match.StatItem{{Type: "Shots on Goal", Value: "2"}}},
		{Team: ulsan, Statistics: []match.StatItem{{Type: "Shots on Goal", Value: "7"}, {Type: "Corner Kicks", Value: ""}}},
	}

	gauges := views.StatGauges(testSubject, stats)
	if len(gauges) != 2 {
		t.Fatalf("expected 2 gauges, got %d", len(gauges))
	}
	if gauges[0].Home != 7 || gauges[0].Away != 2 {
		t.Errorf("expected home=7 away=2, got %v/%v", gauges[0].Home, gauges[0].Away)
	}
	if gauges[1].HomeText != "-" || gauges[1].AwayText != "-" {
		t.Errorf("expected dashes for missing values, got %q/%q", gauges[1].HomeText, gauges[1].AwayText)
	}
}

func TestStatsView_Draw(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.StatsData{Stats: []match.TeamStats{
		{Team: ulsan, Statistics: []match.StatItem{{Type: "Ball Possession", Value: "61%"}}},
		{Team: daegu, Statistics: []match.StatItem{{Type: "Ball Possession", Value: "39%"}}},
	}})

	s, err := views.NewStatsView(src).Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := surfaceText(s)
	for _, want := range []string{"Ulsan HD", "Daegu FC", "61%", "39%", "Ball Possession"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q, got %q", want, text)
		}
	}
}

func TestStandingsView_Draw(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.StandingsData{Standings: testStandings})

	s, err := views.NewStandingsView(src).Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := surfaceText(s)
	for _, want := range []string{"K League 1 2024", "1st", "10th", "+22", "-8", "WWDLW"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q, got %q", want, text)
		}
	}
}

func TestStandingsView_NoTable(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.StandingsData{})

	s, err := views.NewStandingsView(src).Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(surfaceText(s), "No league table") {
		t.Errorf("expected empty state, got %q", surfaceText(s))
	}
}

func TestStandingsView_Scroll(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.StandingsData{Standings: testStandings})
	sv := views.NewStandingsView(src)

	// title + header leave room for one row out of three
	if _, err := sv.Draw(testDrawContext(80, 3)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd, _ := sv.HandleEvent(vaxis.Key{Keycode: 'j'}, vxfw.EventPhase(0))
	if cmd == nil || sv.Offset() != 1 {
		t.Fatalf("expected scroll to 1, got %d", sv.Offset())
	}
	sv.HandleEvent(vaxis.Key{Keycode: 'j'}, vxfw.EventPhase(0))
	if cmd, _ := sv.HandleEvent(vaxis.Key{Keycode: 'j'}, vxfw.EventPhase(0)); cmd != nil || sv.Offset() != 2 {
		t.Errorf("expected offset to stop at 2, got %d", sv.Offset())
	}
	sv.HandleEvent(vaxis.Key{Keycode: 'k'}, vxfw.EventPhase(0))
	if sv.Offset() != 1 {
		t.Errorf("expected offset 1 after k, got %d", sv.Offset())
	}
}

func TestPowerView_Draw(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.PowerData{
		Power: &match.HeadToHead{
			HomeID: 2762, AwayID: 2767,
			HomeRating: 78.5, AwayRating: 64.0,
			HomeForm: []int{2, 1, 3, 0, 2},
			AwayForm: []int{0, 1, 1, 0, 1},
			Meetings: []match.H2HResult{{Date: "2024-05-12", HomeID: 2767, AwayID: 2762, HomeGoals: 1, AwayGoals: 3}},
			TopPlayers: []match.TopPlayer{{TeamID: 2762, Name: "Joo Min-kyu", Goals: 14, Rating: 7.6}},
		},
		Standings: testStandings,
		Events:    []match.Event{{TeamID: 2762, Type: "Goal"}, {TeamID: 2762, Type: "Goal"}, {TeamID: 2767, Type: "Card"}},
	})

	s, err := views.NewPowerView(src).Draw(testDrawContext(100, 30))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := surfaceText(s)
	for _, want := range []string{"Ulsan HD  2 - 0  Daegu FC", "Live", "78.5", "1st, 61 pts", "10th, 36 pts", "Daegu FC 1-3 Ulsan HD", "Joo Min-kyu", "14 goals"} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q, got %q", want, text)
		}
	}
}

func TestPowerView_NoData(t *testing.T) {
	src := newFakeSource(testSubject)
	src.set(coordinator.PowerData{})

	s, err := views.NewPowerView(src).Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(surfaceText(s), "No head-to-head") {
		t.Errorf("expected empty state, got %q", surfaceText(s))
	}
}

func TestTablePosition_Unknown(t *testing.T) {
	if got := views.TablePosition(nil, 2762); got != "-" {
		t.Errorf("expected -, got %q", got)
	}
}

func TestSupportView_Cheers(t *testing.T) {
	sv := views.NewSupportView()
	for _, k := range []rune{'h', 'h', 'a', 'p', 'p'} {
		if cmd, _ := sv.HandleEvent(vaxis.Key{Keycode: k}, vxfw.EventPhase(0)); cmd == nil {
			t.Errorf("expected redraw for %q", k)
		}
	}
	if cmd, _ := sv.HandleEvent(vaxis.Key{Keycode: 'x'}, vxfw.EventPhase(0)); cmd != nil {
		t.Error("expected no command for unbound key")
	}

	home, away := sv.Cheers()
	if home != 2 || away != 1 {
		t.Errorf("expected 2/1 cheers, got %d/%d", home, away)
	}
	if sv.Pick() != views.PickDraw {
		t.Errorf("expected draw prediction, got %s", sv.Pick())
	}

	s, err := sv.Draw(testDrawContext(80, 10))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(surfaceText(s), "Prediction: Draw") {
		t.Errorf("expected prediction line, got %q", surfaceText(s))
	}
}
