package views

import (
	"fmt"
	"strconv"
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/dustin/go-humanize"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/widgets"
)

const (
	formSparkWidth = 10
	maxMeetings    = 5
)

// PowerView summarizes the matchup: ratings, table positions, recent form,
// previous meetings and key players.
type PowerView struct {
	source    Source
	homeSpark *widgets.Sparkline
	awaySpark *widgets.Sparkline
}

// NewPowerView creates a PowerView reading from src.
func NewPowerView(src Source) *PowerView {
	floor := 0.0
	pv := &PowerView{
		source:    src,
		homeSpark: widgets.NewSparkline(formSparkWidth),
		awaySpark: widgets.NewSparkline(formSparkWidth),
	}
	pv.homeSpark.Floor = &floor
	pv.awaySpark.Floor = &floor
	pv.homeSpark.Color = vaxis.IndexColor(4) // blue
	pv.awaySpark.Color = vaxis.IndexColor(1) // red
	return pv
}

// Score counts goals per side from the event list.
func Score(s match.Subject, events []match.Event) (home, away int) {
	for _, e := range events {
		if !strings.EqualFold(e.Type, "goal") {
			continue
		}
		switch e.TeamID {
		case s.HomeTeamID:
			home++
		case s.AwayTeamID:
			away++
		}
	}
	return home, away
}

func findRow(st *match.Standings, teamID int) (match.StandingRow, bool) {
	if st == nil {
		return match.StandingRow{}, false
	}
	for _, r := range st.Rows {
		if r.Team.ID == teamID {
			return r, true
		}
	}
	return match.StandingRow{}, false
}

// teamName looks a team up in the table, falling back to its id.
func teamName(st *match.Standings, teamID int) string {
	if r, ok := findRow(st, teamID); ok && r.Team.Name != "" {
		return r.Team.Name
	}
	return "#" + strconv.Itoa(teamID)
}

// TablePosition describes a team's league position, e.g. "3rd, 45 pts".
func TablePosition(st *match.Standings, teamID int) string {
	r, ok := findRow(st, teamID)
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%s, %d pts", humanize.Ordinal(r.Rank), r.Points)
}

func toFloats(v []int) []float64 {
	out := make([]float64, len(v))
	for i, n := range v {
		out[i] = float64(n)
	}
	return out
}

func meetingLine(st *match.Standings, m match.H2HResult) string {
	return fmt.Sprintf("%-12s%s %d-%d %s", m.Date, teamName(st, m.HomeID), m.HomeGoals, m.AwayGoals, teamName(st, m.AwayID))
}

// Draw renders the power summary.
func (pv *PowerView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	payload, surf, ok, err := tabData(ctx, pv, pv.source, coordinator.TabPower)
	if !ok {
		return surf, err
	}
	data := payload.(coordinator.PowerData)
	if data.Power == nil {
		return drawEmptyState(ctx, pv, "No head-to-head data for this match")
	}

	subject := pv.source.Subject()
	h2h := data.Power
	homeID, awayID := subject.HomeTeamID, subject.AwayTeamID
	if homeID == 0 {
		homeID, awayID = h2h.HomeID, h2h.AwayID
	}
	homeName, awayName := teamName(data.Standings, homeID), teamName(data.Standings, awayID)
	hg, ag := Score(subject, data.Events)

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, pv)
	width := ctx.Max.Width
	row := 0
	line := func(w vxfw.Widget, col int) error {
		if row >= int(ctx.Max.Height) {
			return nil
		}
		ls, err := w.Draw(ctx.WithMax(vxfw.Size{Width: width - uint16(min(col, int(width))), Height: 1}))
		if err != nil {
			return err
		}
		s.AddChild(col, row, ls)
		return nil
	}
	text := func(segs ...vaxis.Segment) error {
		err := line(richtext.New(segs), 0)
		row++
		return err
	}
	bold := vaxis.Style{Attribute: vaxis.AttrBold}
	dim := vaxis.Style{Attribute: vaxis.AttrDim}

	if err := text(
		vaxis.Segment{Text: " " + homeName, Style: bold},
		vaxis.Segment{Text: fmt.Sprintf("  %d - %d  ", hg, ag)},
		vaxis.Segment{Text: awayName, Style: bold},
		vaxis.Segment{Text: "  " + subject.Status.Label(), Style: dim},
	); err != nil {
		return vxfw.Surface{}, err
	}
	row++

	rating := &widgets.SplitGauge{
		Label:     "Power rating",
		Home:      h2h.HomeRating,
		Away:      h2h.AwayRating,
		HomeText:  strconv.FormatFloat(h2h.HomeRating, 'f', 1, 64),
		AwayText:  strconv.FormatFloat(h2h.AwayRating, 'f', 1, 64),
		BarWidth:  statBarWidth,
		HomeColor: vaxis.IndexColor(4),
		AwayColor: vaxis.IndexColor(1),
	}
	if err := line(rating, 0); err != nil {
		return vxfw.Surface{}, err
	}
	row++

	if err := text(
		vaxis.Segment{Text: " Table   ", Style: dim},
		vaxis.Segment{Text: fmt.Sprintf("%-22s", TablePosition(data.Standings, homeID))},
		vaxis.Segment{Text: TablePosition(data.Standings, awayID)},
	); err != nil {
		return vxfw.Surface{}, err
	}

	pv.homeSpark.SetValues(toFloats(h2h.HomeForm))
	pv.awaySpark.SetValues(toFloats(h2h.AwayForm))
	if err := line(richtext.New([]vaxis.Segment{{Text: " Form    ", Style: dim}}), 0); err != nil {
		return vxfw.Surface{}, err
	}
	if err := line(pv.homeSpark, 9); err != nil {
		return vxfw.Surface{}, err
	}
	if err := line(pv.awaySpark, 31); err != nil {
		return vxfw.Surface{}, err
	}
	row += 2

	if len(h2h.Meetings) > 0 {
		if err := text(vaxis.Segment{Text: " Previous meetings", Style: bold}); err != nil {
			return vxfw.Surface{}, err
		}
		for i, m := range h2h.Meetings {
			if i == maxMeetings {
				break
			}
			if err := text(vaxis.Segment{Text: "   " + meetingLine(data.Standings, m)}); err != nil {
				return vxfw.Surface{}, err
			}
		}
		row++
	}

	if len(h2h.TopPlayers) > 0 {
		if err := text(vaxis.Segment{Text: " Key players", Style: bold}); err != nil {
			return vxfw.Surface{}, err
		}
		for _, p := range h2h.TopPlayers {
			if err := text(
				vaxis.Segment{Text: fmt.Sprintf("   %-20s", p.Name)},
				vaxis.Segment{Text: fmt.Sprintf("%-22s", teamName(data.Standings, p.TeamID)), Style: dim},
				vaxis.Segment{Text: fmt.Sprintf("%s goals  %.1f", humanize.Comma(int64(p.Goals)), p.Rating)},
			); err != nil {
				return vxfw.Surface{}, err
			}
		}
	}

	return s, nil
}

func (pv *PowerView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return nil, nil
}
