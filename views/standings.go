package views

import (
	"fmt"
	"strconv"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/dustin/go-humanize"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/widgets"
)

var standingsCols = []widgets.TableColumn{
	{Width: 4, AlignRight: true},
	{Width: 20},
	{Width: 3, AlignRight: true},
	{Width: 3, AlignRight: true},
	{Width: 3, AlignRight: true},
	{Width: 3, AlignRight: true},
	{Width: 4, AlignRight: true},
	{Width: 4, AlignRight: true},
	{Width: 6, Style: vaxis.Style{Attribute: vaxis.AttrDim}},
}

var standingsHeader = []string{"POS", "TEAM", "P", "W", "D", "L", "GD", "PTS", "FORM"}

// StandingsView shows the league table with the subject's teams highlighted.
// j/k scroll the table.
type StandingsView struct {
	source Source
	table  widgets.Table
	height int
}

// NewStandingsView creates a StandingsView reading from src.
func NewStandingsView(src Source) *StandingsView {
	return &StandingsView{
		source: src,
		table: widgets.Table{
			Columns:        standingsCols,
			Header:         standingsHeader,
			Gap:            1,
			HighlightColor: vaxis.IndexColor(3), // yellow
		},
	}
}

// Offset returns the index of the first table row shown.
func (sv *StandingsView) Offset() int {
	return sv.table.Offset
}

// FormatGoalDiff renders a goal difference with an explicit sign.
func FormatGoalDiff(gf, ga int) string {
	d := gf - ga
	if d > 0 {
		return "+" + strconv.Itoa(d)
	}
	return strconv.Itoa(d)
}

func standingsRows(st *match.Standings) [][]string {
	rows := make([][]string, 0, len(st.Rows))
	for _, r := range st.Rows {
		rows = append(rows, []string{
			humanize.Ordinal(r.Rank),
			r.Team.Name,
			strconv.Itoa(r.Played),
			strconv.Itoa(r.Won),
			strconv.Itoa(r.Drawn),
			strconv.Itoa(r.Lost),
			FormatGoalDiff(r.GoalsFor, r.GoalsAgainst),
			strconv.Itoa(r.Points),
			r.Form,
		})
	}
	return rows
}

// Draw renders the league name and the table.
func (sv *StandingsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	payload, surf, ok, err := tabData(ctx, sv, sv.source, coordinator.TabStandings)
	if !ok {
		return surf, err
	}
	st := payload.(coordinator.StandingsData).Standings
	if st == nil || len(st.Rows) == 0 {
		return drawEmptyState(ctx, sv, "No league table for this competition")
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, sv)
	title := " " + st.League
	if st.Season > 0 {
		title += fmt.Sprintf(" %d", st.Season)
	}
	titleSurf, err := richtext.New([]vaxis.Segment{
		{Text: title, Style: vaxis.Style{Attribute: vaxis.AttrBold}},
	}).Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, titleSurf)

	subject := sv.source.Subject()
	sv.table.Rows = standingsRows(st)
	sv.table.Highlight = func(i int) bool {
		id := st.Rows[i].Team.ID
		return id != 0 && (id == subject.HomeTeamID || id == subject.AwayTeamID)
	}
	sv.height = int(ctx.Max.Height) - 1
	sv.table.Offset = min(sv.table.Offset, sv.table.MaxOffset(sv.height))

	tableSurf, err := sv.table.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: uint16(max(sv.height, 0))}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, tableSurf)
	return s, nil
}

// HandleEvent scrolls the table on j/k and the arrow keys.
func (sv *StandingsView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches('j'), key.Matches(vaxis.KeyDown):
		if sv.table.Offset < sv.table.MaxOffset(sv.height) {
			sv.table.Offset++
			return vxfw.RedrawCmd{}, nil
		}
	case key.Matches('k'), key.Matches(vaxis.KeyUp):
		if sv.table.Offset > 0 {
			sv.table.Offset--
			return vxfw.RedrawCmd{}, nil
		}
	}
	return nil, nil
}
