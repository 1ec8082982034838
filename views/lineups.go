package views

import (
	"fmt"
	"strconv"
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/widgets"
)

var lineupCols = []widgets.TableColumn{
	{Width: 3, AlignRight: true}, // number
	{Width: 22},                  // name
	{Width: 4},                   // position
	{Width: 6, AlignRight: true}, // rating
	{Width: 3, AlignRight: true}, // goals
	{Width: 4},                   // cards / sub marker
}

var lineupHeader = []string{"#", "PLAYER", "POS", "RATING", "G", ""}

// LineupsView shows both team sheets with in-match player stats.
type LineupsView struct {
	source Source
}

// NewLineupsView creates a LineupsView reading from src.
func NewLineupsView(src Source) *LineupsView {
	return &LineupsView{source: src}
}

// playerNotes tallies goals, cards and substitutions per player id.
type playerNotes struct {
	goals map[int]int
	marks map[int]string
}

func notesFromEvents(events []match.Event) playerNotes {
	n := playerNotes{goals: map[int]int{}, marks: map[int]string{}}
	for _, e := range events {
		if e.PlayerID == 0 {
			continue
		}
		switch strings.ToLower(e.Type) {
		case "goal":
			if !strings.EqualFold(e.Detail, "own goal") {
				n.goals[e.PlayerID]++
			}
		case "card":
			if strings.Contains(strings.ToLower(e.Detail), "red") {
				n.marks[e.PlayerID] += "R"
			} else {
				n.marks[e.PlayerID] += "Y"
			}
		case "subst":
			n.marks[e.PlayerID] += "↓"
		}
	}
	return n
}

func lineupRows(players []match.LineupPlayer, stats match.PlayerStatsMap, notes playerNotes) [][]string {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rating := ""
		if ps, ok := stats[p.ID]; ok && ps.Rating > 0 {
			rating = strconv.FormatFloat(ps.Rating, 'f', 1, 64)
		}
		goals := ""
		if g := notes.goals[p.ID]; g > 0 {
			goals = strconv.Itoa(g)
		}
		rows = append(rows, []string{strconv.Itoa(p.Number), p.Name, p.Position, rating, goals, notes.marks[p.ID]})
	}
	return rows
}

func (lv *LineupsView) drawSide(ctx vxfw.DrawContext, s *vxfw.Surface, row uint16, side match.TeamLineup, stats match.PlayerStatsMap, notes playerNotes) (uint16, error) {
	title := []vaxis.Segment{{Text: " " + side.Team.Name, Style: vaxis.Style{Attribute: vaxis.AttrBold}}}
	if side.Formation != "" {
		title = append(title, vaxis.Segment{Text: "  " + side.Formation})
	}
	if side.Coach != "" {
		title = append(title, vaxis.Segment{Text: "  coach " + side.Coach, Style: vaxis.Style{Attribute: vaxis.AttrDim}})
	}

	parts := []vxfw.Widget{
		richtext.New(title),
		&widgets.Table{Columns: lineupCols, Header: lineupHeader, Rows: lineupRows(side.StartXI, stats, notes)},
	}
	if len(side.Substitutes) > 0 {
		parts = append(parts,
			richtext.New([]vaxis.Segment{{Text: " Substitutes", Style: vaxis.Style{Attribute: vaxis.AttrDim}}}),
			&widgets.Table{Columns: lineupCols, Rows: lineupRows(side.Substitutes, stats, notes)},
		)
	}

	for _, p := range parts {
		if row >= ctx.Max.Height {
			break
		}
		surf, err := p.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - row}))
		if err != nil {
			return row, err
		}
		s.AddChild(0, int(row), surf)
		row += surf.Size.Height
	}
	return row, nil
}

// Draw renders the home sheet above the away sheet.
func (lv *LineupsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	payload, surf, ok, err := tabData(ctx, lv, lv.source, coordinator.TabLineups)
	if !ok {
		return surf, err
	}
	data := payload.(coordinator.LineupsData)
	if data.Lineups == nil {
		return drawEmptyState(ctx, lv, "Lineups not announced yet")
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, lv)
	notes := notesFromEvents(data.Events)
	row := uint16(0)
	for i, side := range []match.TeamLineup{data.Lineups.Home, data.Lineups.Away} {
		if i > 0 {
			row++
		}
		if row >= ctx.Max.Height {
			break
		}
		if row, err = lv.drawSide(ctx, &s, row, side, data.PlayerStats, notes); err != nil {
			return vxfw.Surface{}, fmt.Errorf("drawing %s lineup: %w", side.Team.Name, err)
		}
	}
	return s, nil
}

func (lv *LineupsView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return nil, nil
}
