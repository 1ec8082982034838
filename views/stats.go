package views

import (
	"strconv"
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/widgets"
)

const statBarWidth = 24

// StatsView compares team statistics side by side.
type StatsView struct {
	source Source
}

// NewStatsView creates a StatsView reading from src.
func NewStatsView(src Source) *StatsView {
	return &StatsView{source: src}
}

// ParseStatValue reads a provider stat value such as "55%", "12" or "0.83".
// Missing or unparseable values count as zero.
func ParseStatValue(v string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "%"), 64)
	if err != nil {
		return 0
	}
	return f
}

// orderSides returns the home and away stats blocks. Blocks are matched to the
// subject's team ids, falling back to the order received.
func orderSides(s match.Subject, stats []match.TeamStats) (home, away match.TeamStats) {
	if len(stats) > 0 {
		home = stats[0]
	}
	if len(stats) > 1 {
		away = stats[1]
	}
	if away.Team.ID != 0 && away.Team.ID == s.HomeTeamID {
		home, away = away, home
	}
	return home, away
}

// StatGauges pairs the two sides' statistics into gauges, in home order.
func StatGauges(s match.Subject, stats []match.TeamStats) []*widgets.SplitGauge {
	home, away := orderSides(s, stats)
	awayByType := make(map[string]string, len(away.Statistics))
	for _, it := range away.Statistics {
		awayByType[it.Type] = it.Value
	}

	gauges := make([]*widgets.SplitGauge, 0, len(home.Statistics))
	for _, it := range home.Statistics {
		av := awayByType[it.Type]
		gauges = append(gauges, &widgets.SplitGauge{
			Label:     it.Type,
			Home:      ParseStatValue(it.Value),
			Away:      ParseStatValue(av),
			HomeText:  orDash(it.Value),
			AwayText:  orDash(av),
			BarWidth:  statBarWidth,
			HomeColor: vaxis.IndexColor(4), // blue
			AwayColor: vaxis.IndexColor(1), // red
		})
	}
	return gauges
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}

// Draw renders a title line and one gauge per statistic.
func (sv *StatsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	payload, surf, ok, err := tabData(ctx, sv, sv.source, coordinator.TabStats)
	if !ok {
		return surf, err
	}
	stats := payload.(coordinator.StatsData).Stats
	if len(stats) == 0 {
		return drawEmptyState(ctx, sv, "No statistics yet")
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, sv)
	home, away := orderSides(sv.source.Subject(), stats)
	title := richtext.New([]vaxis.Segment{
		{Text: " " + home.Team.Name, Style: vaxis.Style{Foreground: vaxis.IndexColor(4), Attribute: vaxis.AttrBold}},
		{Text: "  vs  ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		{Text: away.Team.Name, Style: vaxis.Style{Foreground: vaxis.IndexColor(1), Attribute: vaxis.AttrBold}},
	})
	titleSurf, err := title.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, titleSurf)

	row := 2
	for _, g := range StatGauges(sv.source.Subject(), stats) {
		if row >= int(ctx.Max.Height) {
			break
		}
		gs, err := g.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, row, gs)
		row++
	}
	return s, nil
}

func (sv *StatsView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return nil, nil
}
