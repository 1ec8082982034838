package views

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/dustin/go-humanize"

	"github.com/deevus/matchday-tui/widgets"
)

// Pick is the viewer's predicted result.
type Pick int

const (
	PickNone Pick = iota
	PickHome
	PickDraw
	PickAway
)

func (p Pick) String() string {
	switch p {
	case PickHome:
		return "Home win"
	case PickDraw:
		return "Draw"
	case PickAway:
		return "Away win"
	}
	return "No prediction"
}

// SupportView is a local cheer counter and prediction. It holds no match data
// and nothing is sent anywhere.
type SupportView struct {
	home, away int
	pick       Pick
}

// NewSupportView creates an empty SupportView.
func NewSupportView() *SupportView {
	return &SupportView{}
}

// Cheers returns the home and away cheer counts.
func (sv *SupportView) Cheers() (home, away int) {
	return sv.home, sv.away
}

// Pick returns the current prediction.
func (sv *SupportView) Pick() Pick {
	return sv.pick
}

// Draw renders the cheer gauge and the prediction.
func (sv *SupportView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, sv)
	one := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1})

	gauge := &widgets.SplitGauge{
		Label:     "Cheers",
		Home:      float64(sv.home),
		Away:      float64(sv.away),
		HomeText:  humanize.Comma(int64(sv.home)),
		AwayText:  humanize.Comma(int64(sv.away)),
		BarWidth:  statBarWidth,
		HomeColor: vaxis.IndexColor(4),
		AwayColor: vaxis.IndexColor(1),
	}
	rows := []vxfw.Widget{
		gauge,
		richtext.New([]vaxis.Segment{
			{Text: " Prediction: ", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
			{Text: sv.pick.String(), Style: vaxis.Style{Attribute: vaxis.AttrBold}},
		}),
		richtext.New([]vaxis.Segment{
			{Text: " h/a cheer home/away   p change prediction", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		}),
	}
	for i, w := range rows {
		if i*2 >= int(ctx.Max.Height) {
			break
		}
		ws, err := w.Draw(one)
		if err != nil {
			return vxfw.Surface{}, err
		}
		s.AddChild(0, i*2, ws)
	}
	return s, nil
}

// HandleEvent counts cheers and cycles the prediction.
func (sv *SupportView) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches('h'):
		sv.home++
	case key.Matches('a'):
		sv.away++
	case key.Matches('p'):
		sv.pick = (sv.pick + 1) % (PickAway + 1)
	default:
		return nil, nil
	}
	return vxfw.RedrawCmd{}, nil
}
