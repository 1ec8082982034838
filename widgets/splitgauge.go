package widgets

import (
	"fmt"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// SplitGauge compares two values on one bar, home from the left and away from
// the right.
//
//	  55%  [███████████░░░░░░░░░]  45%  Ball Possession
type SplitGauge struct {
	Label     string
	Home      float64
	Away      float64
	HomeText  string // shown instead of the value when set, e.g. "55%"
	AwayText  string
	BarWidth  int // character width of the bar (excluding brackets)
	HomeColor vaxis.Color
	AwayColor vaxis.Color
}

const (
	barFilled = '█' // U+2588
	barEmpty  = '░' // U+2591
)

// HomeShare returns the home side's share of the bar in [0, 1]. Two zero
// values split evenly.
func (g *SplitGauge) HomeShare() float64 {
	h, a := g.Home, g.Away
	if h < 0 {
		h = 0
	}
	if a < 0 {
		a = 0
	}
	if h+a == 0 {
		return 0.5
	}
	return h / (h + a)
}

func valueText(text string, v float64) string {
	if text != "" {
		return text
	}
	return fmt.Sprintf("%g", v)
}

// Draw renders the gauge as a single row.
func (g *SplitGauge) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, g)

	col := uint16(0)
	write := func(text string, style vaxis.Style) {
		for _, ch := range ctx.Characters(text) {
			if col+uint16(ch.Width) > ctx.Max.Width {
				return
			}
			s.WriteCell(col, 0, vaxis.Cell{Character: ch, Style: style})
			col += uint16(ch.Width)
		}
	}

	write(fmt.Sprintf("%5s  [", valueText(g.HomeText, g.Home)), vaxis.Style{Attribute: vaxis.AttrBold})

	homeCells := int(g.HomeShare()*float64(g.BarWidth) + 0.5)
	homeStyle := vaxis.Style{Foreground: g.HomeColor}
	awayStyle := vaxis.Style{Foreground: g.AwayColor}
	for i := 0; i < g.BarWidth; i++ {
		if i < homeCells {
			write(string(barFilled), homeStyle)
		} else {
			write(string(barEmpty), awayStyle)
		}
	}

	write(fmt.Sprintf("]  %-5s", valueText(g.AwayText, g.Away)), vaxis.Style{Attribute: vaxis.AttrBold})
	if g.Label != "" {
		write("  "+g.Label, vaxis.Style{Attribute: vaxis.AttrDim})
	}

	return s, nil
}
