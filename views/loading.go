package views

import (
	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"

	"github.com/deevus/matchday-tui/coordinator"
)

// drawMessage renders a single line of text at the top of the view.
func drawMessage(ctx vxfw.DrawContext, owner vxfw.Widget, segs ...vaxis.Segment) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, owner)
	label := richtext.New(segs)
	labelSurf, err := label.Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, labelSurf)
	return s, nil
}

// drawLoadingState renders a "Loading..." message in the view.
func drawLoadingState(ctx vxfw.DrawContext, owner vxfw.Widget) (vxfw.Surface, error) {
	return drawMessage(ctx, owner, vaxis.Segment{Text: "Loading...", Style: vaxis.Style{Attribute: vaxis.AttrDim}})
}

// drawErrorState renders a load failure with a retry hint.
func drawErrorState(ctx vxfw.DrawContext, owner vxfw.Widget, err error) (vxfw.Surface, error) {
	return drawMessage(ctx, owner,
		vaxis.Segment{Text: "Error: " + err.Error(), Style: vaxis.Style{Foreground: vaxis.IndexColor(1)}},
		vaxis.Segment{Text: "  (r to retry)", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
	)
}

// drawEmptyState renders a dim placeholder for data that loaded but is empty.
func drawEmptyState(ctx vxfw.DrawContext, owner vxfw.Widget, text string) (vxfw.Surface, error) {
	return drawMessage(ctx, owner, vaxis.Segment{Text: text, Style: vaxis.Style{Attribute: vaxis.AttrDim}})
}

// tabData returns the tab's payload, or draws the loading or error state
// when there is none.
func tabData(ctx vxfw.DrawContext, owner vxfw.Widget, src Source, tab coordinator.TabID) (coordinator.TabPayload, vxfw.Surface, bool, error) {
	if data, ok := src.DataFor(tab); ok {
		return data, vxfw.Surface{}, true, nil
	}
	if state, err := src.State(tab); state == coordinator.Failed && err != nil {
		s, err := drawErrorState(ctx, owner, err)
		return nil, s, false, err
	}
	s, err := drawLoadingState(ctx, owner)
	return nil, s, false, err
}
