package views

import (
	"fmt"
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/list"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
)

// EventsView lists match incidents, most recent first.
type EventsView struct {
	source  Source
	events  []match.Event
	subject match.Subject
	list    list.Dynamic
}

// NewEventsView creates an EventsView reading from src.
func NewEventsView(src Source) *EventsView {
	ev := &EventsView{source: src}
	ev.list.DrawCursor = true
	ev.list.Builder = ev.buildItem
	return ev
}

// ItemCount returns the number of events drawn last.
func (ev *EventsView) ItemCount() int {
	return len(ev.events)
}

// FormatMinute renders a match clock such as 45' or 90'+3.
func FormatMinute(minute, extra int) string {
	if extra > 0 {
		return fmt.Sprintf("%d'+%d", minute, extra)
	}
	return fmt.Sprintf("%d'", minute)
}

// sideLabel names the side a team id plays on in subject.
func sideLabel(s match.Subject, teamID int) string {
	switch teamID {
	case s.HomeTeamID:
		return "HOME"
	case s.AwayTeamID:
		return "AWAY"
	}
	return ""
}

func eventStyle(e match.Event) vaxis.Style {
	switch {
	case strings.EqualFold(e.Type, "goal"):
		return vaxis.Style{Foreground: vaxis.IndexColor(2), Attribute: vaxis.AttrBold} // green
	case strings.Contains(strings.ToLower(e.Detail), "red"):
		return vaxis.Style{Foreground: vaxis.IndexColor(1)} // red
	case strings.EqualFold(e.Type, "card"):
		return vaxis.Style{Foreground: vaxis.IndexColor(3)} // yellow
	}
	return vaxis.Style{}
}

func (ev *EventsView) buildItem(i uint, cursor uint) vxfw.Widget {
	if int(i) >= len(ev.events) {
		return nil
	}
	e := ev.events[len(ev.events)-1-int(i)]

	segs := []vaxis.Segment{
		{Text: fmt.Sprintf("%7s  ", FormatMinute(e.Minute, e.Extra)), Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		{Text: fmt.Sprintf("%-6s", sideLabel(ev.subject, e.TeamID))},
		{Text: fmt.Sprintf("%-8s", e.Type), Style: eventStyle(e)},
		{Text: e.Player},
	}
	if e.Assist != "" {
		segs = append(segs, vaxis.Segment{Text: " (" + e.Assist + ")", Style: vaxis.Style{Attribute: vaxis.AttrDim}})
	}
	if e.Detail != "" {
		segs = append(segs, vaxis.Segment{Text: "  " + e.Detail, Style: vaxis.Style{Attribute: vaxis.AttrDim}})
	}
	return richtext.New(segs)
}

// Draw renders the event list, or the loading or error state.
func (ev *EventsView) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	data, surf, ok, err := tabData(ctx, ev, ev.source, coordinator.TabEvents)
	if !ok {
		return surf, err
	}
	ev.events = data.(coordinator.EventsData).Events
	ev.subject = ev.source.Subject()
	if len(ev.events) == 0 {
		return drawEmptyState(ctx, ev, "No events yet")
	}
	return ev.list.Draw(ctx)
}

// HandleEvent delegates to the list widget for navigation.
func (ev *EventsView) HandleEvent(e vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	return ev.list.HandleEvent(e, phase)
}
