package widgets

import (
	"strconv"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
)

// Badge marks a tab's load state next to its label.
type Badge int

const (
	BadgeNone Badge = iota
	BadgeLoading
	BadgeFailed
)

func (b Badge) glyph() (string, vaxis.Style) {
	switch b {
	case BadgeLoading:
		return "…", vaxis.Style{Attribute: vaxis.AttrDim}
	case BadgeFailed:
		return "!", vaxis.Style{Foreground: vaxis.IndexColor(1), Attribute: vaxis.AttrBold}
	}
	return "", vaxis.Style{}
}

// TabBar is a horizontal tab navigation widget. Tabs are numbered from 1 so
// the number keys can select them.
type TabBar struct {
	labels []string
	badges []Badge
	active int
}

// NewTabBar creates a TabBar with the given labels. Active defaults to 0.
func NewTabBar(labels []string) *TabBar {
	return &TabBar{labels: labels, badges: make([]Badge, len(labels))}
}

// Active returns the currently active tab index.
func (tb *TabBar) Active() int {
	return tb.active
}

// Len returns the number of tabs.
func (tb *TabBar) Len() int {
	return len(tb.labels)
}

// SetActive sets the active tab index. Out-of-range values are ignored.
func (tb *TabBar) SetActive(i int) {
	if i >= 0 && i < len(tb.labels) {
		tb.active = i
	}
}

// Next advances to the next tab, wrapping around.
func (tb *TabBar) Next() {
	tb.active = (tb.active + 1) % len(tb.labels)
}

// Prev moves to the previous tab, wrapping around.
func (tb *TabBar) Prev() {
	tb.active = (tb.active - 1 + len(tb.labels)) % len(tb.labels)
}

// SetBadge sets the badge for tab i. Out-of-range values are ignored.
func (tb *TabBar) SetBadge(i int, b Badge) {
	if i >= 0 && i < len(tb.badges) {
		tb.badges[i] = b
	}
}

// Badge returns the badge for tab i.
func (tb *TabBar) Badge(i int) Badge {
	if i < 0 || i >= len(tb.badges) {
		return BadgeNone
	}
	return tb.badges[i]
}

// Draw renders the tab bar as a single row: " 1 Events | 2 Lineups… | 3 Stats! "
// Active tab is rendered with reverse video.
func (tb *TabBar) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, 1, tb)

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

	for i, label := range tb.labels {
		if i > 0 {
			write(" | ", vaxis.Style{})
		}

		style := vaxis.Style{}
		if i == tb.active {
			style.Attribute |= vaxis.AttrReverse
		}
		write(" "+strconv.Itoa(i+1)+" "+label, style)

		glyph, badgeStyle := tb.badges[i].glyph()
		if i == tb.active {
			badgeStyle.Attribute |= vaxis.AttrReverse
		}
		write(glyph, badgeStyle)
		write(" ", style)
	}

	return s, nil
}
