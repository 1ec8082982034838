package views_test

import (
	"strings"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/match"
)

func testDrawContext(w, h uint16) vxfw.DrawContext {
	return vxfw.DrawContext{
		Max: vxfw.Size{Width: w, Height: h},
		Min: vxfw.Size{},
		Characters: func(s string) []vaxis.Character {
			chars := make([]vaxis.Character, 0, len(s))
			for _, r := range s {
				chars = append(chars, vaxis.Character{Grapheme: string(r), Width: 1})
			}
			return chars
		},
	}
}

// surfaceText flattens a surface tree into text, one line per buffer row.
// Child surfaces follow their parent's rows.
func surfaceText(s vxfw.Surface) string {
	var b strings.Builder
	w := int(s.Size.Width)
	if w > 0 {
		for row := 0; row*w < len(s.Buffer); row++ {
			for _, c := range s.Buffer[row*w : (row+1)*w] {
				b.WriteString(c.Character.Grapheme)
			}
			b.WriteByte('\n')
		}
	}
	for _, child := range s.Children {
		b.WriteString(surfaceText(child.Surface))
	}
	return b.String()
}

type fakeSource struct {
	subject match.Subject
	data    map[coordinator.TabID]coordinator.TabPayload
	states  map[coordinator.TabID]coordinator.State
	errs    map[coordinator.TabID]error
}

func newFakeSource(subject match.Subject) *fakeSource {
	return &fakeSource{
		subject: subject,
		data:    map[coordinator.TabID]coordinator.TabPayload{},
		states:  map[coordinator.TabID]coordinator.State{},
		errs:    map[coordinator.TabID]error{},
	}
}

func (f *fakeSource) set(p coordinator.TabPayload) {
	f.data[p.Tab()] = p
	f.states[p.Tab()] = coordinator.Ready
}

func (f *fakeSource) fail(tab coordinator.TabID, err error) {
	f.states[tab] = coordinator.Failed
	f.errs[tab] = err
}

func (f *fakeSource) DataFor(tab coordinator.TabID) (coordinator.TabPayload, bool) {
	p, ok := f.data[tab]
	return p, ok
}

func (f *fakeSource) State(tab coordinator.TabID) (coordinator.State, error) {
	return f.states[tab], f.errs[tab]
}

func (f *fakeSource) Subject() match.Subject {
	return f.subject
}

var testSubject = match.Subject{ID: "42", Status: match.StatusInProgress, HomeTeamID: 2762, AwayTeamID: 2767}
