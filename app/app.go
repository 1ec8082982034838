package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"git.sr.ht/~rockorager/vaxis"
	"git.sr.ht/~rockorager/vaxis/vxfw"
	"git.sr.ht/~rockorager/vaxis/vxfw/richtext"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/deevus/matchday-tui/coordinator"
	"github.com/deevus/matchday-tui/internal"
	"github.com/deevus/matchday-tui/match"
	"github.com/deevus/matchday-tui/views"
	"github.com/deevus/matchday-tui/widgets"
)

// Params holds configuration for creating an App.
type Params struct {
	// Services, when set, is used directly. Otherwise Connect is called on Init.
	Services   *internal.Services
	ServerName string
	MatchID    string
	// InitialTab defaults to the power tab.
	InitialTab   coordinator.TabID
	Policy       coordinator.Policy
	FetchTimeout time.Duration
	Logger       *zap.Logger
	Connect      func(ctx context.Context) (*internal.Services, error)
}

// Connected is posted when Connect succeeds.
type Connected struct {
	Services *internal.Services
}

// ConnectFailed is posted when Connect returns an error.
type ConnectFailed struct {
	Err error
}

// App is the root vxfw widget for matchday-tui.
type App struct {
	services     *internal.Services
	serverName   string
	matchID      string
	initialTab   coordinator.TabID
	policy       coordinator.Policy
	fetchTimeout time.Duration
	connectFn    func(ctx context.Context) (*internal.Services, error)
	log          *zap.Logger

	connectErr error
	coord      *coordinator.Coordinator
	cancel     context.CancelFunc
	wg         sync.WaitGroup

	tabBar  *widgets.TabBar
	views   map[coordinator.TabID]vxfw.Widget
	support *views.SupportView

	postEvent func(vaxis.Event)
}

// New creates the root App widget. Loading starts on vxfw.Init.
func New(p Params) *App {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}
	initial := p.InitialTab
	if initial == "" {
		initial = coordinator.TabPower
	}

	labels := make([]string, 0, len(coordinator.Tabs()))
	for _, tab := range coordinator.Tabs() {
		labels = append(labels, tab.Label())
	}
	tabBar := widgets.NewTabBar(labels)
	tabBar.SetActive(initial.Index())

	return &App{
		services:     p.Services,
		serverName:   p.ServerName,
		matchID:      p.MatchID,
		initialTab:   initial,
		policy:       p.Policy,
		fetchTimeout: p.FetchTimeout,
		connectFn:    p.Connect,
		log:          log.Named("app"),
		tabBar:       tabBar,
		support:      views.NewSupportView(),
	}
}

// SetPostEvent sets the function used to post events to the vaxis event loop.
// Must be called before the app receives vxfw.Init.
func (a *App) SetPostEvent(fn func(vaxis.Event)) {
	a.postEvent = fn
}

func (a *App) post(ev vaxis.Event) {
	if a.postEvent != nil {
		a.postEvent(ev)
	}
}

// IsConnected reports whether services are available.
func (a *App) IsConnected() bool {
	return a.services != nil
}

// Coordinator returns the match's coordinator, or nil before the match starts.
func (a *App) Coordinator() *coordinator.Coordinator {
	return a.coord
}

// ActiveTab returns the selected tab.
func (a *App) ActiveTab() coordinator.TabID {
	if a.coord != nil {
		return a.coord.CurrentTab()
	}
	return a.initialTab
}

// ServerName returns the connected server profile name.
func (a *App) ServerName() string {
	return a.serverName
}

// Close stops the live feed and waits for outstanding loads.
func (a *App) Close() {
	if a.cancel != nil {
		a.cancel()
	}
	if a.services != nil && a.services.Feed != nil {
		a.services.Feed.Stop()
	}
	if a.coord != nil {
		a.coord.Close()
		a.coord.Wait()
	}
	a.wg.Wait()
}

func (a *App) connect() {
	ctx := context.Background()
	if a.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.fetchTimeout)
		defer cancel()
	}
	svc, err := a.connectFn(ctx)
	if err != nil {
		a.post(ConnectFailed{Err: err})
		return
	}
	a.post(Connected{Services: svc})
}

// startMatch builds the coordinator for the match, loads the initial tab and
// starts following live updates.
func (a *App) startMatch() error {
	c, err := coordinator.New(coordinator.Params{
		Gateway:      a.services.Gateway,
		Store:        a.services.Store,
		Subject:      match.Subject{ID: a.matchID},
		InitialTab:   a.initialTab,
		Policy:       a.policy,
		FetchTimeout: a.fetchTimeout,
		OnChange: func(ch coordinator.Change) {
			a.post(views.TabLoaded{Tab: ch.Tab, State: ch.State, Err: ch.Err})
		},
		Logger: a.log,
	})
	if err != nil {
		return fmt.Errorf("starting match %s: %w", a.matchID, err)
	}
	a.coord = c
	a.views = map[coordinator.TabID]vxfw.Widget{
		coordinator.TabEvents:    views.NewEventsView(c),
		coordinator.TabLineups:   views.NewLineupsView(c),
		coordinator.TabStats:     views.NewStatsView(c),
		coordinator.TabStandings: views.NewStandingsView(c),
		coordinator.TabPower:     views.NewPowerView(c),
		coordinator.TabSupport:   a.support,
	}

	if err := c.Prefetch(c.CurrentTab()); err != nil {
		return err
	}
	a.refreshBadges()

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.loadSubject(ctx)
	}()
	if a.services.Feed != nil {
		a.services.Feed.Start(ctx, a.matchID, func(s match.Subject) {
			a.post(views.SubjectUpdated{Subject: s})
		})
	}
	return nil
}

// loadSubject fetches the match header once; the live feed keeps it current.
func (a *App) loadSubject(ctx context.Context) {
	if a.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.fetchTimeout)
		defer cancel()
	}
	s, err := a.services.Gateway.Subject(ctx, a.matchID)
	if err != nil {
		if ctx.Err() == nil {
			a.log.Warn("loading match header", zap.String("match", a.matchID), zap.Error(err))
		}
		return
	}
	a.post(views.SubjectUpdated{Subject: s})
}

// refreshBadges mirrors each tab's load state onto the tab bar.
func (a *App) refreshBadges() {
	if a.coord == nil {
		return
	}
	for _, tab := range coordinator.Tabs() {
		state, _ := a.coord.State(tab)
		badge := widgets.BadgeNone
		switch state {
		case coordinator.Loading:
			badge = widgets.BadgeLoading
		case coordinator.Failed:
			badge = widgets.BadgeFailed
		}
		a.tabBar.SetBadge(tab.Index(), badge)
	}
}

func (a *App) switchTab(tab coordinator.TabID) {
	if err := a.coord.SwitchTab(tab); err != nil {
		a.log.Warn("switching tab", zap.String("tab", string(tab)), zap.Error(err))
		return
	}
	a.tabBar.SetActive(tab.Index())
	a.refreshBadges()
}

func (a *App) activeView() vxfw.Widget {
	return a.views[a.coord.CurrentTab()]
}

func (a *App) headerSegments() []vaxis.Segment {
	subject := a.coord.Subject()
	dim := vaxis.Style{Attribute: vaxis.AttrDim}
	segs := []vaxis.Segment{
		{Text: " " + a.serverName + "  ", Style: dim},
		{Text: "match " + subject.ID + "  ", Style: vaxis.Style{Attribute: vaxis.AttrBold}},
	}
	if subject.Status != "" {
		style := vaxis.Style{}
		if subject.Status == match.StatusInProgress {
			style.Foreground = vaxis.IndexColor(2) // green
		}
		segs = append(segs, vaxis.Segment{Text: subject.Status.Label() + "  ", Style: style})
	}
	if at, ok := a.coord.LoadedAt(a.coord.CurrentTab()); ok {
		segs = append(segs, vaxis.Segment{Text: "updated " + humanize.Time(at), Style: dim})
	}
	return segs
}

// drawStatus renders a full-screen single line message.
func (a *App) drawStatus(ctx vxfw.DrawContext, segs ...vaxis.Segment) (vxfw.Surface, error) {
	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)
	msg, err := richtext.New(segs).Draw(ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1}))
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, msg)
	return s, nil
}

// Draw renders the header, tab bar and active view.
func (a *App) Draw(ctx vxfw.DrawContext) (vxfw.Surface, error) {
	switch {
	case a.connectErr != nil:
		return a.drawStatus(ctx,
			vaxis.Segment{Text: " Error: " + a.connectErr.Error(), Style: vaxis.Style{Foreground: vaxis.IndexColor(1)}},
			vaxis.Segment{Text: "  (q to quit)", Style: vaxis.Style{Attribute: vaxis.AttrDim}},
		)
	case a.services == nil:
		return a.drawStatus(ctx, vaxis.Segment{Text: " Connecting to " + a.serverName + "...", Style: vaxis.Style{Attribute: vaxis.AttrDim}})
	case a.coord == nil:
		return a.drawStatus(ctx, vaxis.Segment{Text: " Loading match " + a.matchID + "...", Style: vaxis.Style{Attribute: vaxis.AttrDim}})
	}

	s := vxfw.NewSurface(ctx.Max.Width, ctx.Max.Height, a)
	row := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: 1})

	headerSurf, err := richtext.New(a.headerSegments()).Draw(row)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 0, headerSurf)

	tabSurf, err := a.tabBar.Draw(row)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 1, tabSurf)

	if ctx.Max.Height <= 3 {
		return s, nil
	}
	viewCtx := ctx.WithMax(vxfw.Size{Width: ctx.Max.Width, Height: ctx.Max.Height - 3})
	viewSurf, err := a.activeView().Draw(viewCtx)
	if err != nil {
		return vxfw.Surface{}, err
	}
	s.AddChild(0, 3, viewSurf)

	return s, nil
}

// CaptureEvent handles global keybindings before views process them.
func (a *App) CaptureEvent(ev vaxis.Event) (vxfw.Command, error) {
	key, ok := ev.(vaxis.Key)
	if !ok {
		return nil, nil
	}
	if key.Matches('q') {
		return vxfw.QuitCmd{}, nil
	}
	if a.coord == nil {
		return nil, nil
	}

	tabs := coordinator.Tabs()
	for i, tab := range tabs {
		if key.Matches(rune('1' + i)) {
			a.switchTab(tab)
			return vxfw.ConsumeAndRedraw(), nil
		}
	}

	switch {
	case key.Matches('r'):
		if err := a.coord.Refresh(a.coord.CurrentTab()); err != nil {
			a.log.Warn("refreshing tab", zap.Error(err))
		}
		a.refreshBadges()
	case key.Matches(vaxis.KeyTab):
		a.tabBar.Next()
		a.switchTab(tabs[a.tabBar.Active()])
	case key.Matches(vaxis.KeyTab, vaxis.ModShift):
		a.tabBar.Prev()
		a.switchTab(tabs[a.tabBar.Active()])
	default:
		return nil, nil
	}
	return vxfw.ConsumeAndRedraw(), nil
}

// HandleEvent handles connection and load events, and delegates the rest to
// the active view.
func (a *App) HandleEvent(ev vaxis.Event, phase vxfw.EventPhase) (vxfw.Command, error) {
	switch ev := ev.(type) {
	case vxfw.Init:
		switch {
		case a.connectFn != nil && a.services == nil:
			a.wg.Add(1)
			go func() {
				defer a.wg.Done()
				a.connect()
			}()
		case a.services != nil && a.coord == nil:
			if err := a.startMatch(); err != nil {
				a.connectErr = err
			}
			return vxfw.RedrawCmd{}, nil
		}
		return nil, nil
	case Connected:
		a.services = ev.Services
		a.connectErr = nil
		if a.coord == nil {
			if err := a.startMatch(); err != nil {
				a.connectErr = err
			}
		}
		return vxfw.RedrawCmd{}, nil
	case ConnectFailed:
		a.log.Error("connecting", zap.String("server", a.serverName), zap.Error(ev.Err))
		a.connectErr = ev.Err
		return vxfw.RedrawCmd{}, nil
	case views.TabLoaded:
		if ev.Err != nil {
			a.log.Warn("tab failed to load", zap.String("tab", string(ev.Tab)), zap.Error(ev.Err))
		}
		a.refreshBadges()
		return vxfw.RedrawCmd{}, nil
	case views.SubjectUpdated:
		if a.coord == nil {
			return nil, nil
		}
		a.coord.SubjectChanged(ev.Subject, match.Payload{})
		a.refreshBadges()
		return vxfw.RedrawCmd{}, nil
	}

	if a.coord == nil {
		return nil, nil
	}
	type handler interface {
		HandleEvent(vaxis.Event, vxfw.EventPhase) (vxfw.Command, error)
	}
	if h, ok := a.activeView().(handler); ok {
		return h.HandleEvent(ev, phase)
	}
	return nil, nil
}
