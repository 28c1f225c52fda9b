package view

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/odvcencio/kubedeck/internal/kube"
	"github.com/odvcencio/kubedeck/internal/poll"
	"github.com/odvcencio/kubedeck/internal/state"
)

// fetchTimeout bounds the one-shot lookups behind overlays.
const fetchTimeout = 10 * time.Second

// Options configures the dashboard app.
type Options struct {
	Interval  time.Duration
	Namespace string
	Logger    *zap.Logger

	// Screen overrides the terminal screen, for tests.
	Screen tcell.Screen
}

// App owns the screen, the polling coordinator, and the message loop.
// Everything except view refreshes runs on the loop goroutine.
type App struct {
	screen tcell.Screen
	client *kube.Client
	logger *zap.Logger

	coord *poll.Coordinator
	vis   *poll.Switch

	namespace *state.Signal[string]
	queue     *state.Queue
	msgs      chan Message
	subs      state.Subscriptions

	views   []View
	active  int
	binding *poll.Binding

	overlays  []Overlay
	favorites map[string]bool

	loading    bool
	lastUpdate time.Time
	frame      int
	size       Rect
}

// NewApp wires the views to a shared coordinator gated on terminal
// focus. Call Run to start the loop.
func NewApp(client *kube.Client, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = poll.DefaultInterval
	}

	a := &App{
		screen:    opts.Screen,
		client:    client,
		logger:    logger,
		vis:       poll.NewSwitch(true),
		namespace: state.NewSignal(opts.Namespace),
		msgs:      make(chan Message, 128),
		favorites: make(map[string]bool),
	}
	a.queue = state.NewQueue(func() { a.post(WakeMsg{}) })
	a.coord = poll.New(
		poll.WithInterval(interval),
		poll.WithVisibility(a.vis),
		poll.WithLogger(logger),
	)
	a.views = []View{
		NewOverviewView(client, a.namespace),
		NewNodesView(client),
		NewWorkloadsView(client, a.namespace),
		NewPodsView(client, a.namespace),
		NewSecretsView(client, a.namespace),
	}
	return a
}

// Run initializes the screen and blocks on the message loop until the
// user quits.
func (a *App) Run() error {
	screen := a.screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open screen: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	a.screen = screen
	screen.EnableFocus()
	defer screen.Fini()

	w, h := screen.Size()
	a.size = Rect{Width: w, Height: h}

	a.subs.Add(a.coord.Loading().SubscribeVia(a.queue, func() {
		a.loading = a.coord.Loading().Get()
	}))
	a.subs.Add(a.coord.LastUpdate().SubscribeVia(a.queue, func() {
		a.lastUpdate = a.coord.LastUpdate().Get()
	}))
	defer a.subs.Clear()

	a.bindActive()
	a.coord.Start()
	defer a.coord.Close()

	go a.pollEvents()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	a.draw()
	for {
		select {
		case msg := <-a.msgs:
			if _, quit := msg.(QuitMsg); quit {
				return nil
			}
			a.handle(msg)
		case now := <-ticker.C:
			a.handle(TickMsg{Time: now})
		}
		a.draw()
	}
}

// post delivers a message to the loop from any goroutine.
func (a *App) post(msg Message) {
	select {
	case a.msgs <- msg:
	default:
		a.logger.Warn("dropping message", zap.String("type", fmt.Sprintf("%T", msg)))
	}
}

// pollEvents translates terminal events into loop messages. It exits
// when the screen is finalized.
func (a *App) pollEvents() {
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.post(KeyMsg{Event: ev})
		case *tcell.EventResize:
			w, h := ev.Size()
			a.post(ResizeMsg{Width: w, Height: h})
		case *tcell.EventFocus:
			a.post(FocusMsg{Visible: ev.Focused})
		}
	}
}

func (a *App) handle(msg Message) {
	switch msg := msg.(type) {
	case KeyMsg:
		a.handleKey(msg.Event)
	case ResizeMsg:
		a.size = Rect{Width: msg.Width, Height: msg.Height}
		a.screen.Sync()
	case FocusMsg:
		a.vis.Set(msg.Visible)
	case WakeMsg:
		a.queue.Flush()
	case TickMsg:
		if a.loading {
			a.frame++
		}
	case OverlayMsg:
		a.overlays = append(a.overlays, msg.Overlay)
	case NamespacesMsg:
		a.presentNamespacePicker(msg.Names)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if len(a.overlays) > 0 {
		top := a.overlays[len(a.overlays)-1]
		if top.HandleKey(ev) {
			a.overlays = a.overlays[:len(a.overlays)-1]
		}
		return
	}

	switch ev.Key() {
	case tcell.KeyCtrlC:
		a.post(QuitMsg{})
		return
	case tcell.KeyTab:
		a.switchTab((a.active + 1) % len(a.views))
		return
	case tcell.KeyBacktab:
		a.switchTab((a.active + len(a.views) - 1) % len(a.views))
		return
	case tcell.KeyEnter:
		a.describeSelection()
		return
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= '1' && int(r-'1') < len(a.views) {
			a.switchTab(int(r - '1'))
			return
		}
		switch r {
		case 'q':
			a.post(QuitMsg{})
			return
		case 'r':
			a.coord.Refresh()
			return
		case 'n':
			a.openNamespacePicker()
			return
		case 'd':
			a.describeSelection()
			return
		case '?':
			a.overlays = append(a.overlays, NewHelpOverlay())
			return
		}
	}
	a.views[a.active].HandleKey(ev)
}

// switchTab rebinds the coordinator to the newly active view and asks
// for fresh data right away.
func (a *App) switchTab(idx int) {
	if idx == a.active && a.binding != nil {
		return
	}
	a.active = idx
	a.bindActive()
	a.binding.Refresh()
}

func (a *App) bindActive() {
	if a.binding != nil {
		a.binding.Close()
	}
	a.binding = a.coord.Bind(a.views[a.active].Refresh)
}

// describeSelection fetches the selected resource's YAML off the loop
// and presents it as an overlay.
func (a *App) describeSelection() {
	describer, ok := a.views[a.active].(Describer)
	if !ok {
		return
	}
	sel, ok := describer.Selection()
	if !ok {
		return
	}

	title := sel.Kind + " " + sel.Name
	if sel.Namespace != "" {
		title = sel.Kind + " " + sel.Namespace + "/" + sel.Name
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		src, err := a.client.ResourceYAML(ctx, sel.Kind, sel.Namespace, sel.Name)
		if err != nil {
			a.logger.Warn("describe failed", zap.String("kind", sel.Kind), zap.String("name", sel.Name), zap.Error(err))
			a.post(OverlayMsg{Overlay: NewErrorOverlay(title, err)})
			return
		}
		a.post(OverlayMsg{Overlay: NewDescribeOverlay(title, src)})
	}()
}

// openNamespacePicker lists namespaces off the loop and posts the
// result back; the picker itself is built by the loop because it shares
// the favorites map with every other picker.
func (a *App) openNamespacePicker() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		names, err := a.client.Namespaces(ctx)
		if err != nil {
			a.logger.Warn("list namespaces failed", zap.Error(err))
			a.post(OverlayMsg{Overlay: NewErrorOverlay("Namespaces", err)})
			return
		}
		a.post(NamespacesMsg{Names: names})
	}()
}

// presentNamespacePicker runs on the loop. Applying a choice narrows
// every namespaced view and triggers an immediate refresh.
func (a *App) presentNamespacePicker(names []string) {
	picker := NewNamespacesOverlay(names, a.namespace.Get(), a.favorites, func(ns string) {
		a.namespace.Set(ns)
		a.coord.Refresh()
	})
	a.overlays = append(a.overlays, picker)
}

func (a *App) draw() {
	s := a.screen
	fillRect(s, a.size, ' ', styleDefault)

	names := make([]string, len(a.views))
	for i, v := range a.views {
		names[i] = v.Name()
	}
	drawTabs(s, Rect{X: 0, Y: 0, Width: a.size.Width, Height: 1}, names, a.active)

	body := Rect{X: 0, Y: 1, Width: a.size.Width, Height: a.size.Height - 2}
	a.views[a.active].Draw(s, body)

	for _, overlay := range a.overlays {
		overlay.Draw(s, body)
	}

	status := statusState{
		Loading:    a.loading,
		LastUpdate: a.lastUpdate,
		Paused:     !a.vis.Visible(),
		Namespace:  a.namespace.Get(),
		Now:        time.Now(),
		Frame:      a.frame,
	}
	if reporter, ok := a.views[a.active].(interface{ Err() error }); ok {
		if err := reporter.Err(); err != nil {
			status.Err = "refresh failed: " + err.Error()
		}
	}
	drawStatusBar(s, Rect{X: 0, Y: a.size.Height - 1, Width: a.size.Width, Height: 1}, status)

	s.Show()
}
