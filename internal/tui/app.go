// Package tui is the terminal front-end: one page per route, switched by
// fragment navigation, over a decorative animated background.
package tui

import (
	"time"

	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// Options configures the terminal front-end.
type Options struct {
	Strings    model.Strings
	Mode       model.DisplayMode
	ApplyColor bool
	Background model.Background
	// Fragment is the route to open on start; empty means "/".
	Fragment string
	Logger   *zap.Logger
}

// App is the top-level Bubble Tea model that routes between pages.
type App struct {
	pages    map[route.Kind]Page
	active   Page
	current  route.Route
	fragment string

	keys       KeyMap
	background *Background
	logger     *zap.Logger
	width      int
	height     int
}

// NewApp creates the app with its home and result pages.
func NewApp(catalog model.Resolver, opts Options) *App {
	opts.Strings = opts.Strings.WithDefaults()
	if opts.Mode == "" {
		opts.Mode = model.DefaultDisplayMode
	}
	if opts.Background == "" {
		opts.Background = model.DefaultBackground
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keys := DefaultKeyMap()
	a := &App{
		keys:       keys,
		background: NewBackground(opts.Background, uint64(time.Now().UnixNano())),
		logger:     logger,
		fragment:   opts.Fragment,
	}
	a.pages = map[route.Kind]Page{
		route.Home:   NewHomePage(opts.Strings, keys),
		route.Result: NewResultPage(catalog, opts, keys),
	}
	return a
}

func (a *App) Init() tea.Cmd {
	fragment := a.fragment
	if fragment == "" {
		fragment = route.PathHome
	}
	cmd := a.navigate(fragment)
	if a.background.Animated() {
		return tea.Batch(cmd, backgroundTick())
	}
	return cmd
}

// navigate parses fragment and mounts the matching page from scratch.
func (a *App) navigate(fragment string) tea.Cmd {
	r := route.Parse(fragment)

	var next Page
	switch r.Kind {
	case route.Home:
		next = a.pages[route.Home]
	case route.Result:
		next = a.pages[route.Result]
	}

	a.fragment = fragment
	a.current = r
	a.active = next
	a.logger.Debug("tui: navigate", zap.String("fragment", fragment), zap.Stringer("route", r.Kind))
	return next.Enter(r)
}

// Fragment returns the current navigation fragment.
func (a *App) Fragment() string {
	return a.fragment
}

// Route returns the mounted route.
func (a *App) Route() route.Route {
	return a.current
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.background.Resize(msg.Width, msg.Height)
		return a, nil

	case BackgroundTickMsg:
		a.background.Step()
		return a, backgroundTick()

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
	}

	if a.active == nil {
		return a, nil
	}

	cmd, nav := a.active.Update(msg)
	if nav != nil && nav.Fragment != a.fragment {
		return a, tea.Batch(cmd, a.navigate(nav.Fragment))
	}
	return a, cmd
}

func (a *App) View() string {
	if a.active == nil {
		return ""
	}
	card := a.active.View(a.width, a.height)
	return compose(a.background.Grid(), a.background.Style(a.active.Accent()), card, a.width, a.height)
}
