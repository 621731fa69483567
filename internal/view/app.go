package view

import (
	"errors"

	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Options configures an App.
type Options struct {
	Strings    model.Strings
	Mode       model.DisplayMode
	ApplyColor bool
	Logger     *zap.Logger
}

// App wires a mount, a catalog and a navigator together. It is driven by
// Dispatch and is not safe for concurrent use; every event is expected on
// one goroutine, as a browser's main thread would deliver them.
type App struct {
	mount   Mount
	catalog model.Resolver
	nav     Navigator
	opts    Options
	logger  *zap.Logger

	current route.Route
	mounted bool
}

// NewApp creates an App. Nothing is rendered until Start or a HashChanged.
func NewApp(m Mount, catalog model.Resolver, nav Navigator, opts Options) *App {
	opts.Strings = opts.Strings.WithDefaults()
	if opts.Mode == "" {
		opts.Mode = model.DefaultDisplayMode
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		mount:   m,
		catalog: catalog,
		nav:     nav,
		opts:    opts,
		logger:  logger,
	}
}

// Start subscribes to fragment changes, moves an empty fragment to "/",
// and renders the current route.
func (a *App) Start() {
	a.nav.OnHashChange(func(fragment string) {
		a.Dispatch(HashChanged{Fragment: fragment})
	})
	if a.nav.Fragment() == "" {
		a.nav.Navigate(route.PathHome)
	}
	a.Dispatch(HashChanged{Fragment: a.nav.Fragment()})
}

// Current returns the mounted route; ok is false before the first render.
func (a *App) Current() (route.Route, bool) {
	return a.current, a.mounted
}

// Dispatch applies one event.
func (a *App) Dispatch(ev Event) {
	switch e := ev.(type) {
	case HashChanged:
		a.render(route.Parse(e.Fragment))
	case InputChanged:
		if input := a.homeElement(InputID); input != nil {
			SetAttr(input, "value", e.Value)
		}
	case SubmitPressed:
		a.submit()
	case KeyPressed:
		if e.Key == KeyEnter {
			a.submit()
		}
	}
}

func (a *App) render(r route.Route) {
	switch r.Kind {
	case route.Home:
		RenderHome(a.mount, a.opts.Strings)
	case route.Result:
		res := a.catalog.Resolve(r.Code)
		RenderResult(a.mount, res, ResultOptions{
			Strings:    a.opts.Strings,
			Mode:       a.opts.Mode,
			ApplyColor: a.opts.ApplyColor,
		})
		a.logger.Debug("view: resolved code",
			zap.String("code", res.Code),
			zap.Bool("known", res.Known))
	}
	a.current = r
	a.mounted = true
}

// submit is the confirmation logic of the home page.
func (a *App) submit() {
	input := a.homeElement(InputID)
	if input == nil {
		return
	}
	value, _ := Attr(input, "value")

	r, err := route.FromInput(value)
	if errors.Is(err, route.ErrEmptyCode) {
		if slot := a.homeElement(ErrorID); slot != nil {
			SetTextContent(slot, a.opts.Strings.EmptyInputError)
		}
		return
	}
	a.nav.Navigate(r.Fragment())
}

// homeElement finds id inside the mounted home page, or nil when another
// page is mounted.
func (a *App) homeElement(id string) *html.Node {
	if !a.mounted || a.current.Kind != route.Home {
		return nil
	}
	return FindByID(a.mount.Root(), id)
}
