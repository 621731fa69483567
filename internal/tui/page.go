package tui

import (
	"github.com/tinytelemetry/mbtilens/internal/route"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Page is one top-level screen, bound to a single route kind.
type Page interface {
	Kind() route.Kind
	// Enter mounts the page for r, discarding any state from a previous visit.
	Enter(r route.Route) tea.Cmd
	Update(msg tea.Msg) (tea.Cmd, *PageNav)
	// View renders the page card; the App centres it over the background.
	View(width, height int) string
	// Accent is the colour the background is tinted with while mounted.
	Accent() lipgloss.Color
}

// PageNav is returned from Update to request a navigation.
type PageNav struct {
	Fragment string
}

func navigate(r route.Route) *PageNav {
	return &PageNav{Fragment: r.Fragment()}
}
