package tui

import (
	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ResultPage shows the record resolved for the route's code.
type ResultPage struct {
	catalog    model.Resolver
	strings    model.Strings
	mode       model.DisplayMode
	applyColor bool
	keys       KeyMap
	help       help.Model

	res model.Resolution
}

// NewResultPage creates the result page.
func NewResultPage(catalog model.Resolver, opts Options, keys KeyMap) *ResultPage {
	return &ResultPage{
		catalog:    catalog,
		strings:    opts.Strings,
		mode:       opts.Mode,
		applyColor: opts.ApplyColor,
		keys:       keys,
		help:       help.New(),
	}
}

func (p *ResultPage) Kind() route.Kind { return route.Result }

func (p *ResultPage) Enter(r route.Route) tea.Cmd {
	p.res = p.catalog.Resolve(r.Code)
	return nil
}

// Resolution returns what the page is showing.
func (p *ResultPage) Resolution() model.Resolution {
	return p.res
}

func (p *ResultPage) Accent() lipgloss.Color {
	if p.applyColor && p.res.Record.Color != "" {
		return lipgloss.Color(p.res.Record.Color)
	}
	return ColorAccent
}

func (p *ResultPage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}
	switch {
	case key.Matches(keyMsg, p.keys.Back):
		return nil, navigate(route.Route{Kind: route.Home})
	case key.Matches(keyMsg, p.keys.Quit):
		return tea.Quit, nil
	}
	return nil, nil
}

func (p *ResultPage) View(width, _ int) string {
	w := cardWidth(width, 56)
	accent := p.Accent()

	body := lipgloss.JoinVertical(lipgloss.Center,
		headingStyle.Foreground(accent).Render(p.strings.Heading(p.mode, p.res)),
		descriptionStyle.Width(w-8).Foreground(ColorText).Render(p.res.Record.Description),
		hintStyle.Render(p.strings.BackLabel+" · "+p.help.ShortHelpView(p.keys.resultHelp())),
	)
	return cardStyle.Width(w).BorderForeground(accent).Render(body)
}
