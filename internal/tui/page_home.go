package tui

import (
	"errors"

	"github.com/tinytelemetry/mbtilens/internal/model"
	"github.com/tinytelemetry/mbtilens/internal/route"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HomePage asks for a code.
type HomePage struct {
	strings model.Strings
	keys    KeyMap
	help    help.Model

	input    textinput.Model
	errorMsg string
}

// NewHomePage creates the home page.
func NewHomePage(s model.Strings, keys KeyMap) *HomePage {
	return &HomePage{
		strings: s,
		keys:    keys,
		help:    help.New(),
	}
}

func (p *HomePage) Kind() route.Kind { return route.Home }

func (p *HomePage) Accent() lipgloss.Color { return ColorAccent }

func (p *HomePage) Enter(_ route.Route) tea.Cmd {
	input := textinput.New()
	input.Placeholder = p.strings.Placeholder
	input.CharLimit = model.MaxCodeLength
	input.Width = model.MaxCodeLength + 1
	input.Prompt = "> "

	p.input = input
	p.errorMsg = ""
	return tea.Batch(p.input.Focus(), textinput.Blink)
}

func (p *HomePage) Update(msg tea.Msg) (tea.Cmd, *PageNav) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, p.keys.Submit) {
		return p.submit()
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd, nil
}

// submit confirms the input: navigate on a non-blank value, otherwise show
// the fixed error and stay.
func (p *HomePage) submit() (tea.Cmd, *PageNav) {
	r, err := route.FromInput(p.input.Value())
	if errors.Is(err, route.ErrEmptyCode) {
		p.errorMsg = p.strings.EmptyInputError
		return nil, nil
	}
	return nil, navigate(r)
}

// Value returns the current input text.
func (p *HomePage) Value() string {
	return p.input.Value()
}

// Error returns the text of the error line.
func (p *HomePage) Error() string {
	return p.errorMsg
}

func (p *HomePage) View(width, _ int) string {
	w := cardWidth(width, 40)

	errLine := errorStyle.Render(p.errorMsg)
	if p.errorMsg == "" {
		errLine = " "
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		headingStyle.Foreground(ColorText).Render(p.strings.HomeHeading),
		p.input.View(),
		errLine,
		hintStyle.Render(p.help.ShortHelpView(p.keys.homeHelp())),
	)
	return cardStyle.Width(w).BorderForeground(ColorAccent).Render(body)
}
