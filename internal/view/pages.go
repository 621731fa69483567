package view

import (
	"strconv"

	"github.com/tinytelemetry/mbtilens/internal/model"

	"golang.org/x/net/html/atom"
)

// Element ids the dispatcher and the web shell rely on.
const (
	InputID  = "mbtiInput"
	SubmitID = "submit"
	ErrorID  = "error-message"
	BackID   = "back"
)

// ResultOptions controls how the result page is drawn.
type ResultOptions struct {
	Strings    model.Strings
	Mode       model.DisplayMode
	ApplyColor bool
}

// RenderHome mounts the code entry form and restores the home background.
func RenderHome(m Mount, s model.Strings) {
	input := element(atom.Input,
		attr("type", "text"),
		attr("id", InputID),
		attr("placeholder", s.Placeholder),
		attr("maxlength", strconv.Itoa(model.MaxCodeLength)),
		attr("autocomplete", "off"),
	)
	container := appendAll(element(atom.Div, attr("class", "container")),
		withText(element(atom.H1), s.HomeHeading),
		input,
		withText(element(atom.Button, attr("type", "button"), attr("id", SubmitID)), s.SubmitLabel),
		element(atom.P, attr("id", ErrorID), attr("class", "error")),
	)

	m.Replace(container)
	m.SetBackground(model.HomeBackground)
}

// RenderResult mounts the heading, description and back link for res.
func RenderResult(m Mount, res model.Resolution, opts ResultOptions) {
	container := appendAll(element(atom.Div, attr("class", "container result")),
		withText(element(atom.H1), opts.Strings.Heading(opts.Mode, res)),
		withText(element(atom.P, attr("class", "description")), res.Record.Description),
		withText(element(atom.A, attr("id", BackID), attr("class", "back"), attr("href", "#/")), opts.Strings.BackLabel),
	)

	m.Replace(container)
	if opts.ApplyColor {
		m.SetBackground(res.Record.Color)
	} else {
		m.SetBackground(model.HomeBackground)
	}
}
