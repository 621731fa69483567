package model

import (
	"fmt"
	"strings"
)

// Record is the canned result shown for a personality code.
type Record struct {
	Description string `yaml:"description" json:"description"`
	Color       string `yaml:"color" json:"color"`
}

// Resolution is a requested code after normalisation and lookup.
// Code is the upper-cased request; Known is false when Record is the
// DEFAULT fallback for a code the catalog does not contain.
type Resolution struct {
	Code   string `json:"code"`
	Record Record `json:"record"`
	Known  bool   `json:"known"`
}

// DisplayMode controls what the result heading shows.
type DisplayMode string

const (
	DisplayCode      DisplayMode = "code"      // resolved code, e.g. "INFP"
	DisplayCelebrate DisplayMode = "celebrate" // fixed congratulatory phrase
)

// ParseDisplayMode accepts the config spelling of a DisplayMode.
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch DisplayMode(strings.ToLower(strings.TrimSpace(s))) {
	case DisplayCode, "":
		return DisplayCode, nil
	case DisplayCelebrate:
		return DisplayCelebrate, nil
	}
	return "", fmt.Errorf("unknown display mode %q (want %q or %q)", s, DisplayCode, DisplayCelebrate)
}

// Background names the decorative animation drawn behind the pages.
type Background string

const (
	BackgroundParticles Background = "particles"
	BackgroundGradient  Background = "gradient"
	BackgroundHearts    Background = "hearts"
	BackgroundNone      Background = "none"
)

// ParseBackground accepts the config spelling of a Background.
func ParseBackground(s string) (Background, error) {
	switch b := Background(strings.ToLower(strings.TrimSpace(s))); b {
	case BackgroundParticles, BackgroundGradient, BackgroundHearts, BackgroundNone:
		return b, nil
	case "":
		return DefaultBackground, nil
	}
	return "", fmt.Errorf("unknown background %q", s)
}

// Strings holds every user-visible label of the two pages.
type Strings struct {
	HomeHeading     string `mapstructure:"home-heading"`
	Placeholder     string `mapstructure:"placeholder"`
	SubmitLabel     string `mapstructure:"submit-label"`
	EmptyInputError string `mapstructure:"empty-input-error"`
	BackLabel       string `mapstructure:"back-label"`
	CelebrateTitle  string `mapstructure:"celebrate-title"`
}

// WithDefaults fills blank labels from DefaultStrings.
func (s Strings) WithDefaults() Strings {
	d := DefaultStrings()
	if s.HomeHeading == "" {
		s.HomeHeading = d.HomeHeading
	}
	if s.Placeholder == "" {
		s.Placeholder = d.Placeholder
	}
	if s.SubmitLabel == "" {
		s.SubmitLabel = d.SubmitLabel
	}
	if s.EmptyInputError == "" {
		s.EmptyInputError = d.EmptyInputError
	}
	if s.BackLabel == "" {
		s.BackLabel = d.BackLabel
	}
	if s.CelebrateTitle == "" {
		s.CelebrateTitle = d.CelebrateTitle
	}
	return s
}

// Heading returns the result heading for res under mode.
func (s Strings) Heading(mode DisplayMode, res Resolution) string {
	if mode == DisplayCelebrate {
		return s.CelebrateTitle
	}
	return res.Code
}
