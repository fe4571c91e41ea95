// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package model

// MaxSpecialMessageLength caps the special-message banner.
const MaxSpecialMessageLength = 100

// BackgroundMode selects how the storefront background is painted.
type BackgroundMode string

// Background modes
const (
	BackgroundSolid    BackgroundMode = "solid"
	BackgroundGradient BackgroundMode = "gradient"
	BackgroundImage    BackgroundMode = "image"
)

// Gradient is a two-stop gradient with an angle in degrees.
type Gradient struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Angle int    `json:"angle"`
}

// Background holds the background mode and its parameters.
type Background struct {
	Mode     BackgroundMode `json:"mode,omitempty"`
	Color    string         `json:"color,omitempty"`
	Gradient *Gradient      `json:"gradient,omitempty"`
	ImageURL string         `json:"imageUrl,omitempty"`
}

// AppearanceConfig is a flat bag of independently-defaulted presentation
// toggles. Every field is optional; readers must go through Resolved so
// that an absent field always lands on its documented default.
type AppearanceConfig struct {
	Theme          string     `json:"theme,omitempty"`
	AccentColor    string     `json:"accentColor,omitempty"`
	AccentGradient *Gradient  `json:"accentGradient,omitempty"`
	Background     Background `json:"background,omitempty"`
	CornerRadius   *int       `json:"cornerRadius,omitempty"`
	Font           string     `json:"font,omitempty"`
	ButtonShape    string     `json:"buttonShape,omitempty"`
	HeaderStyle    string     `json:"headerStyle,omitempty"`
	HeaderBg       string     `json:"headerBackground,omitempty"`
	LogoShape      string     `json:"logoShape,omitempty"`
	LogoFit        string     `json:"logoFit,omitempty"`
	CTAStyle       string     `json:"ctaStyle,omitempty"`
	CTAShine       *bool      `json:"ctaShine,omitempty"`
	CTAText        string     `json:"ctaText,omitempty"`
	ItemLayout     ItemLayout `json:"itemLayout,omitempty"`
	ShowStaff      *bool      `json:"showStaff,omitempty"`
	ShowSocials    *bool      `json:"showSocials,omitempty"`
	ShowHours      *bool      `json:"showHours,omitempty"`
	ShowPoweredBy  *bool      `json:"showPoweredBy,omitempty"`
	SpecialMessage string     `json:"specialMessage,omitempty"`
}

// Documented appearance defaults.
const (
	DefaultTheme        = "clean"
	DefaultAccentColor  = "#6C5CE7"
	DefaultCornerRadius = 16
	DefaultFont         = "inter"
	DefaultButtonShape  = "rounded"
	DefaultHeaderStyle  = "hero"
	DefaultLogoShape    = "circle"
	DefaultLogoFit      = "cover"
	DefaultCTAStyle     = "solid"
	DefaultCTAText      = "Book now"
	DefaultItemLayout   = LayoutCards
)

// ResolvedAppearance is an AppearanceConfig with every field made
// concrete. The renderer consumes only this shape, never the raw config.
type ResolvedAppearance struct {
	Theme          string
	AccentColor    string
	AccentGradient *Gradient
	Background     Background
	CornerRadius   int
	Font           string
	ButtonShape    string
	HeaderStyle    string
	HeaderBg       string
	LogoShape      string
	LogoFit        string
	CTAStyle       string
	CTAShine       bool
	CTAText        string
	ItemLayout     ItemLayout
	ShowStaff      bool
	ShowSocials    bool
	ShowHours      bool
	ShowPoweredBy  bool
	SpecialMessage string
}

// Resolved fills documented defaults for every absent field.
// It is safe to call on a nil receiver.
func (a *AppearanceConfig) Resolved() ResolvedAppearance {
	r := ResolvedAppearance{
		Theme:         DefaultTheme,
		AccentColor:   DefaultAccentColor,
		Background:    Background{Mode: BackgroundSolid},
		CornerRadius:  DefaultCornerRadius,
		Font:          DefaultFont,
		ButtonShape:   DefaultButtonShape,
		HeaderStyle:   DefaultHeaderStyle,
		LogoShape:     DefaultLogoShape,
		LogoFit:       DefaultLogoFit,
		CTAStyle:      DefaultCTAStyle,
		CTAShine:      true,
		CTAText:       DefaultCTAText,
		ItemLayout:    DefaultItemLayout,
		ShowStaff:     true,
		ShowSocials:   true,
		ShowHours:     true,
		ShowPoweredBy: true,
	}
	if a == nil {
		return r
	}

	if a.Theme != "" {
		r.Theme = a.Theme
	}
	if a.AccentColor != "" {
		r.AccentColor = a.AccentColor
	}
	r.AccentGradient = a.AccentGradient
	if a.Background.Mode != "" {
		r.Background = a.Background
	}
	if a.CornerRadius != nil {
		r.CornerRadius = *a.CornerRadius
	}
	if a.Font != "" {
		r.Font = a.Font
	}
	if a.ButtonShape != "" {
		r.ButtonShape = a.ButtonShape
	}
	if a.HeaderStyle != "" {
		r.HeaderStyle = a.HeaderStyle
	}
	r.HeaderBg = a.HeaderBg
	if a.LogoShape != "" {
		r.LogoShape = a.LogoShape
	}
	if a.LogoFit != "" {
		r.LogoFit = a.LogoFit
	}
	if a.CTAStyle != "" {
		r.CTAStyle = a.CTAStyle
	}
	if a.CTAShine != nil {
		r.CTAShine = *a.CTAShine
	}
	if a.CTAText != "" {
		r.CTAText = a.CTAText
	}
	if a.ItemLayout != LayoutInherit {
		r.ItemLayout = a.ItemLayout
	}
	if a.ShowStaff != nil {
		r.ShowStaff = *a.ShowStaff
	}
	if a.ShowSocials != nil {
		r.ShowSocials = *a.ShowSocials
	}
	if a.ShowHours != nil {
		r.ShowHours = *a.ShowHours
	}
	if a.ShowPoweredBy != nil {
		r.ShowPoweredBy = *a.ShowPoweredBy
	}
	r.SpecialMessage = a.SpecialMessage

	return r
}
