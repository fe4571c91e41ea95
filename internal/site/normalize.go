// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package site derives the canonical StorefrontConfig from raw editor
// state. Normalization is the single "compile" step between the editor
// and every downstream consumer: draft store, sync engine, persistence,
// and the preview renderer all see only normalized configs.
package site

import (
	"html"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/jadensa-bit/scanly/internal/model"
	"github.com/jadensa-bit/scanly/internal/util"
)

// textPolicy strips any markup a merchant pastes into free-text fields.
var textPolicy = bluemonday.StrictPolicy()

// EditorState is the raw, possibly partial state of the editor form.
// Unlike StorefrontConfig it has no invariants: blank items, partial
// availability and untrimmed strings are all representable.
type EditorState struct {
	Mode        model.Mode `json:"mode"`
	HandleInput string     `json:"handle"`
	BrandName   string     `json:"brandName"`
	Tagline     string     `json:"tagline"`
	Description string     `json:"businessDescription"`
	OwnerEmail  string     `json:"ownerEmail"`

	Items []model.CatalogItem `json:"items"`

	Appearance    *model.AppearanceConfig   `json:"appearance"`
	StaffProfiles []model.StaffProfile      `json:"staffProfiles"`
	Availability  *model.AvailabilityConfig `json:"availability"`
	Social        *model.SocialLinks        `json:"social"`
	Notifications *model.Notifications      `json:"notifications"`

	BrandLogo  string `json:"brandLogo"`
	ProfilePic string `json:"profilePic"`

	PublishedAt *time.Time `json:"publishedAt"`
	Active      bool       `json:"active"`
}

// Normalize derives the canonical configuration from editor state.
// It returns nil when the slugified handle is empty: no handle means
// there is nothing to persist yet, which callers must not treat as an
// error. Two calls on the same state yield deep-equal output except
// for CreatedAt.
func Normalize(s *EditorState, now time.Time) *model.StorefrontConfig {
	handle := util.Slugify(s.HandleInput)
	if handle == "" {
		return nil
	}

	mode := s.Mode
	if !mode.Valid() {
		mode = model.ModeProducts
	}

	cfg := &model.StorefrontConfig{
		Mode:        mode,
		Handle:      handle,
		BrandName:   cleanText(s.BrandName, 0),
		Tagline:     cleanText(s.Tagline, 0),
		Description: cleanText(s.Description, model.MaxDescriptionLength),
		Items:       normalizeItems(s.Items),
		Appearance:  normalizeAppearance(s.Appearance),
		BrandLogo:   strings.TrimSpace(s.BrandLogo),
		ProfilePic:  strings.TrimSpace(s.ProfilePic),
		PublishedAt: s.PublishedAt,
		Active:      s.Active,
		CreatedAt:   now,
	}

	if mode == model.ModeServices {
		cfg.StaffProfiles = normalizeStaff(s.StaffProfiles)
	}
	if mode.Bookable() {
		cfg.Availability = normalizeAvailability(s.Availability)
	}
	if !s.Social.Empty() {
		social := *s.Social
		cfg.Social = &social
	}
	cfg.Notifications = normalizeNotifications(s.Notifications, s.OwnerEmail)

	return cfg
}

// cleanText strips markup, trims whitespace, and caps length in runes
// when max > 0.
func cleanText(s string, max int) string {
	s = html.UnescapeString(textPolicy.Sanitize(s))
	s = strings.TrimSpace(s)
	if max > 0 {
		if r := []rune(s); len(r) > max {
			s = strings.TrimSpace(string(r[:max]))
		}
	}
	return s
}

// normalizeItems drops entries whose trimmed title is empty and fills
// the default item type. Order is preserved: it is display order.
func normalizeItems(items []model.CatalogItem) []model.CatalogItem {
	out := make([]model.CatalogItem, 0, len(items))
	for _, it := range items {
		it.Title = cleanText(it.Title, 0)
		if it.Title == "" {
			continue
		}
		if !it.Type.Valid() {
			it.Type = model.ItemTypeProduct
		}
		it.Price = strings.TrimSpace(it.Price)
		it.Note = cleanText(it.Note, 0)
		it.Deposit = strings.TrimSpace(it.Deposit)
		it.ButtonText = cleanText(it.ButtonText, 0)
		it.Image = strings.TrimSpace(it.Image)
		out = append(out, it)
	}
	return out
}

func normalizeAppearance(a *model.AppearanceConfig) *model.AppearanceConfig {
	if a == nil {
		return nil
	}
	out := *a
	out.SpecialMessage = cleanText(out.SpecialMessage, model.MaxSpecialMessageLength)
	out.CTAText = cleanText(out.CTAText, 0)
	if out == (model.AppearanceConfig{}) {
		return nil
	}
	return &out
}

// normalizeAvailability fully materializes the seven weekday windows so
// downstream renderers and the slot generator never branch on missing
// keys. A day the editor omitted comes back disabled with the default
// window.
func normalizeAvailability(a *model.AvailabilityConfig) *model.AvailabilityConfig {
	if a == nil {
		return nil
	}

	out := &model.AvailabilityConfig{
		Timezone:      strings.TrimSpace(a.Timezone),
		SlotMinutes:   a.SlotMinutes,
		BufferMinutes: a.BufferMinutes,
		AdvanceDays:   a.AdvanceDays,
		LeadTimeHours: a.LeadTimeHours,
	}
	if out.Timezone == "" {
		out.Timezone = model.DefaultTimezone
	}
	if out.SlotMinutes <= 0 {
		out.SlotMinutes = model.DefaultSlotMinutes
	}
	if out.BufferMinutes < 0 {
		out.BufferMinutes = model.DefaultBufferMinutes
	}
	if out.AdvanceDays <= 0 {
		out.AdvanceDays = model.DefaultAdvanceDays
	}
	if out.LeadTimeHours < 0 {
		out.LeadTimeHours = model.DefaultLeadTimeHours
	}

	out.Days = materializeWeek(a.Days)
	return out
}

// materializeWeek returns a map holding exactly the seven weekday keys.
func materializeWeek(days map[string]model.DayWindow) map[string]model.DayWindow {
	out := make(map[string]model.DayWindow, len(model.WeekdayKeys))
	for _, key := range model.WeekdayKeys {
		w, ok := days[key]
		if !ok {
			w = model.DayWindow{Enabled: false, Start: model.DefaultDayStart, End: model.DefaultDayEnd}
		}
		if w.Start == "" {
			w.Start = model.DefaultDayStart
		}
		if w.End == "" {
			w.End = model.DefaultDayEnd
		}
		out[key] = w
	}
	return out
}

func normalizeStaff(staff []model.StaffProfile) []model.StaffProfile {
	out := make([]model.StaffProfile, 0, len(staff))
	for _, p := range staff {
		p.Name = cleanText(p.Name, 0)
		if p.Name == "" {
			continue
		}
		p.Role = cleanText(p.Role, 0)
		p.Rating = strings.TrimSpace(p.Rating)
		p.Bio = cleanText(p.Bio, 0)
		p.Photo = strings.TrimSpace(p.Photo)

		specialties := make([]string, 0, len(p.Specialties))
		for _, sp := range p.Specialties {
			if sp = cleanText(sp, 0); sp != "" {
				specialties = append(specialties, sp)
			}
		}
		if len(specialties) > 0 {
			p.Specialties = specialties
		} else {
			p.Specialties = nil
		}

		if p.WorkingDays != nil {
			p.WorkingDays = materializeWeek(p.WorkingDays)
		}
		out = append(out, p)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// normalizeNotifications single-sources the notification email: when
// the dedicated field is blank it falls back to the owner email here,
// so no later component needs a fallback chain.
func normalizeNotifications(n *model.Notifications, ownerEmail string) *model.Notifications {
	ownerEmail = strings.TrimSpace(ownerEmail)
	if n == nil {
		if ownerEmail == "" {
			return nil
		}
		return &model.Notifications{Email: ownerEmail}
	}
	out := *n
	out.Email = strings.TrimSpace(out.Email)
	if out.Email == "" {
		out.Email = ownerEmail
	}
	if out == (model.Notifications{}) {
		return nil
	}
	return &out
}
