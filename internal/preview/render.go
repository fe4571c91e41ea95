// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package preview maps a normalized configuration to a display tree.
// Render is pure: identical inputs yield identical trees, and every
// appearance field is resolved to a concrete value before any
// conditional logic runs.
package preview

import (
	"fmt"

	"github.com/jadensa-bit/scanly/internal/model"
)

// Render produces the display tree for a storefront configuration.
// The mode argument wins over cfg.Mode so a preview surface can show
// a mode switch before the config has been re-normalized.
func Render(cfg *model.StorefrontConfig, mode model.Mode) *DisplayTree {
	if !mode.Valid() {
		mode = cfg.Mode
	}
	appearance := cfg.Appearance.Resolved()

	tree := &DisplayTree{
		Handle:       cfg.Handle,
		Mode:         mode,
		Appearance:   appearance,
		Availability: availabilityState(cfg.Availability),
	}

	tree.Nodes = append(tree.Nodes, headerNode(cfg, appearance))

	if appearance.SpecialMessage != "" {
		tree.Nodes = append(tree.Nodes, &Node{Kind: KindBanner, Body: appearance.SpecialMessage})
	}

	tree.Nodes = append(tree.Nodes, catalogNodes(cfg.Items, appearance.ItemLayout)...)

	if mode == model.ModeServices && appearance.ShowStaff && len(cfg.StaffProfiles) > 0 {
		tree.Nodes = append(tree.Nodes, staffNode(cfg.StaffProfiles))
	}
	if mode.Bookable() && appearance.ShowHours {
		tree.Nodes = append(tree.Nodes, hoursNode(cfg.Availability, tree.Availability))
	}
	if appearance.ShowSocials && !cfg.Social.Empty() {
		tree.Nodes = append(tree.Nodes, socialsNode(cfg.Social))
	}
	if appearance.ShowPoweredBy {
		tree.Nodes = append(tree.Nodes, &Node{Kind: KindAttribution, Body: "Powered by Scanly"})
	}

	return tree
}

// availabilityState classifies availability into exactly three states.
// No fourth ambiguous state is reachable.
func availabilityState(a *model.AvailabilityConfig) AvailabilityState {
	if a == nil {
		return AvailabilityNone
	}
	if !a.AnyDayEnabled() {
		return AvailabilityAllDisabled
	}
	return AvailabilityBookable
}

func headerNode(cfg *model.StorefrontConfig, appearance model.ResolvedAppearance) *Node {
	return &Node{
		Kind:     KindHeader,
		Title:    cfg.BrandName,
		Subtitle: cfg.Tagline,
		Body:     cfg.Description,
		Image:    cfg.BrandLogo,
		// The header style itself lives in the resolved appearance.
		ButtonText: appearance.CTAText,
	}
}

// catalogNodes renders items in array order. Section and subsection
// markers are non-interactive separators that scope the items after
// them until the next marker of equal-or-higher level.
func catalogNodes(items []model.CatalogItem, defaultLayout model.ItemLayout) []*Node {
	var (
		out        []*Node
		section    *Node // open level-1 scope
		subsection *Node // open level-2 scope
	)

	attach := func(n *Node) {
		switch {
		case subsection != nil:
			subsection.Children = append(subsection.Children, n)
		case section != nil:
			section.Children = append(section.Children, n)
		default:
			out = append(out, n)
		}
	}

	for _, it := range items {
		switch it.Type {
		case model.ItemTypeSection:
			n := &Node{Kind: KindSection, Title: it.Title, Body: it.Note, Level: 1}
			out = append(out, n)
			section, subsection = n, nil
		case model.ItemTypeSubsection:
			n := &Node{Kind: KindSection, Title: it.Title, Body: it.Note, Level: 2}
			subsection = nil
			attach(n)
			subsection = n
		case model.ItemTypeProduct, model.ItemTypeService, model.ItemTypeAddon:
			attach(itemNode(it, defaultLayout))
		default:
			// Unknown types are normalized away before render; treat
			// any that slip through as a plain product.
			attach(itemNode(it, defaultLayout))
		}
	}
	return out
}

func itemNode(it model.CatalogItem, defaultLayout model.ItemLayout) *Node {
	layout := it.Layout
	if layout == model.LayoutInherit {
		layout = defaultLayout
	}
	if layout == model.LayoutInherit {
		layout = model.LayoutCards
	}
	return &Node{
		Kind:        KindItem,
		Title:       it.Title,
		Body:        it.Note,
		Image:       it.Image,
		Price:       it.Price,
		ShowPrice:   showPrice(it.Price),
		Badge:       it.Badge,
		Layout:      layout,
		ButtonText:  it.ButtonText,
		Interactive: it.Type.Purchasable(),
	}
}

func staffNode(staff []model.StaffProfile) *Node {
	n := &Node{Kind: KindStaff, Title: "Meet the team"}
	for _, p := range staff {
		member := &Node{
			Kind:     KindStaffMember,
			Title:    p.Name,
			Subtitle: p.Role,
			Body:     p.Bio,
			Image:    p.Photo,
		}
		n.Children = append(n.Children, member)
	}
	return n
}

// hoursNode renders the schedule grid for the bookable state and the
// identical contact-to-book fallback for both non-bookable states.
func hoursNode(a *model.AvailabilityConfig, state AvailabilityState) *Node {
	if !state.Bookable() {
		return &Node{Kind: KindFallback, Body: "Contact us to book"}
	}

	n := &Node{Kind: KindHours, Title: "Hours"}
	for _, key := range model.WeekdayKeys {
		w := a.Days[key]
		day := &Node{Kind: KindHoursDay, Title: key}
		if w.Enabled {
			day.Body = fmt.Sprintf("%s–%s", w.Start, w.End)
		} else {
			day.Body = "Closed"
		}
		n.Children = append(n.Children, day)
	}
	return n
}

func socialsNode(s *model.SocialLinks) *Node {
	n := &Node{Kind: KindSocials}
	add := func(label, value string) {
		if value != "" {
			n.Children = append(n.Children, &Node{Kind: KindSocials, Title: label, Body: value})
		}
	}
	add("instagram", s.Instagram)
	add("tiktok", s.TikTok)
	add("twitter", s.Twitter)
	add("facebook", s.Facebook)
	add("youtube", s.YouTube)
	add("website", s.Website)
	add("phone", s.Phone)
	add("email", s.Email)
	add("address", s.Address)
	return n
}
