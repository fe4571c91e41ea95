// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package preview

import "github.com/jadensa-bit/scanly/internal/model"

// NodeKind identifies what a display node represents.
type NodeKind string

// Display node kinds
const (
	KindHeader      NodeKind = "header"
	KindBanner      NodeKind = "banner"
	KindSection     NodeKind = "section"
	KindItem        NodeKind = "item"
	KindStaff       NodeKind = "staff"
	KindStaffMember NodeKind = "staff_member"
	KindHours       NodeKind = "hours"
	KindHoursDay    NodeKind = "hours_day"
	KindFallback    NodeKind = "fallback"
	KindSocials     NodeKind = "socials"
	KindAttribution NodeKind = "attribution"
)

// AvailabilityState is the renderer's tri-state availability outcome.
type AvailabilityState string

const (
	// AvailabilityNone: no availability configured at all.
	AvailabilityNone AvailabilityState = "none"
	// AvailabilityAllDisabled: configured, but no weekday enabled.
	AvailabilityAllDisabled AvailabilityState = "all_disabled"
	// AvailabilityBookable: at least one weekday enabled.
	AvailabilityBookable AvailabilityState = "bookable"
)

// Bookable reports whether slot selection is exposed. The none and
// all-disabled states render the identical contact-to-book fallback.
func (s AvailabilityState) Bookable() bool {
	return s == AvailabilityBookable
}

// Node is one element of the display tree.
type Node struct {
	Kind     NodeKind `json:"kind"`
	Title    string   `json:"title,omitempty"`
	Subtitle string   `json:"subtitle,omitempty"`
	Body     string   `json:"body,omitempty"`
	Image    string   `json:"image,omitempty"`

	// Item fields
	Price       string           `json:"price,omitempty"`
	ShowPrice   bool             `json:"showPrice,omitempty"`
	Badge       model.Badge      `json:"badge,omitempty"`
	Layout      model.ItemLayout `json:"layout,omitempty"`
	ButtonText  string           `json:"buttonText,omitempty"`
	Interactive bool             `json:"interactive,omitempty"`

	// Section nesting level: 1 for section, 2 for subsection.
	Level int `json:"level,omitempty"`

	Children []*Node `json:"children,omitempty"`
}

// DisplayTree is the render contract output: a resolved appearance,
// the availability tri-state, and the node tree. It describes what to
// show, not how to paint it.
type DisplayTree struct {
	Handle       string                   `json:"handle"`
	Mode         model.Mode               `json:"mode"`
	Appearance   model.ResolvedAppearance `json:"appearance"`
	Availability AvailabilityState        `json:"availability"`
	Nodes        []*Node                  `json:"nodes"`
}
