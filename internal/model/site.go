// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package model

import "time"

// Mode selects which catalog and interaction variant a storefront uses.
type Mode string

// Storefront modes
const (
	ModeServices Mode = "services"
	ModeBooking  Mode = "booking"
	ModeDigital  Mode = "digital"
	ModeProducts Mode = "products"
)

// Valid reports whether m is a known storefront mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeServices, ModeBooking, ModeDigital, ModeProducts:
		return true
	}
	return false
}

// Bookable reports whether the mode exposes time-slot booking.
func (m Mode) Bookable() bool {
	return m == ModeServices || m == ModeBooking
}

// MaxDescriptionLength caps the business description.
const MaxDescriptionLength = 150

// StorefrontConfig is the canonical configuration of one mini-app,
// keyed by its handle. It is the unit of persistence, publishing,
// and cross-surface broadcast.
type StorefrontConfig struct {
	Mode        Mode   `json:"mode"`
	Handle      string `json:"handle"`
	BrandName   string `json:"brandName,omitempty"`
	Tagline     string `json:"tagline,omitempty"`
	Description string `json:"businessDescription,omitempty"`

	Items []CatalogItem `json:"items"`

	Appearance    *AppearanceConfig   `json:"appearance,omitempty"`
	StaffProfiles []StaffProfile      `json:"staffProfiles,omitempty"`
	Availability  *AvailabilityConfig `json:"availability,omitempty"`
	Social        *SocialLinks        `json:"social,omitempty"`
	Notifications *Notifications      `json:"notifications,omitempty"`

	// Image references: a data URL before upload resolves, a hosted URL after.
	BrandLogo  string `json:"brandLogo,omitempty"`
	ProfilePic string `json:"profilePic,omitempty"`

	// StripeAccountID links the storefront to its connected payment account.
	StripeAccountID string `json:"stripeAccountId,omitempty"`

	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Active      bool       `json:"active"`

	// CreatedAt is overwritten on every normalization pass and therefore
	// behaves as a last-write timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// IsPublished returns true if the storefront has ever gone live.
func (c *StorefrontConfig) IsPublished() bool {
	return c.PublishedAt != nil
}

// SocialLinks is the contact/social link bag. Every field is optional.
type SocialLinks struct {
	Instagram string `json:"instagram,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Website   string `json:"website,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address,omitempty"`
}

// Empty reports whether no link or contact field is set.
func (s *SocialLinks) Empty() bool {
	if s == nil {
		return true
	}
	return *s == SocialLinks{}
}

// Notifications holds creator alert preferences and the contact channel
// used for order/booking notifications.
type Notifications struct {
	Email         string `json:"email,omitempty"`
	NotifyOrders  bool   `json:"notifyOrders"`
	NotifyBooking bool   `json:"notifyBookings"`
	NotifyWeekly  bool   `json:"notifyWeekly"`
}
