// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package model

// ItemType tags a catalog entry. Section and subsection entries are
// non-purchasable structural markers that group the items after them.
type ItemType string

// Catalog item types
const (
	ItemTypeProduct    ItemType = "product"
	ItemTypeService    ItemType = "service"
	ItemTypeSection    ItemType = "section"
	ItemTypeSubsection ItemType = "subsection"
	ItemTypeAddon      ItemType = "addon"
)

// Valid reports whether t is a known item type.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeProduct, ItemTypeService, ItemTypeSection, ItemTypeSubsection, ItemTypeAddon:
		return true
	}
	return false
}

// Purchasable reports whether the item type carries price/cart semantics.
func (t ItemType) Purchasable() bool {
	return t != ItemTypeSection && t != ItemTypeSubsection
}

// Badge is a promotional tag displayed on a catalog item.
type Badge string

// Item badges
const (
	BadgeNone       Badge = ""
	BadgePopular    Badge = "popular"
	BadgeNew        Badge = "new"
	BadgeSale       Badge = "sale"
	BadgeLimited    Badge = "limited"
	BadgeBestseller Badge = "bestseller"
)

// ItemLayout is a per-item display variant. The zero value means
// "inherit the storefront-wide default".
type ItemLayout string

// Item layouts
const (
	LayoutInherit ItemLayout = ""
	LayoutCards   ItemLayout = "cards"
	LayoutMenu    ItemLayout = "menu"
	LayoutTiles   ItemLayout = "tiles"
)

// CatalogItem is one entry in the storefront catalog. Order within
// StorefrontConfig.Items is display order.
type CatalogItem struct {
	Type  ItemType `json:"type"`
	Title string   `json:"title"`
	// Price is a free-text currency string ("$45", "45.00", "from $20"),
	// not a validated numeric.
	Price string `json:"price,omitempty"`
	// Note is a multi-line description; lines prefixed with "-" or "•"
	// render as bullets.
	Note string `json:"note,omitempty"`
	// Deposit applies to services only.
	Deposit string     `json:"deposit,omitempty"`
	Badge   Badge      `json:"badge,omitempty"`
	Image   string     `json:"image,omitempty"`
	Layout  ItemLayout `json:"layout,omitempty"`
	// ButtonText overrides the call-to-action label for addon items.
	ButtonText string `json:"buttonText,omitempty"`
}
