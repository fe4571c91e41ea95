package model

import "testing"

func TestResolvedDefaults(t *testing.T) {
	var a *AppearanceConfig // nil: everything defaulted

	r := a.Resolved()

	if r.Theme != DefaultTheme {
		t.Errorf("theme = %q, want %q", r.Theme, DefaultTheme)
	}
	if r.AccentColor != DefaultAccentColor {
		t.Errorf("accent = %q, want %q", r.AccentColor, DefaultAccentColor)
	}
	if r.Background.Mode != BackgroundSolid {
		t.Errorf("background mode = %q, want solid", r.Background.Mode)
	}
	if r.CornerRadius != DefaultCornerRadius {
		t.Errorf("corner radius = %d, want %d", r.CornerRadius, DefaultCornerRadius)
	}
	if r.ItemLayout != LayoutCards {
		t.Errorf("item layout = %q, want cards", r.ItemLayout)
	}
	if !r.CTAShine || !r.ShowStaff || !r.ShowSocials || !r.ShowHours || !r.ShowPoweredBy {
		t.Error("boolean toggles should default to true")
	}
}

func TestResolvedOverrides(t *testing.T) {
	radius := 0
	off := false
	a := &AppearanceConfig{
		Theme:        "noir",
		CornerRadius: &radius,
		CTAShine:     &off,
		ShowHours:    &off,
		ItemLayout:   LayoutMenu,
		Background:   Background{Mode: BackgroundGradient, Gradient: &Gradient{From: "#000", To: "#333", Angle: 45}},
	}

	r := a.Resolved()

	if r.Theme != "noir" {
		t.Errorf("theme = %q, want noir", r.Theme)
	}
	// An explicit zero must win over the default: pointer fields make
	// "unset" and "set to zero" distinguishable.
	if r.CornerRadius != 0 {
		t.Errorf("corner radius = %d, want 0", r.CornerRadius)
	}
	if r.CTAShine {
		t.Error("cta shine should be off")
	}
	if r.ShowHours {
		t.Error("hours section should be hidden")
	}
	if r.ItemLayout != LayoutMenu {
		t.Errorf("item layout = %q, want menu", r.ItemLayout)
	}
	if r.Background.Mode != BackgroundGradient || r.Background.Gradient == nil {
		t.Error("gradient background not carried through")
	}
}

func TestModeAndItemType(t *testing.T) {
	if !ModeServices.Bookable() || !ModeBooking.Bookable() {
		t.Error("services and booking modes must be bookable")
	}
	if ModeDigital.Bookable() || ModeProducts.Bookable() {
		t.Error("digital and products modes must not be bookable")
	}
	if Mode("storefront").Valid() {
		t.Error("unknown mode reported valid")
	}

	for _, tt := range []struct {
		typ         ItemType
		purchasable bool
	}{
		{ItemTypeProduct, true},
		{ItemTypeService, true},
		{ItemTypeAddon, true},
		{ItemTypeSection, false},
		{ItemTypeSubsection, false},
	} {
		if got := tt.typ.Purchasable(); got != tt.purchasable {
			t.Errorf("%s.Purchasable() = %v, want %v", tt.typ, got, tt.purchasable)
		}
	}
}
