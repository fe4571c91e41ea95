// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package preview

import (
	"math/rand"

	"github.com/jadensa-bit/scanly/internal/model"
)

// Preset pools for the theme randomizer.
var (
	randomThemes  = []string{"clean", "noir", "sunset", "forest", "bubblegum", "mono"}
	randomAccents = []string{"#6C5CE7", "#E17055", "#00B894", "#0984E3", "#D63031", "#FDCB6E"}
	randomFonts   = []string{"inter", "playfair", "space", "dm-sans", "lora"}
	randomShapes  = []string{"rounded", "pill", "square"}
)

// RandomizeAppearance returns a fresh appearance drawn from the preset
// pools. This is an explicit user action, separate from Render, which
// stays referentially stable.
func RandomizeAppearance(rng *rand.Rand) *model.AppearanceConfig {
	radius := []int{0, 8, 16, 24}[rng.Intn(4)]
	return &model.AppearanceConfig{
		Theme:        randomThemes[rng.Intn(len(randomThemes))],
		AccentColor:  randomAccents[rng.Intn(len(randomAccents))],
		Font:         randomFonts[rng.Intn(len(randomFonts))],
		ButtonShape:  randomShapes[rng.Intn(len(randomShapes))],
		CornerRadius: &radius,
	}
}
