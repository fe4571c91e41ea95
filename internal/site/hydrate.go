// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package site

import "github.com/jadensa-bit/scanly/internal/model"

// EditorStateOf rebuilds editor state from a canonical config, as used
// for edit-mode hydration. Round-tripping a normalized config through
// EditorStateOf and Normalize yields a deep-equal config except for the
// CreatedAt timestamp.
func EditorStateOf(cfg *model.StorefrontConfig) *EditorState {
	if cfg == nil {
		return nil
	}
	s := &EditorState{
		Mode:          cfg.Mode,
		HandleInput:   cfg.Handle,
		BrandName:     cfg.BrandName,
		Tagline:       cfg.Tagline,
		Description:   cfg.Description,
		Items:         cfg.Items,
		Appearance:    cfg.Appearance,
		StaffProfiles: cfg.StaffProfiles,
		Availability:  cfg.Availability,
		Social:        cfg.Social,
		Notifications: cfg.Notifications,
		BrandLogo:     cfg.BrandLogo,
		ProfilePic:    cfg.ProfilePic,
		PublishedAt:   cfg.PublishedAt,
		Active:        cfg.Active,
	}
	if cfg.Notifications != nil {
		s.OwnerEmail = cfg.Notifications.Email
	}
	return s
}
