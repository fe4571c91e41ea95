// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/jadensa-bit/scanly/internal/model"
)

func testDB(t *testing.T) (*sql.DB, *Queries) {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db, New(db)
}

func testConfig(handle string) *model.StorefrontConfig {
	return &model.StorefrontConfig{
		Handle:    handle,
		BrandName: "Joe's Barber Shop",
		Mode:      model.ModeBooking,
		Items: []model.CatalogItem{
			{Title: "Haircut", Type: model.ItemTypeService, Price: "25"},
		},
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestSiteUpsertAndGet(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	if err := q.UpsertSite(ctx, "joes-barber-shop", "acct-1", testConfig("joes-barber-shop")); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}

	s, err := q.GetSite(ctx, "joes-barber-shop")
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if s.Config.BrandName != "Joe's Barber Shop" {
		t.Errorf("BrandName = %q", s.Config.BrandName)
	}
	if s.AccountID != "acct-1" {
		t.Errorf("AccountID = %q", s.AccountID)
	}
	if s.Active {
		t.Error("new site should not be active")
	}
	if s.PublishedAt.Valid {
		t.Error("new site should have no published_at")
	}
}

func TestSiteUpsertOverwritesConfig(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	cfg := testConfig("joes-barber-shop")
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}
	cfg.Tagline = "Walk-ins welcome"
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite again: %v", err)
	}

	s, err := q.GetSite(ctx, cfg.Handle)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if s.Config.Tagline != "Walk-ins welcome" {
		t.Errorf("Tagline = %q, want overwrite to win", s.Config.Tagline)
	}
}

func TestGetSiteNotFound(t *testing.T) {
	_, q := testDB(t)

	_, err := q.GetSite(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestPublishSite(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	cfg := testConfig("joes-barber-shop")
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}

	at := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	if err := q.PublishSite(ctx, cfg.Handle, at); err != nil {
		t.Fatalf("PublishSite: %v", err)
	}

	s, err := q.GetSite(ctx, cfg.Handle)
	if err != nil {
		t.Fatalf("GetSite: %v", err)
	}
	if !s.Active {
		t.Error("published site should be active")
	}
	if !s.PublishedAt.Valid {
		t.Fatal("published site should have published_at")
	}
	if s.Config.PublishedAt == nil || !s.Config.PublishedAt.Equal(at) {
		t.Errorf("config PublishedAt = %v, want %v", s.Config.PublishedAt, at)
	}
	if !s.Config.Active {
		t.Error("stored config should carry active flag")
	}
}

func TestPublishSiteNotFound(t *testing.T) {
	_, q := testDB(t)

	err := q.PublishSite(context.Background(), "missing", time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSetSiteActive(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	cfg := testConfig("joes-barber-shop")
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}
	if err := q.SetSiteActive(ctx, cfg.Handle, true); err != nil {
		t.Fatalf("SetSiteActive: %v", err)
	}
	s, _ := q.GetSite(ctx, cfg.Handle)
	if !s.Active {
		t.Error("site should be active")
	}
	if err := q.SetSiteActive(ctx, cfg.Handle, false); err != nil {
		t.Fatalf("SetSiteActive off: %v", err)
	}
	s, _ = q.GetSite(ctx, cfg.Handle)
	if s.Active {
		t.Error("site should be inactive again")
	}
}

func TestBookings(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	cfg := testConfig("joes-barber-shop")
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}

	loc := time.UTC
	start1 := time.Date(2026, 3, 16, 10, 0, 0, 0, loc)
	end1 := start1.Add(30 * time.Minute)
	start2 := time.Date(2026, 3, 17, 14, 0, 0, 0, loc)
	end2 := start2.Add(30 * time.Minute)

	for i, b := range []CreateBookingParams{
		{Reference: "ref-1", Handle: cfg.Handle, ItemTitle: "Haircut", SlotStart: &start1, SlotEnd: &end1, CustomerName: "Ana", CustomerEmail: "ana@example.com"},
		{Reference: "ref-2", Handle: cfg.Handle, ItemTitle: "Haircut", SlotStart: &start2, SlotEnd: &end2, CustomerName: "Bo", CustomerEmail: "bo@example.com"},
	} {
		if _, err := q.CreateBooking(ctx, b); err != nil {
			t.Fatalf("CreateBooking %d: %v", i, err)
		}
	}

	// Window covering only the first booking.
	ranges, err := q.ListBookedRanges(ctx, cfg.Handle,
		time.Date(2026, 3, 16, 0, 0, 0, 0, loc),
		time.Date(2026, 3, 17, 0, 0, 0, 0, loc))
	if err != nil {
		t.Fatalf("ListBookedRanges: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(ranges))
	}
	if !ranges[0][0].Equal(start1) || !ranges[0][1].Equal(end1) {
		t.Errorf("range = %v, want [%v %v]", ranges[0], start1, end1)
	}
}

func TestBookingReferenceUnique(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	cfg := testConfig("joes-barber-shop")
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}

	p := CreateBookingParams{Reference: "dup", Handle: cfg.Handle, ItemTitle: "Haircut", CustomerName: "Ana", CustomerEmail: "ana@example.com"}
	if _, err := q.CreateBooking(ctx, p); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := q.CreateBooking(ctx, p); err == nil {
		t.Error("duplicate reference should fail")
	}
}

func TestBookingSlotUnique(t *testing.T) {
	_, q := testDB(t)
	ctx := context.Background()

	cfg := testConfig("joes-barber-shop")
	if err := q.UpsertSite(ctx, cfg.Handle, "acct-1", cfg); err != nil {
		t.Fatalf("UpsertSite: %v", err)
	}

	start := time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC)
	end := start.Add(30 * time.Minute)
	first := CreateBookingParams{Reference: "ref-1", Handle: cfg.Handle, ItemTitle: "Haircut", SlotStart: &start, SlotEnd: &end, CustomerName: "Ana", CustomerEmail: "ana@example.com"}
	second := first
	second.Reference = "ref-2"
	second.CustomerName = "Bo"
	second.CustomerEmail = "bo@example.com"

	if _, err := q.CreateBooking(ctx, first); err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if _, err := q.CreateBooking(ctx, second); !errors.Is(err, ErrSlotTaken) {
		t.Fatalf("second booking for the same slot: err = %v, want ErrSlotTaken", err)
	}

	ranges, err := q.ListBookedRanges(ctx, cfg.Handle, start.Add(-time.Hour), end.Add(time.Hour))
	if err != nil {
		t.Fatalf("ListBookedRanges: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("got %d rows for one slot, want 1", len(ranges))
	}

	// Slotless cart orders stay outside the index.
	for _, ref := range []string{"cart-1", "cart-2"} {
		p := CreateBookingParams{Reference: ref, Handle: cfg.Handle, ItemTitle: "Pomade", CustomerName: "Cy", CustomerEmail: "cy@example.com"}
		if _, err := q.CreateBooking(ctx, p); err != nil {
			t.Fatalf("CreateBooking %s: %v", ref, err)
		}
	}
}

func TestCreateEvent(t *testing.T) {
	db, q := testDB(t)
	ctx := context.Background()

	err := q.CreateEvent(ctx, CreateEventParams{Level: "WARN", Message: "publish failed"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	var category, metadata string
	row := db.QueryRow(`SELECT category, metadata FROM events WHERE message = 'publish failed'`)
	if err := row.Scan(&category, &metadata); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if category != "system" || metadata != "{}" {
		t.Errorf("defaults = (%q, %q)", category, metadata)
	}
}
