// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jadensa-bit/scanly/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := store.NewDB(filepath.Join(t.TempDir(), "logging-test.db"))
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := store.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func eventCount(t *testing.T, db *sql.DB) int {
	t.Helper()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		t.Fatalf("counting events: %v", err)
	}
	return n
}

func TestHandlePersistsWarnAndAbove(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Info("just informational")
	logger.Debug("noise")
	if got := eventCount(t, db); got != 0 {
		t.Fatalf("info/debug persisted %d events, want 0", got)
	}

	logger.Warn("publish failed", "handle", "joes-barber-shop")
	logger.Error("database unreachable")
	if got := eventCount(t, db); got != 2 {
		t.Fatalf("got %d events, want 2", got)
	}

	var level string
	if err := db.QueryRow(`SELECT level FROM events WHERE message = 'database unreachable'`).Scan(&level); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if level != "error" {
		t.Errorf("level = %q, want error", level)
	}
}

func TestHandleCategoryExplicit(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("something odd", "category", CategoryPayment)

	var category string
	if err := db.QueryRow(`SELECT category FROM events`).Scan(&category); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if category != CategoryPayment {
		t.Errorf("category = %q, want %q", category, CategoryPayment)
	}
}

func TestHandleCategoryInferred(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	tests := []struct {
		msg  string
		want string
	}{
		{"remote publish failed", CategorySync},
		{"slot generation empty", CategoryBooking},
		{"upload rejected", CategoryUpload},
		{"redis connection lost", CategoryCache},
		{"disk nearly full", CategorySystem},
	}
	for _, tt := range tests {
		logger.Warn(tt.msg)
		var category string
		if err := db.QueryRow(`SELECT category FROM events WHERE message = ?`, tt.msg).Scan(&category); err != nil {
			t.Fatalf("scan %q: %v", tt.msg, err)
		}
		if category != tt.want {
			t.Errorf("category(%q) = %q, want %q", tt.msg, category, tt.want)
		}
	}
}

func TestHandleMetadata(t *testing.T) {
	db := testDB(t)
	logger := slog.New(NewEventLogHandler(discardHandler{}, db))

	logger.Warn("publish failed", "handle", "joes-barber-shop", "attempt", 3)

	var metadata string
	if err := db.QueryRow(`SELECT metadata FROM events`).Scan(&metadata); err != nil {
		t.Fatalf("scan: %v", err)
	}
	for _, want := range []string{`"handle":"joes-barber-shop"`, `"attempt":"3"`} {
		if !strings.Contains(metadata, want) {
			t.Errorf("metadata %q missing %q", metadata, want)
		}
	}
}
