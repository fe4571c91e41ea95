// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the events table for auditing.
package logging

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/jadensa-bit/scanly/internal/store"
)

// Event categories recorded in the events table.
const (
	CategorySystem  = "system"
	CategorySync    = "sync"
	CategoryBooking = "booking"
	CategoryUpload  = "upload"
	CategoryCache   = "cache"
	CategoryPayment = "payment"
)

// EventLogHandler wraps another slog.Handler and additionally persists
// records at or above a threshold level.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler wraps inner so that WARN and above also land in
// the events table.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.persist(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithAttrs(attrs), queries: h.queries, level: h.level}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{inner: h.inner.WithGroup(name), queries: h.queries, level: h.level}
}

func (h *EventLogHandler) persist(r slog.Record) {
	// Background context so the event survives request cancellation.
	_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:    eventLevel(r.Level),
		Category: category(r),
		Message:  r.Message,
		Metadata: metadata(r),
	})
}

func eventLevel(level slog.Level) string {
	if level >= slog.LevelError {
		return "error"
	}
	return "warning"
}

// category reads an explicit "category" attribute, or infers one from
// the message.
func category(r slog.Record) string {
	var explicit string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			explicit = a.Value.String()
			return false
		}
		return true
	})
	if explicit != "" {
		return explicit
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "sync") || strings.Contains(msg, "publish") || strings.Contains(msg, "draft"):
		return CategorySync
	case strings.Contains(msg, "booking") || strings.Contains(msg, "slot"):
		return CategoryBooking
	case strings.Contains(msg, "upload") || strings.Contains(msg, "image"):
		return CategoryUpload
	case strings.Contains(msg, "cache") || strings.Contains(msg, "redis"):
		return CategoryCache
	case strings.Contains(msg, "stripe") || strings.Contains(msg, "payment"):
		return CategoryPayment
	default:
		return CategorySystem
	}
}

func metadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}
	attrs := make(map[string]string, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		if a.Key != "category" {
			attrs[a.Key] = a.Value.String()
		}
		return true
	})
	if len(attrs) == 0 {
		return "{}"
	}
	data, err := json.Marshal(attrs)
	if err != nil {
		return "{}"
	}
	return string(data)
}
