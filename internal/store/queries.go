// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package store is the durable record for sites, bookings and events,
// backed by SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jadensa-bit/scanly/internal/model"
)

// ErrNotFound indicates the requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrSlotTaken indicates another booking already holds the requested
// slot for this handle.
var ErrSlotTaken = errors.New("slot already booked")

// Queries wraps a database handle with typed accessors.
type Queries struct {
	db *sql.DB
}

// New creates a Queries instance.
func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// Site is one persisted storefront row. Config is the full normalized
// StorefrontConfig; the lifecycle columns are denormalized for
// querying without decoding.
type Site struct {
	Handle      string
	AccountID   string
	Config      *model.StorefrontConfig
	Active      bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UpsertSite writes the normalized config for a handle, overwriting
// any previous row. The lifecycle columns (active, published_at) are
// not touched by an upsert; publishing owns them.
func (q *Queries) UpsertSite(ctx context.Context, handle, accountID string, cfg *model.StorefrontConfig) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = q.db.ExecContext(ctx, `
		INSERT INTO sites (handle, account_id, config, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(handle) DO UPDATE SET
			config = excluded.config,
			updated_at = CURRENT_TIMESTAMP`,
		handle, accountID, string(data))
	if err != nil {
		return fmt.Errorf("upserting site %q: %w", handle, err)
	}
	return nil
}

// GetSite loads one site row by handle.
func (q *Queries) GetSite(ctx context.Context, handle string) (*Site, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT handle, account_id, config, active, published_at, created_at, updated_at
		FROM sites WHERE handle = ?`, handle)

	var (
		s    Site
		data string
	)
	var active int64
	err := row.Scan(&s.Handle, &s.AccountID, &data, &active, &s.PublishedAt, &s.CreatedAt, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading site %q: %w", handle, err)
	}
	s.Active = active != 0

	var cfg model.StorefrontConfig
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		return nil, fmt.Errorf("decoding site %q config: %w", handle, err)
	}
	s.Config = &cfg
	return &s, nil
}

// PublishSite marks a site live and stamps published_at. The stored
// config is updated to carry the same lifecycle state, so a public
// read needs no join.
func (q *Queries) PublishSite(ctx context.Context, handle string, at time.Time) error {
	s, err := q.GetSite(ctx, handle)
	if err != nil {
		return err
	}
	s.Config.PublishedAt = &at
	s.Config.Active = true
	data, err := json.Marshal(s.Config)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	res, err := q.db.ExecContext(ctx, `
		UPDATE sites
		SET active = 1, published_at = ?, config = ?, updated_at = CURRENT_TIMESTAMP
		WHERE handle = ?`, at, string(data), handle)
	if err != nil {
		return fmt.Errorf("publishing site %q: %w", handle, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// SetSiteActive toggles the active lifecycle flag.
func (q *Queries) SetSiteActive(ctx context.Context, handle string, active bool) error {
	v := 0
	if active {
		v = 1
	}
	res, err := q.db.ExecContext(ctx, `
		UPDATE sites SET active = ?, updated_at = CURRENT_TIMESTAMP WHERE handle = ?`, v, handle)
	if err != nil {
		return fmt.Errorf("updating site %q: %w", handle, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Booking is one persisted booking row.
type Booking struct {
	ID            int64
	Reference     string
	Handle        string
	ItemTitle     string
	SlotStart     sql.NullTime
	SlotEnd       sql.NullTime
	CustomerName  string
	CustomerEmail string
	Details       string
	CreatedAt     time.Time
}

// CreateBookingParams carries the fields for a new booking.
type CreateBookingParams struct {
	Reference     string
	Handle        string
	ItemTitle     string
	SlotStart     *time.Time
	SlotEnd       *time.Time
	CustomerName  string
	CustomerEmail string
	Details       string
}

// CreateBooking inserts a booking row. A second booking for the same
// handle and slot_start hits the slot unique index and returns
// ErrSlotTaken, so the losing side of a race never double books.
func (q *Queries) CreateBooking(ctx context.Context, p CreateBookingParams) (int64, error) {
	details := p.Details
	if details == "" {
		details = "{}"
	}
	res, err := q.db.ExecContext(ctx, `
		INSERT INTO bookings (reference, handle, item_title, slot_start, slot_end, customer_name, customer_email, details)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Reference, p.Handle, p.ItemTitle, p.SlotStart, p.SlotEnd, p.CustomerName, p.CustomerEmail, details)
	if err != nil {
		if strings.Contains(err.Error(), "bookings.handle, bookings.slot_start") {
			return 0, ErrSlotTaken
		}
		return 0, fmt.Errorf("creating booking: %w", err)
	}
	return res.LastInsertId()
}

// ListBookedRanges returns the occupied intervals for a handle between
// from and to, for exclusion during slot generation.
func (q *Queries) ListBookedRanges(ctx context.Context, handle string, from, to time.Time) ([][2]time.Time, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT slot_start, slot_end FROM bookings
		WHERE handle = ? AND slot_start IS NOT NULL AND slot_start >= ? AND slot_start < ?
		ORDER BY slot_start`, handle, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing bookings for %q: %w", handle, err)
	}
	defer rows.Close()

	var out [][2]time.Time
	for rows.Next() {
		var start, end sql.NullTime
		if err := rows.Scan(&start, &end); err != nil {
			return nil, err
		}
		if start.Valid && end.Valid {
			out = append(out, [2]time.Time{start.Time, end.Time})
		}
	}
	return out, rows.Err()
}

// ListActiveSites returns every live site row.
func (q *Queries) ListActiveSites(ctx context.Context) ([]*Site, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT handle, account_id, config, active, published_at, created_at, updated_at
		FROM sites WHERE active = 1 ORDER BY handle`)
	if err != nil {
		return nil, fmt.Errorf("listing active sites: %w", err)
	}
	defer rows.Close()

	var out []*Site
	for rows.Next() {
		var (
			s      Site
			data   string
			active int64
		)
		if err := rows.Scan(&s.Handle, &s.AccountID, &data, &active, &s.PublishedAt, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Active = active != 0
		var cfg model.StorefrontConfig
		if err := json.Unmarshal([]byte(data), &cfg); err != nil {
			return nil, fmt.Errorf("decoding site %q config: %w", s.Handle, err)
		}
		s.Config = &cfg
		out = append(out, &s)
	}
	return out, rows.Err()
}

// CountBookingsInRange counts bookings created for a handle in [from, to).
func (q *Queries) CountBookingsInRange(ctx context.Context, handle string, from, to time.Time) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM bookings
		WHERE handle = ? AND created_at >= ? AND created_at < ?`,
		handle, from, to).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting bookings for %q: %w", handle, err)
	}
	return n, nil
}

// CreateEventParams carries one event-log record.
type CreateEventParams struct {
	Level    string
	Category string
	Message  string
	Metadata string
}

// CreateEvent inserts an event-log row.
func (q *Queries) CreateEvent(ctx context.Context, p CreateEventParams) error {
	if p.Category == "" {
		p.Category = "system"
	}
	if p.Metadata == "" {
		p.Metadata = "{}"
	}
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO events (level, category, message, metadata)
		VALUES (?, ?, ?, ?)`,
		p.Level, p.Category, p.Message, p.Metadata)
	if err != nil {
		return fmt.Errorf("creating event: %w", err)
	}
	return nil
}
