// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package booking implements the interaction state machine of the
// storefront's purchase surface: browsing -> confirming -> success,
// with an explicit reset back to browsing. It consumes and produces
// configuration-shaped data; checkout/payment completion is delegated
// to the external collaborator passed to Confirm.
package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/jadensa-bit/scanly/internal/model"
)

// Phase is the interaction state.
type Phase string

// Interaction phases
const (
	PhaseBrowsing   Phase = "browsing"
	PhaseConfirming Phase = "confirming"
	PhaseSuccess    Phase = "success"
)

// Validation errors, caught locally before any network call.
var (
	ErrNotPurchasable  = errors.New("item is not purchasable")
	ErrWrongPhase      = errors.New("action not allowed in current phase")
	ErrMissingCustomer = errors.New("customer name and email are required")
	ErrMissingSlot     = errors.New("a date and time slot are required")
)

// CartLine is one quantity-keyed cart entry.
type CartLine struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

// CustomerFields are the fields collected in the confirming phase.
type CustomerFields struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Date   string `json:"date,omitempty"`
	SlotID string `json:"slotId,omitempty"`
}

// SubmitRequest is what Confirm hands to the external collaborator.
type SubmitRequest struct {
	Mode     model.Mode         `json:"mode"`
	Item     *model.CatalogItem `json:"item,omitempty"`
	Cart     []CartLine         `json:"cart,omitempty"`
	AddOns   map[string]int     `json:"addOns,omitempty"`
	Customer CustomerFields     `json:"customer"`
}

// SubmitFunc performs the external booking/checkout call.
type SubmitFunc func(ctx context.Context, req SubmitRequest) error

// Session is one interaction instance. It is not safe for concurrent
// use; each interactive surface owns exactly one.
type Session struct {
	mode      model.Mode
	phase     Phase
	selected  *model.CatalogItem
	cart      map[string]int
	cartOrder []string
	addOns    map[string]int
	fields    CustomerFields
	lastErr   string
}

// NewSession starts a session in the browsing phase.
func NewSession(mode model.Mode) *Session {
	return &Session{
		mode:   mode,
		phase:  PhaseBrowsing,
		cart:   make(map[string]int),
		addOns: make(map[string]int),
	}
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// LastError returns the verbatim message of the last failed submission.
func (s *Session) LastError() string {
	return s.lastErr
}

// Select binds a purchasable item as the selection context and moves
// to confirming. Section and subsection markers are not selectable.
func (s *Session) Select(item model.CatalogItem) error {
	if s.phase != PhaseBrowsing {
		return ErrWrongPhase
	}
	if !item.Type.Purchasable() {
		return ErrNotPurchasable
	}
	s.selected = &item
	s.phase = PhaseConfirming
	return nil
}

// AddToCart stays in browsing and accumulates quantity by item title:
// adding an already-present title increments rather than duplicating.
func (s *Session) AddToCart(item model.CatalogItem, qty int) error {
	if s.phase != PhaseBrowsing {
		return ErrWrongPhase
	}
	if !item.Type.Purchasable() {
		return ErrNotPurchasable
	}
	if qty <= 0 {
		return nil
	}
	if _, ok := s.cart[item.Title]; !ok {
		s.cartOrder = append(s.cartOrder, item.Title)
	}
	s.cart[item.Title] += qty
	return nil
}

// Cart returns cart lines in first-added order.
func (s *Session) Cart() []CartLine {
	out := make([]CartLine, 0, len(s.cartOrder))
	for _, title := range s.cartOrder {
		if qty := s.cart[title]; qty > 0 {
			out = append(out, CartLine{Title: title, Quantity: qty})
		}
	}
	return out
}

// SetAddOn sets an add-on quantity. A quantity of zero or less removes
// the key entirely; no zero-quantity entries persist.
func (s *Session) SetAddOn(title string, qty int) {
	if qty <= 0 {
		delete(s.addOns, title)
		return
	}
	s.addOns[title] = qty
}

// AddOns returns the add-on quantity map.
func (s *Session) AddOns() map[string]int {
	out := make(map[string]int, len(s.addOns))
	for k, v := range s.addOns {
		out[k] = v
	}
	return out
}

// SetCustomer records the confirming-phase fields.
func (s *Session) SetCustomer(fields CustomerFields) {
	s.fields = fields
}

// validate applies the mode-dependent required-field rules. This is a
// client-side guard, not a substitute for server validation.
func (s *Session) validate() error {
	if strings.TrimSpace(s.fields.Name) == "" || strings.TrimSpace(s.fields.Email) == "" {
		return ErrMissingCustomer
	}
	if s.mode.Bookable() {
		if strings.TrimSpace(s.fields.Date) == "" || strings.TrimSpace(s.fields.SlotID) == "" {
			return ErrMissingSlot
		}
	}
	return nil
}

// Confirm validates locally, then delegates to the external
// collaborator. Success transitions to the success phase; failure
// stays in confirming and surfaces the error verbatim, with no
// automatic retry.
func (s *Session) Confirm(ctx context.Context, submit SubmitFunc) error {
	if s.phase != PhaseConfirming {
		return ErrWrongPhase
	}
	if err := s.validate(); err != nil {
		return err
	}

	req := SubmitRequest{
		Mode:     s.mode,
		Item:     s.selected,
		Cart:     s.Cart(),
		Customer: s.fields,
	}
	if len(s.addOns) > 0 {
		req.AddOns = s.AddOns()
	}

	if err := submit(ctx, req); err != nil {
		s.lastErr = err.Error()
		return err
	}

	s.lastErr = ""
	s.phase = PhaseSuccess
	return nil
}

// Reset clears all selection, cart, add-on, and field state and
// returns to browsing. Valid from any phase.
func (s *Session) Reset() {
	s.phase = PhaseBrowsing
	s.selected = nil
	s.cart = make(map[string]int)
	s.cartOrder = nil
	s.addOns = make(map[string]int)
	s.fields = CustomerFields{}
	s.lastErr = ""
}
