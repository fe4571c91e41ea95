// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

// Package bus is the in-process broadcast channel between editing and
// preview surfaces. Every successful normalization is published here so
// any other open view of the same storefront re-renders without its
// own network fetch.
package bus

import (
	"sync"

	"github.com/jadensa-bit/scanly/internal/model"
)

// MessageTypeConfig is the message type for configuration broadcasts.
const MessageTypeConfig = "config"

// Message is the broadcast payload: the owning handle plus the full
// normalized configuration.
type Message struct {
	Type   string                  `json:"type"`
	Handle string                  `json:"handle"`
	Config *model.StorefrontConfig `json:"config"`
}

// subscriberBuffer bounds each subscriber channel. A subscriber that
// stops draining loses intermediate messages, never blocks publishers.
const subscriberBuffer = 16

// Bus fans out messages to all current subscribers.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Message
	nextID int
	closed bool
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{subs: make(map[int]chan Message)}
}

// Subscribe registers a new subscriber. The returned cancel function
// removes the subscription and closes the channel; it is safe to call
// more than once.
func (b *Bus) Subscribe() (<-chan Message, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Message, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
			b.mu.Unlock()
		})
	}
	return ch, cancel
}

// Publish delivers a message to every subscriber. Delivery is
// non-blocking: a full subscriber drops the message.
func (b *Bus) Publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}

// PublishConfig broadcasts a normalized configuration.
func (b *Bus) PublishConfig(handle string, cfg *model.StorefrontConfig) {
	b.Publish(Message{Type: MessageTypeConfig, Handle: handle, Config: cfg})
}

// Close shuts the bus down and closes all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
