// Copyright (c) 2025-2026 Jaden Sa
// SPDX-License-Identifier: MIT

package syncer

import (
	"sync"
	"time"

	"github.com/jadensa-bit/scanly/internal/model"
)

// laneState tracks where a debounce lane is in its cycle.
type laneState int

const (
	laneIdle laneState = iota
	laneScheduled
	laneInFlight
)

// lane coalesces a stream of configuration updates into single fires.
// Updates within the debounce interval replace the pending config and
// reset the timer; MaxWait bounds how long a continuously-edited
// config can go undelivered. Fires are last-write-wins.
type lane struct {
	mu        sync.Mutex
	state     laneState
	interval  time.Duration
	maxWait   time.Duration
	timer     *time.Timer
	firstSeen time.Time
	pending   *model.StorefrontConfig
	skipNext  bool
	stopped   bool
	fire      func(*model.StorefrontConfig)
	wg        sync.WaitGroup
}

func newLane(interval, maxWait time.Duration, fire func(*model.StorefrontConfig)) *lane {
	return &lane{
		interval: interval,
		maxWait:  maxWait,
		fire:     fire,
	}
}

// update queues cfg for delivery, coalescing with any pending update.
func (l *lane) update(cfg *model.StorefrontConfig) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}

	now := time.Now()
	l.pending = cfg

	switch l.state {
	case laneIdle:
		l.firstSeen = now
		l.state = laneScheduled
		l.timer = time.AfterFunc(l.interval, l.onTimer)
	case laneScheduled:
		// Force delivery when the edit stream never pauses.
		if l.maxWait > 0 && now.Sub(l.firstSeen) >= l.maxWait {
			l.timer.Stop()
			l.dispatchLocked()
			return
		}
		l.timer.Reset(l.interval)
	case laneInFlight:
		// Coalesce into the flight's completion; it reschedules.
	}
}

// skipNextFire makes the next scheduled fire consume its pending
// config without delivering it. Used by the instant path after a
// synchronous write-through, so the same change is not delivered twice.
func (l *lane) skipNextFire() {
	l.mu.Lock()
	l.skipNext = true
	l.mu.Unlock()
}

func (l *lane) onTimer() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != laneScheduled || l.stopped {
		return
	}
	l.dispatchLocked()
}

// dispatchLocked consumes the pending config and runs fire on its own
// goroutine. Must be called with the lock held.
func (l *lane) dispatchLocked() {
	cfg := l.pending
	l.pending = nil

	if l.skipNext {
		l.skipNext = false
		l.state = laneIdle
		return
	}
	if cfg == nil {
		l.state = laneIdle
		return
	}

	l.state = laneInFlight
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.fire(cfg)

		l.mu.Lock()
		defer l.mu.Unlock()
		if l.stopped {
			l.state = laneIdle
			return
		}
		if l.pending != nil {
			// An update arrived mid-flight; start a fresh cycle.
			l.firstSeen = time.Now()
			l.state = laneScheduled
			l.timer = time.AfterFunc(l.interval, l.onTimer)
			return
		}
		l.state = laneIdle
	}()
}

// flush delivers any pending config immediately.
func (l *lane) flush() {
	l.mu.Lock()
	if l.state == laneScheduled {
		l.timer.Stop()
		l.dispatchLocked()
	}
	l.mu.Unlock()
	l.wg.Wait()
}

// stop flushes and prevents further updates.
func (l *lane) stop() {
	l.flush()
	l.mu.Lock()
	l.stopped = true
	if l.timer != nil {
		l.timer.Stop()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
