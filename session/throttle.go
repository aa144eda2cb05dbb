/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package session implements the wire-level connection: socket setup and
// tuning, the sliding-window send throttle, and the Disconnected ->
// Connecting -> Authenticating -> Running -> Stopping -> Terminated
// lifecycle loop, per spec §4.4.
package session

import (
	"runtime"
	"time"
)

// Throttle is a sliding-interval message counter. try_send(n) in the source
// becomes TrySend here: it succeeds if the current window still has
// capacity, or if the wall clock has advanced past the window's end, in
// which case the window resets to n. A batch larger than limit is refused
// even in a fresh window.
type Throttle struct {
	limit    int
	interval time.Duration

	windowStart time.Time
	sent        int
}

// NewThrottle builds a throttle allowing at most limit messages per
// interval.
func NewThrottle(limit int, interval time.Duration) *Throttle {
	return &Throttle{limit: limit, interval: interval}
}

// TrySend reports whether n more messages fit in the current window,
// resetting the window first if it has elapsed.
func (t *Throttle) TrySend(n int) bool {
	now := time.Now()
	if now.Sub(t.windowStart) >= t.interval {
		t.windowStart = now
		t.sent = 0
	}
	if t.sent+n > t.limit {
		return false
	}
	t.sent += n
	return true
}

// ForceSend busy-waits, yielding the scheduler between attempts, until
// TrySend succeeds. Mirrors the source's _mm_pause() spin loop — Go has no
// portable pause intrinsic, so runtime.Gosched() stands in (see AMBIENT
// STACK / §4.4 Go-specific note). Never uses time.Sleep, which would both
// overshoot the window and needlessly de-schedule the trading goroutine.
func (t *Throttle) ForceSend(n int) {
	for !t.TrySend(n) {
		runtime.Gosched()
	}
}
