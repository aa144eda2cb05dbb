// Package risk implements the one-shot abort latch shared by every strategy
// binary. It is observed at the entry of every hot-path handler; once set it
// drives an orderly Stream.Stop -> Logger.Stop -> terminate sequence instead
// of letting the session loop keep running against inconsistent state.
package risk

import "sync/atomic"

// Latch is a single fatal flag. It is safe to set from the logger goroutine
// (on a FATAL log entry) and check from the trading goroutine.
type Latch struct {
	aborted atomic.Bool
}

// Abort sets the latch. Idempotent.
func (l *Latch) Abort() {
	l.aborted.Store(true)
}

// Aborted reports whether the latch has been set.
func (l *Latch) Aborted() bool {
	return l.aborted.Load()
}

// Latch has no panicking Check method, since teardown must be orderly;
// callers observe Aborted() directly at the top of
// their hot-path handlers and perform their own Stop/Logger.Stop/exit
// sequence, matching tag::Risk::Check in the source.
