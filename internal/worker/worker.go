// worker.go - Halt-channel lifecycle primitive.
// Copyright (C) 2026  tug-dev contributors.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package worker provides the halt-channel lifecycle primitive used
// throughout this codebase (the same shape as the katzenpost core/worker
// package this project is descended from): embed Worker in any type that
// needs an idempotent, signalable "I am done" state, without requiring a
// background goroutine of its own.
package worker

import "sync"

// Worker gives a struct an idempotent Halt and a channel goroutines can
// select on to notice it. It does not start any goroutine by itself;
// Connection embeds it purely for the close-is-idempotent guarantee,
// staying synchronous per the concurrency model it documents.
type Worker struct {
	haltOnce sync.Once
	haltCh   chan struct{}
	initOnce sync.Once
}

func (w *Worker) lazyInit() {
	w.initOnce.Do(func() {
		w.haltCh = make(chan struct{})
	})
}

// HaltCh returns the channel that is closed when Halt is first called.
func (w *Worker) HaltCh() <-chan struct{} {
	w.lazyInit()
	return w.haltCh
}

// Halt closes the halt channel exactly once; subsequent calls are no-ops.
func (w *Worker) Halt() {
	w.lazyInit()
	w.haltOnce.Do(func() {
		close(w.haltCh)
	})
}

// IsHalted reports whether Halt has been called.
func (w *Worker) IsHalted() bool {
	w.lazyInit()
	select {
	case <-w.haltCh:
		return true
	default:
		return false
	}
}
