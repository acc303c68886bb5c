/*
 * MIT License
 *
 * Copyright (c) 2020 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package iomux

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	libioh "github.com/sabouaram/golib/ioh"
)

// syncMultiplexer is the always-available backend: every operation is
// driven by a direct blocking syscall through ioh.Handle, with a
// golang.org/x/sync/semaphore bounding in-flight operations per
// multiplexer (replacing the teacher's test-only semaphore/runner
// packages). CheckForAnyCompletedIO on this backend is a no-op pump since
// InitIOOperation always runs to completion synchronously; it exists so
// callers written against the generic drive loop work unmodified.
type syncMultiplexer struct {
	mu    sync.Mutex
	sem   *semaphore.Weighted
	wake  chan struct{}
	closed bool
}

// NewSync returns the synchronous multiplexer backend: blocking syscalls
// with poll emulation for deadlines, available on every platform. maxInFlight
// bounds concurrent outstanding operations (<=0 means unbounded).
func NewSync(maxInFlight int64) Multiplexer {
	if maxInFlight <= 0 {
		maxInFlight = int64(MaxBuffersHint)
	}
	return &syncMultiplexer{
		sem:  semaphore.NewWeighted(maxInFlight),
		wake: make(chan struct{}, 1),
	}
}

// MaxBuffersHint bounds default in-flight operations when the caller does
// not specify one; tied to the scatter-gather limit since each handle
// rarely needs more outstanding operations than it has buffers for.
const MaxBuffersHint = 256

func (m *syncMultiplexer) Register(h libioh.Handle) (uint8, error) {
	// The sync backend never arranges the immediate-completion bypass
	// (state bit 0): every I/O already runs synchronously, so there is
	// no completion queue to skip.
	return 0, nil
}

func (m *syncMultiplexer) Deregister(h libioh.Handle) {}

func (m *syncMultiplexer) StateRequirements() StateRequirements {
	return StateRequirements{Size: 0, Alignment: 0}
}

func (m *syncMultiplexer) ConstructRead(h libioh.Handle, req libioh.Request) OpState {
	return newState(KindRead, h, req, libioh.ConstRequest{}, true)
}

func (m *syncMultiplexer) ConstructWrite(h libioh.Handle, req libioh.ConstRequest) OpState {
	return newState(KindWrite, h, libioh.Request{}, req, true)
}

func (m *syncMultiplexer) ConstructBarrier(h libioh.Handle, kind libioh.BarrierKind) OpState {
	s := newState(KindBarrier, h, libioh.Request{}, libioh.ConstRequest{}, true)
	s.barrierKind = kind
	return s
}

// InitIOOperation runs the operation to completion immediately: the sync
// backend has no batching, so *_initialised transitions straight through
// *_initiated to *_completed and *_finished within this call.
func (m *syncMultiplexer) InitIOOperation(ctx context.Context, state OpState, deadline time.Time) error {
	s, ok := state.(*opState)
	if !ok {
		return ErrorInvalidState.Error()
	}

	if err := m.sem.Acquire(ctx, 1); err != nil {
		return ErrorTimedOut.Error(err)
	}
	defer m.sem.Release(1)

	switch s.kind {
	case KindRead:
		s.transition(PhaseReadInitiated, libioh.Result{}, nil)
		res, err := s.handle.Read(ctx, s.rreq, deadline)
		s.transition(PhaseReadCompleted, res, err)
		s.transition(PhaseReadFinished, libioh.Result{}, nil)
	case KindWrite:
		s.transition(PhaseWriteInitiated, libioh.Result{}, nil)
		res, err := s.handle.Write(ctx, s.wreq, deadline)
		s.transition(PhaseWriteCompleted, res, err)
		s.transition(PhaseWriteFinished, libioh.Result{}, nil)
	default:
		s.transition(PhaseBarrierInitiated, libioh.Result{}, nil)
		err := s.handle.Barrier(ctx, s.barrierKind, deadline)
		s.transition(PhaseBarrierCompleted, libioh.Result{}, err)
		s.transition(PhaseBarrierFinished, libioh.Result{}, nil)
	}

	return nil
}

func (m *syncMultiplexer) FlushInitedIOOperations() error { return nil }

func (m *syncMultiplexer) CheckIOOperation(state OpState) (Phase, error) {
	return state.Current(), nil
}

// CancelIOOperation is a no-op on the sync backend: InitIOOperation
// already ran to completion before returning, so there is nothing to
// cancel by the time the caller could observe the state.
func (m *syncMultiplexer) CancelIOOperation(ctx context.Context, state OpState, deadline time.Time) error {
	return nil
}

// CheckForAnyCompletedIO never has anything queued (the sync backend
// completes inline) but still respects WakeCheckForAnyCompletedIO and a
// deadline so callers can use it as a uniform heartbeat.
func (m *syncMultiplexer) CheckForAnyCompletedIO(ctx context.Context, deadline time.Time, maxCompletions int) (CompletionStats, error) {
	var wait <-chan time.Time
	if !deadline.IsZero() {
		d := time.Until(deadline)
		if d < 0 {
			d = 0
		}
		t := time.NewTimer(d)
		defer t.Stop()
		wait = t.C
	}

	select {
	case <-m.wake:
	case <-wait:
	case <-ctx.Done():
	}

	return CompletionStats{}, nil
}

func (m *syncMultiplexer) WakeCheckForAnyCompletedIO() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *syncMultiplexer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
