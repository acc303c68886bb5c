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

	libioh "github.com/sabouaram/golib/ioh"
)

// nullMultiplexer accepts every operation and completes it, empty and
// successful, on the next pump of CheckForAnyCompletedIO: used to
// benchmark the framework's own overhead without touching a kernel
// resource.
type nullMultiplexer struct {
	mu      sync.Mutex
	pending []OpState
	wake    chan struct{}
}

// NewNull returns the null/test backend.
func NewNull() Multiplexer {
	return &nullMultiplexer{wake: make(chan struct{}, 1)}
}

func (m *nullMultiplexer) Register(h libioh.Handle) (uint8, error) { return 1, nil }
func (m *nullMultiplexer) Deregister(h libioh.Handle)              {}

func (m *nullMultiplexer) StateRequirements() StateRequirements {
	return StateRequirements{Size: 0, Alignment: 0}
}

func (m *nullMultiplexer) ConstructRead(h libioh.Handle, req libioh.Request) OpState {
	return newState(KindRead, h, req, libioh.ConstRequest{}, true)
}

func (m *nullMultiplexer) ConstructWrite(h libioh.Handle, req libioh.ConstRequest) OpState {
	return newState(KindWrite, h, libioh.Request{}, req, true)
}

func (m *nullMultiplexer) ConstructBarrier(h libioh.Handle, kind libioh.BarrierKind) OpState {
	s := newState(KindBarrier, h, libioh.Request{}, libioh.ConstRequest{}, true)
	s.barrierKind = kind
	return s
}

func (m *nullMultiplexer) InitIOOperation(ctx context.Context, state OpState, deadline time.Time) error {
	s, ok := state.(*opState)
	if !ok {
		return ErrorInvalidState.Error()
	}

	switch s.kind {
	case KindRead:
		s.transition(PhaseReadInitiated, libioh.Result{}, nil)
	case KindWrite:
		s.transition(PhaseWriteInitiated, libioh.Result{}, nil)
	default:
		s.transition(PhaseBarrierInitiated, libioh.Result{}, nil)
	}

	m.mu.Lock()
	m.pending = append(m.pending, state)
	m.mu.Unlock()

	return nil
}

func (m *nullMultiplexer) FlushInitedIOOperations() error { return nil }

func (m *nullMultiplexer) CheckIOOperation(state OpState) (Phase, error) {
	return state.Current(), nil
}

func (m *nullMultiplexer) CancelIOOperation(ctx context.Context, state OpState, deadline time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, s := range m.pending {
		if s == state {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			completeState(s, libioh.Result{}, ErrorOperationCanceled.Error())
			return nil
		}
	}

	return nil
}

// CheckForAnyCompletedIO completes every pending operation successfully
// with an empty result, regardless of deadline or maxCompletions, then
// waits for a wake or the deadline before returning.
func (m *nullMultiplexer) CheckForAnyCompletedIO(ctx context.Context, deadline time.Time, maxCompletions int) (CompletionStats, error) {
	m.mu.Lock()
	pending := m.pending
	m.pending = nil
	m.mu.Unlock()

	n := 0
	for _, s := range pending {
		if maxCompletions > 0 && n >= maxCompletions {
			m.mu.Lock()
			m.pending = append(m.pending, s)
			m.mu.Unlock()
			continue
		}
		completeState(s, libioh.Result{}, nil)
		n++
	}

	return CompletionStats{Completed: n, Finished: n}, nil
}

func completeState(state OpState, res libioh.Result, err error) {
	s, ok := state.(*opState)
	if !ok {
		return
	}

	switch s.kind {
	case KindRead:
		s.transition(PhaseReadCompleted, res, err)
		s.transition(PhaseReadFinished, libioh.Result{}, nil)
	case KindWrite:
		s.transition(PhaseWriteCompleted, res, err)
		s.transition(PhaseWriteFinished, libioh.Result{}, nil)
	default:
		s.transition(PhaseBarrierCompleted, libioh.Result{}, err)
		s.transition(PhaseBarrierFinished, libioh.Result{}, nil)
	}
}

func (m *nullMultiplexer) WakeCheckForAnyCompletedIO() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *nullMultiplexer) Close() error { return nil }
