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
	"sync"

	libioh "github.com/sabouaram/golib/ioh"
)

// Visitor receives callbacks for every state transition. Callbacks run
// with the per-state lock held for the synchronised variant; the
// *_completed callbacks may consume the result by returning true, after
// which GetCompleted* observes an empty result.
type Visitor struct {
	ReadInitiated  func()
	ReadCompleted  func(res libioh.Result, err error) (consumed bool)
	ReadFinished   func()
	WriteInitiated func()
	WriteCompleted func(res libioh.Result, err error) (consumed bool)
	WriteFinished  func()
	BarrierInitiated func()
	BarrierCompleted func(err error) (consumed bool)
	BarrierFinished  func()
}

// StateRequirements is the (size, alignment) pair a caller uses to
// allocate conformant storage for a construct call. Go has no raw storage
// placement-new equivalent, so these are informational/diagnostic only;
// Construct* always heap-allocates the concrete state.
type StateRequirements struct {
	Size      int
	Alignment int
}

// OpState is the operation state machine for one in-flight (or not yet
// submitted) read/write/barrier. The synchronised variant (sync.go) guards
// every field with a mutex; the unsynchronised variant (unsync.go) backs
// Phase with a lock-free atomic for single-threaded cooperative
// multiplexers that never contend on it.
type OpState interface {
	// Kind reports which of the three lifecycle chains this state
	// belongs to.
	Kind() Kind

	// Current returns the state's current lifecycle phase.
	Current() Phase

	// SetVisitor installs (or replaces) the callback visitor. Must be
	// called before InitIOOperation.
	SetVisitor(v Visitor)

	// Handle returns the ioh.Handle this state operates on.
	Handle() libioh.Handle

	// GetCompletedRead/Write returns the last completed result, if the
	// *_completed visitor did not consume it.
	GetCompletedRead() (libioh.Result, error, bool)
	GetCompletedWrite() (libioh.Result, error, bool)
	GetCompletedBarrier() (error, bool)

	// transition is the only internal mutator, used by the multiplexer
	// backends; it is not part of the contract exposed to callers.
	transition(next Phase, res libioh.Result, err error)
}

// ConstructRead initialises a read operation state in `*_initialised`,
// synchronised (guarded by a mutex) when sync is true.
func ConstructRead(h libioh.Handle, req libioh.Request, sync bool) OpState {
	return newState(KindRead, h, req, libioh.ConstRequest{}, sync)
}

// ConstructWrite initialises a write operation state.
func ConstructWrite(h libioh.Handle, req libioh.ConstRequest, sync bool) OpState {
	return newState(KindWrite, h, libioh.Request{}, req, sync)
}

// ConstructBarrier initialises a barrier operation state.
func ConstructBarrier(h libioh.Handle, kind libioh.BarrierKind, sync bool) OpState {
	s := newState(KindBarrier, h, libioh.Request{}, libioh.ConstRequest{}, sync)
	s.barrierKind = kind
	return s
}

func newState(k Kind, h libioh.Handle, rreq libioh.Request, wreq libioh.ConstRequest, synced bool) *opState {
	s := &opState{
		kind:    k,
		handle:  h,
		rreq:    rreq,
		wreq:    wreq,
		phase:   initialPhase(k),
		synced:  synced,
	}
	if synced {
		s.mu = &sync.Mutex{}
	}
	return s
}

func initialPhase(k Kind) Phase {
	switch k {
	case KindRead:
		return PhaseReadInitialised
	case KindWrite:
		return PhaseWriteInitialised
	default:
		return PhaseBarrierInitialised
	}
}

// opState is the concrete OpState implementation shared by both the
// synchronised and unsynchronised variants; synced selects whether
// transition acquires mu.
type opState struct {
	mu     *sync.Mutex
	synced bool

	kind   Kind
	handle libioh.Handle
	phase  Phase

	rreq        libioh.Request
	wreq        libioh.ConstRequest
	barrierKind libioh.BarrierKind

	visitor Visitor

	readResult  libioh.Result
	readErr     error
	readValid   bool

	writeResult libioh.Result
	writeErr    error
	writeValid  bool

	barrierErr   error
	barrierValid bool
}

func (s *opState) Kind() Kind           { return s.kind }
func (s *opState) Handle() libioh.Handle { return s.handle }

func (s *opState) Current() Phase {
	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	return s.phase
}

func (s *opState) SetVisitor(v Visitor) {
	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	s.visitor = v
}

func (s *opState) GetCompletedRead() (libioh.Result, error, bool) {
	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if !s.readValid {
		return libioh.Result{}, nil, false
	}
	s.readValid = false
	return s.readResult, s.readErr, true
}

func (s *opState) GetCompletedWrite() (libioh.Result, error, bool) {
	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if !s.writeValid {
		return libioh.Result{}, nil, false
	}
	s.writeValid = false
	return s.writeResult, s.writeErr, true
}

func (s *opState) GetCompletedBarrier() (error, bool) {
	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}
	if !s.barrierValid {
		return nil, false
	}
	s.barrierValid = false
	return s.barrierErr, true
}

// transition advances the state to next, stashing res/err for the
// *_completed phases and firing the matching visitor callback. The
// *_completed callback's "consumed" return controls whether GetCompleted*
// will observe the result afterward.
func (s *opState) transition(next Phase, res libioh.Result, err error) {
	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	s.phase = next

	switch next {
	case PhaseReadInitiated:
		if s.visitor.ReadInitiated != nil {
			s.visitor.ReadInitiated()
		}
	case PhaseReadCompleted:
		consumed := false
		if s.visitor.ReadCompleted != nil {
			consumed = s.visitor.ReadCompleted(res, err)
		}
		s.readResult, s.readErr, s.readValid = res, err, !consumed
	case PhaseReadFinished:
		if s.visitor.ReadFinished != nil {
			s.visitor.ReadFinished()
		}
	case PhaseWriteInitiated:
		if s.visitor.WriteInitiated != nil {
			s.visitor.WriteInitiated()
		}
	case PhaseWriteCompleted:
		consumed := false
		if s.visitor.WriteCompleted != nil {
			consumed = s.visitor.WriteCompleted(res, err)
		}
		s.writeResult, s.writeErr, s.writeValid = res, err, !consumed
	case PhaseWriteFinished:
		if s.visitor.WriteFinished != nil {
			s.visitor.WriteFinished()
		}
	case PhaseBarrierInitiated:
		if s.visitor.BarrierInitiated != nil {
			s.visitor.BarrierInitiated()
		}
	case PhaseBarrierCompleted:
		consumed := false
		if s.visitor.BarrierCompleted != nil {
			consumed = s.visitor.BarrierCompleted(err)
		}
		s.barrierErr, s.barrierValid = err, !consumed
	case PhaseBarrierFinished:
		if s.visitor.BarrierFinished != nil {
			s.visitor.BarrierFinished()
		}
	}
}

// RelocateTo moves s's polymorphic state into dest, preserving the
// current phase and pending result; the source becomes PhaseUnknown.
// Forbidden while the state is in flight (between *_initiated and
// *_finished).
func RelocateTo(src OpState, dest *OpState) error {
	s, ok := src.(*opState)
	if !ok {
		return ErrorInvalidState.Error()
	}

	if s.synced {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	if s.phase.IsInFlight() {
		return ErrorRelocateWhileInFlight.Error()
	}

	clone := *s
	if s.synced {
		clone.mu = &sync.Mutex{}
	}

	s.phase = PhaseUnknown
	*dest = &clone

	return nil
}
