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

// Kind distinguishes the three lifecycle chains an operation state can
// belong to.
type Kind uint8

const (
	KindRead Kind = iota
	KindWrite
	KindBarrier
)

// Phase is a single lifecycle state within one of the three chains, each
// shaped unknown -> *_initialised -> *_initiated -> *_completed -> *_finished.
type Phase uint8

const (
	PhaseUnknown Phase = iota

	PhaseReadInitialised
	PhaseReadInitiated
	PhaseReadCompleted
	PhaseReadFinished

	PhaseWriteInitialised
	PhaseWriteInitiated
	PhaseWriteCompleted
	PhaseWriteFinished

	PhaseBarrierInitialised
	PhaseBarrierInitiated
	PhaseBarrierCompleted
	PhaseBarrierFinished
)

func (p Phase) String() string {
	switch p {
	case PhaseUnknown:
		return "unknown"
	case PhaseReadInitialised:
		return "read_initialised"
	case PhaseReadInitiated:
		return "read_initiated"
	case PhaseReadCompleted:
		return "read_completed"
	case PhaseReadFinished:
		return "read_finished"
	case PhaseWriteInitialised:
		return "write_initialised"
	case PhaseWriteInitiated:
		return "write_initiated"
	case PhaseWriteCompleted:
		return "write_completed"
	case PhaseWriteFinished:
		return "write_finished"
	case PhaseBarrierInitialised:
		return "barrier_initialised"
	case PhaseBarrierInitiated:
		return "barrier_initiated"
	case PhaseBarrierCompleted:
		return "barrier_completed"
	case PhaseBarrierFinished:
		return "barrier_finished"
	default:
		return "invalid"
	}
}

// Kind reports which of the three lifecycle chains p belongs to.
func (p Phase) Kind() Kind {
	switch {
	case p >= PhaseReadInitialised && p <= PhaseReadFinished:
		return KindRead
	case p >= PhaseWriteInitialised && p <= PhaseWriteFinished:
		return KindWrite
	default:
		return KindBarrier
	}
}

// IsInitialised reports whether p is one of the three *_initialised phases.
func (p Phase) IsInitialised() bool {
	return p == PhaseReadInitialised || p == PhaseWriteInitialised || p == PhaseBarrierInitialised
}

// IsInFlight reports whether p is strictly between *_initiated and
// *_finished, the window during which RelocateTo is forbidden.
func (p Phase) IsInFlight() bool {
	switch p {
	case PhaseReadInitiated, PhaseReadCompleted,
		PhaseWriteInitiated, PhaseWriteCompleted,
		PhaseBarrierInitiated, PhaseBarrierCompleted:
		return true
	default:
		return false
	}
}

// IsFinished reports whether p is one of the three terminal *_finished
// phases.
func (p Phase) IsFinished() bool {
	return p == PhaseReadFinished || p == PhaseWriteFinished || p == PhaseBarrierFinished
}

// next advances p one step along its chain, used by the sync backend
// which never suspends mid-transition.
func (p Phase) next() Phase {
	switch p {
	case PhaseReadInitialised:
		return PhaseReadInitiated
	case PhaseReadInitiated:
		return PhaseReadCompleted
	case PhaseReadCompleted:
		return PhaseReadFinished
	case PhaseWriteInitialised:
		return PhaseWriteInitiated
	case PhaseWriteInitiated:
		return PhaseWriteCompleted
	case PhaseWriteCompleted:
		return PhaseWriteFinished
	case PhaseBarrierInitialised:
		return PhaseBarrierInitiated
	case PhaseBarrierInitiated:
		return PhaseBarrierCompleted
	case PhaseBarrierCompleted:
		return PhaseBarrierFinished
	default:
		return p
	}
}
