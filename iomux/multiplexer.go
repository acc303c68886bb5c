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
	"time"

	libioh "github.com/sabouaram/golib/ioh"
)

// CompletionStats reports what a single CheckForAnyCompletedIO pump did;
// it never fails with a timeout, only reports zero activity.
type CompletionStats struct {
	Completed int
	Finished  int
}

// Multiplexer is the I/O multiplexer contract (spec component C3):
// construct/init/check/cancel lifecycle for operation states, plus the
// drive loop that pumps kernel completions. It also satisfies
// ioh.Multiplexer so a Handle can SetMultiplexer(m) directly.
type Multiplexer interface {
	// Register attaches h to this multiplexer, returning the
	// multiplexer-state bits the handle should record in its descriptor.
	Register(h libioh.Handle) (state uint8, err error)

	// Deregister detaches h from this multiplexer.
	Deregister(h libioh.Handle)

	// StateRequirements returns the (size, alignment) a caller would
	// need for raw storage; Go always heap-allocates, so this is
	// informational.
	StateRequirements() StateRequirements

	// ConstructRead/Write/Barrier build an operation state in
	// `*_initialised`, not yet submitted.
	ConstructRead(h libioh.Handle, req libioh.Request) OpState
	ConstructWrite(h libioh.Handle, req libioh.ConstRequest) OpState
	ConstructBarrier(h libioh.Handle, kind libioh.BarrierKind) OpState

	// InitIOOperation transitions state from *_initialised to
	// *_initiated, or directly to *_completed/*_finished if the I/O
	// completed synchronously. Deadline bounds the underlying syscall.
	InitIOOperation(ctx context.Context, state OpState, deadline time.Time) error

	// FlushInitedIOOperations guarantees any batched initiations are
	// submitted to the kernel.
	FlushInitedIOOperations() error

	// CheckIOOperation asks for state's current phase, possibly
	// advancing it.
	CheckIOOperation(state OpState) (Phase, error)

	// CancelIOOperation issues the platform cancel primitive and waits
	// up to deadline for the transition. A no-op if already completed.
	CancelIOOperation(ctx context.Context, state OpState, deadline time.Time) error

	// CheckForAnyCompletedIO pumps up to maxCompletions completions from
	// the kernel, invoking each state's visitor. Never fails with a
	// timeout.
	CheckForAnyCompletedIO(ctx context.Context, deadline time.Time, maxCompletions int) (CompletionStats, error)

	// WakeCheckForAnyCompletedIO posts a sentinel completion so exactly
	// one thread currently inside CheckForAnyCompletedIO returns
	// promptly.
	WakeCheckForAnyCompletedIO()

	// Close releases resources owned by the multiplexer (epoll fd, ring
	// mmaps, IOCP handle, ...).
	Close() error
}
