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

package ioh

import (
	"context"
	"time"
)

// BarrierKind selects which side of the barrier the caller cares about;
// seekable/file handles map this to the strongest equivalent flush
// syscall, sockets may treat it as a no-op.
type BarrierKind uint8

const (
	BarrierAll BarrierKind = iota
	BarrierDataOnly
)

// Request describes a scatter/gather transfer: zero or more buffers and
// the starting offset (ignored for append-only handles).
type Request struct {
	Buffers []Buffer
	Offset  int64
}

// ConstRequest is Request's read-only form, used for writes.
type ConstRequest struct {
	Buffers []ConstBuffer
	Offset  int64
}

// Result reports how much of a Request was actually transferred: Buffers
// is the shorter-or-equal prefix of the request's buffers, each rewritten
// to the bytes actually moved (partial consumption only on the last one).
type Result struct {
	Buffers []Buffer
	Bytes   int64
}

// Multiplexer is the subset of iomux.Multiplexer that ioh depends on,
// mirrored here to avoid an import cycle (iomux constructs operation
// states that reference ioh.Handle, so ioh cannot import iomux back).
type Multiplexer interface {
	Deregister(h Handle)
	Register(h Handle) (state uint8, err error)
}

// Handle is the byte-I/O handle contract: scatter/gather read/write/
// barrier over a kernel resource, deadline-bounded, with an optional
// attached multiplexer for async completion.
type Handle interface {
	// Descriptor returns the handle's current native descriptor bits.
	Descriptor() Descriptor

	// MaxBuffers is the upper bound on atomic scatter/gather for this
	// handle: 1 when the OS lacks scatter I/O for this class, 0 for
	// fully-userspace handles.
	MaxBuffers() int

	// AllocateRegisteredBuffer returns a registered buffer of at least
	// bytes, rounded up to what was actually allocated.
	AllocateRegisteredBuffer(bytes int) (*RegisteredBuffer, error)

	// Read transfers as much as possible into req's buffers before
	// deadline elapses. A zero deadline means "try once, don't block";
	// the zero time.Time means "block forever".
	Read(ctx context.Context, req Request, deadline time.Time) (Result, error)

	// Write transfers as much of req's buffers as possible before
	// deadline elapses.
	Write(ctx context.Context, req ConstRequest, deadline time.Time) (Result, error)

	// Barrier hints that pre-barrier writes should reach storage before
	// post-barrier writes.
	Barrier(ctx context.Context, kind BarrierKind, deadline time.Time) error

	// SetMultiplexer deregisters from any previous multiplexer and
	// registers with m, updating the descriptor's multiplexer-state
	// bits. Must only be called with no I/O outstanding.
	SetMultiplexer(m Multiplexer) error

	// Close deregisters from any attached multiplexer, then closes the
	// underlying OS handle.
	Close() error
}

// Future is the coroutine-shaped async result of a ReadAsync/WriteAsync/
// BarrierAsync call: Go's rendition of the spec's eager awaitable. The
// operation is initiated in iomux at construction time; Wait blocks (or
// respects ctx) until it finishes, Cancel asks the multiplexer to abort.
type Future struct {
	done   chan struct{}
	result Result
	err    error
	cancel func(deadline time.Time) error
}

// NewFuture wires a Future around an already-initiated operation. run is
// invoked once in its own goroutine and must close done by calling
// complete exactly once.
func NewFuture(cancel func(deadline time.Time) error) (*Future, func(Result, error)) {
	f := &Future{
		done:   make(chan struct{}),
		cancel: cancel,
	}

	complete := func(res Result, err error) {
		f.result = res
		f.err = err
		close(f.done)
	}

	return f, complete
}

// Wait blocks until the operation finishes or ctx is done, whichever
// comes first.
func (f *Future) Wait(ctx context.Context) (Result, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Ready reports whether the operation has already finished.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Cancel asks the multiplexer to cancel the in-flight operation, waiting
// up to deadline for it to transition. If already finished, this is a
// no-op.
func (f *Future) Cancel(deadline time.Time) error {
	if f.Ready() {
		return nil
	}
	if f.cancel == nil {
		return ErrorNotSupported.Error()
	}
	return f.cancel(deadline)
}
