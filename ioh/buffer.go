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
	libatm "github.com/sabouaram/golib/atomic"
)

// Buffer is a mutable scatter/gather slot: a byte slice plus the offset at
// which the handle should transfer it. Read/Write rewrite Length to the
// bytes actually moved, per the edge policy that only the last returned
// buffer may be partially consumed.
type Buffer struct {
	Data   []byte
	Offset int64
}

// Length reports the buffer's current byte count.
func (b Buffer) Length() int {
	return len(b.Data)
}

// ConstBuffer is the read-only counterpart used for write requests: the
// handle must not mutate Data, only report how much of it was consumed via
// the returned Result.
type ConstBuffer struct {
	Data   []byte
	Offset int64
}

func (b ConstBuffer) Length() int {
	return len(b.Data)
}

// RegisteredBuffer is a buffer pre-registered with a multiplexer backend
// (e.g. io_uring fixed buffers) to skip a copy into kernel-pinned memory.
// It is ref-counted so a multiplexer and its owning handle can share
// lifetime without a finalizer: Acquire/Release must balance exactly, and
// the backing memory is only recycled once the count reaches zero.
type RegisteredBuffer struct {
	id    int
	data  []byte
	refs  libatm.Value[int64]
}

// AllocateRegisteredBuffer returns a registered buffer sized to at least
// bytes, rounded up to the page size, with an initial reference count of
// one. id is an opaque multiplexer-assigned registration index.
func AllocateRegisteredBuffer(id int, bytes int) *RegisteredBuffer {
	size := roundUpPage(bytes)

	rb := &RegisteredBuffer{
		id:   id,
		data: make([]byte, size),
		refs: libatm.NewValue[int64](),
	}
	rb.refs.Store(1)

	return rb
}

const pageSize = 4096

func roundUpPage(n int) int {
	if n <= 0 {
		return pageSize
	}
	if r := n % pageSize; r != 0 {
		n += pageSize - r
	}
	return n
}

// ID returns the multiplexer-assigned registration index.
func (r *RegisteredBuffer) ID() int {
	return r.id
}

// Bytes returns the underlying storage. Callers must not retain slices
// past a Release that drops the count to zero.
func (r *RegisteredBuffer) Bytes() []byte {
	return r.data
}

// Acquire increments the reference count and returns the new count.
func (r *RegisteredBuffer) Acquire() int64 {
	for {
		old := r.refs.Load()
		if r.refs.CompareAndSwap(old, old+1) {
			return old + 1
		}
	}
}

// Release decrements the reference count and reports whether it reached
// zero (the caller is then responsible for recycling the slot).
func (r *RegisteredBuffer) Release() bool {
	for {
		old := r.refs.Load()
		if old <= 0 {
			return true
		}
		if r.refs.CompareAndSwap(old, old-1) {
			return old-1 == 0
		}
	}
}
