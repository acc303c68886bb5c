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

// Package ioh implements the byte-I/O handle contract: scatter/gather
// read/write/barrier over a kernel resource capable of byte I/O, with
// deadline-bounded operations and an optional attached multiplexer.
package ioh

import (
	"github.com/bits-and-blooms/bitset"
)

// Descriptor bit positions, one flag per bit of the native handle
// descriptor bitfield described by the data model.
const (
	bitIsKernelHandle uint = iota
	bitIsSocket
	bitIsNonblocking
	bitIsAppendOnly
	bitIsConnected
	bitRequiresAlignedIO
	bitHasMultiplexer
	bitMultiplexerState0
	bitMultiplexerState1
	bitIsTLSSocket
	bitIsPointerIndirection

	descriptorBits
)

// Descriptor is the native handle descriptor: a small bitfield recording
// the handle's kind and current capabilities, backed by a bitset so the
// multiplexer-state bits can be updated atomically-in-spirit alongside the
// rest without a dedicated struct of bools.
type Descriptor struct {
	bits *bitset.BitSet
}

// NewDescriptor returns a zeroed Descriptor (no flags set).
func NewDescriptor() Descriptor {
	return Descriptor{bits: bitset.New(descriptorBits)}
}

func (d *Descriptor) ensure() {
	if d.bits == nil {
		d.bits = bitset.New(descriptorBits)
	}
}

func (d *Descriptor) set(bit uint, v bool) {
	d.ensure()
	if v {
		d.bits.Set(bit)
	} else {
		d.bits.Clear(bit)
	}
}

func (d Descriptor) test(bit uint) bool {
	if d.bits == nil {
		return false
	}
	return d.bits.Test(bit)
}

func (d *Descriptor) SetKernelHandle(v bool)      { d.set(bitIsKernelHandle, v) }
func (d *Descriptor) SetSocket(v bool)             { d.set(bitIsSocket, v) }
func (d *Descriptor) SetNonblocking(v bool)         { d.set(bitIsNonblocking, v) }
func (d *Descriptor) SetAppendOnly(v bool)          { d.set(bitIsAppendOnly, v) }
func (d *Descriptor) SetConnected(v bool)           { d.set(bitIsConnected, v) }
func (d *Descriptor) SetRequiresAlignedIO(v bool)   { d.set(bitRequiresAlignedIO, v) }
func (d *Descriptor) SetHasMultiplexer(v bool)      { d.set(bitHasMultiplexer, v) }
func (d *Descriptor) SetTLSSocket(v bool)           { d.set(bitIsTLSSocket, v) }
func (d *Descriptor) SetPointerIndirection(v bool)  { d.set(bitIsPointerIndirection, v) }

// SetMultiplexerState sets the two multiplexer-state bits from the value a
// multiplexer returned on registration (0-3); bit 0 signals that the
// multiplexer successfully arranged for immediate-completion bypass.
func (d *Descriptor) SetMultiplexerState(state uint8) {
	d.set(bitMultiplexerState0, state&0x1 != 0)
	d.set(bitMultiplexerState1, state&0x2 != 0)
}

func (d Descriptor) IsKernelHandle() bool     { return d.test(bitIsKernelHandle) }
func (d Descriptor) IsSocket() bool           { return d.test(bitIsSocket) }
func (d Descriptor) IsNonblocking() bool      { return d.test(bitIsNonblocking) }
func (d Descriptor) IsAppendOnly() bool       { return d.test(bitIsAppendOnly) }
func (d Descriptor) IsConnected() bool        { return d.test(bitIsConnected) }
func (d Descriptor) RequiresAlignedIO() bool  { return d.test(bitRequiresAlignedIO) }
func (d Descriptor) HasMultiplexer() bool     { return d.test(bitHasMultiplexer) }
func (d Descriptor) IsTLSSocket() bool        { return d.test(bitIsTLSSocket) }
func (d Descriptor) IsPointerIndirection() bool { return d.test(bitIsPointerIndirection) }

// SkipsCompletionQueue reports multiplexer-state bit 0: the multiplexer
// arranged for synchronously-completing I/O to bypass the completion
// queue entirely (the "immediate-completion optimisation").
func (d Descriptor) SkipsCompletionQueue() bool {
	return d.test(bitMultiplexerState0)
}
