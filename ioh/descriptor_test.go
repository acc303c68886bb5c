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

package ioh_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	libioh "github.com/sabouaram/golib/ioh"
)

var _ = Describe("Descriptor", func() {
	It("starts with every flag clear", func() {
		d := libioh.NewDescriptor()
		Expect(d.IsSocket()).To(BeFalse())
		Expect(d.IsConnected()).To(BeFalse())
		Expect(d.HasMultiplexer()).To(BeFalse())
	})

	It("tracks independent flags", func() {
		d := libioh.NewDescriptor()
		d.SetSocket(true)
		d.SetNonblocking(true)
		Expect(d.IsSocket()).To(BeTrue())
		Expect(d.IsNonblocking()).To(BeTrue())
		Expect(d.IsConnected()).To(BeFalse())
	})

	It("decodes the multiplexer-state bits", func() {
		d := libioh.NewDescriptor()
		d.SetMultiplexerState(1)
		Expect(d.SkipsCompletionQueue()).To(BeTrue())

		d.SetMultiplexerState(2)
		Expect(d.SkipsCompletionQueue()).To(BeFalse())
	})
})

var _ = Describe("RegisteredBuffer", func() {
	It("allocates at least the requested size, rounded to a page", func() {
		rb := libioh.AllocateRegisteredBuffer(1, 10)
		Expect(len(rb.Bytes())).To(BeNumerically(">=", 10))
		Expect(len(rb.Bytes()) % 4096).To(Equal(0))
	})

	It("ref-counts Acquire/Release symmetrically", func() {
		rb := libioh.AllocateRegisteredBuffer(2, 4096)
		Expect(rb.Acquire()).To(Equal(int64(2)))
		Expect(rb.Release()).To(BeFalse())
		Expect(rb.Release()).To(BeTrue())
	})
})

var _ = Describe("edge policies", func() {
	It("rejects scatter lists longer than the platform limit", func() {
		Expect(libioh.CheckScatterLimit(10, 4)).To(HaveOccurred())
		Expect(libioh.CheckScatterLimit(4, 4)).ToNot(HaveOccurred())
	})

	It("forces append-only offsets to end-of-file", func() {
		Expect(libioh.ResolveOffset(true, 128)).To(Equal(int64(-1)))
		Expect(libioh.ResolveOffset(false, 128)).To(Equal(int64(128)))
	})

	It("validates 512-byte alignment for reads", func() {
		err := libioh.CheckAligned(true, 512, []int{512, 512}, false)
		Expect(err).ToNot(HaveOccurred())

		err = libioh.CheckAligned(true, 1, []int{512}, false)
		Expect(err).To(HaveOccurred())
	})

	It("allows a short last buffer on writes at end-of-file", func() {
		err := libioh.CheckAligned(true, 0, []int{512, 100}, true)
		Expect(err).ToNot(HaveOccurred())
	})

	It("skips alignment checks entirely when not required", func() {
		Expect(libioh.CheckAligned(false, 1, []int{1, 2, 3}, false)).ToNot(HaveOccurred())
	})
})
