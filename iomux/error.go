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

// Package iomux implements the I/O multiplexer and operation state
// machine: construct/init/check/cancel lifecycle for read, write and
// barrier operations, plus the drive loop that pumps kernel completions.
package iomux

import "github.com/sabouaram/golib/errors"

const (
	ErrorInvalidState errors.CodeError = iota + errors.MinPkgIomux
	ErrorRelocateWhileInFlight
	ErrorOperationCanceled
	ErrorTimedOut
	ErrorDeviceOrResourceBusy
)

func init() {
	errors.RegisterIdFctMessage(ErrorInvalidState, getMessage)
}

func getMessage(code errors.CodeError) string {
	switch code {
	case errors.UNK_ERROR:
		return ""
	case ErrorInvalidState:
		return "operation state is not valid for this transition"
	case ErrorRelocateWhileInFlight:
		return "cannot relocate a state between initiated and finished"
	case ErrorOperationCanceled:
		return "operation canceled"
	case ErrorTimedOut:
		return "deadline exceeded"
	case ErrorDeviceOrResourceBusy:
		return "multiplexer at its in-flight operation limit"
	}

	return ""
}
