/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package network

import "net"

var _flagNames = map[net.Flags]string{
	net.FlagUp:           "up",
	net.FlagBroadcast:    "broadcast",
	net.FlagLoopback:     "loopback",
	net.FlagPointToPoint: "pointtopoint",
	net.FlagMulticast:    "multicast",
}

// FindFlagInList reports whether flag's textual name is present in list.
// list entries are compared verbatim (as produced by net.Interface.Flags
// stringification conventions).
func FindFlagInList(list []string, flag net.Flags) bool {
	name, ok := _flagNames[flag]
	if !ok {
		return false
	}

	for _, item := range list {
		if item == name {
			return true
		}
	}

	return false
}
