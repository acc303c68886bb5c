/*
 * MIT License
 *
 * Copyright (c) 2022 Nicolas JUHEL
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
 */

//go:build unix

package socket

import (
	"golang.org/x/sys/unix"

	libadr "github.com/sabouaram/golib/network/address"
)

// toSockaddr converts an Address into the unix.Sockaddr the raw
// syscalls expect, dispatching on address family.
func toSockaddr(a libadr.Address) (unix.Sockaddr, error) {
	b := a.ToBytes()

	if a.IsV4() {
		sa := &unix.SockaddrInet4{Port: int(a.Port())}
		copy(sa.Addr[:], b[12:16])
		return sa, nil
	}

	sa := &unix.SockaddrInet6{Port: int(a.Port()), ZoneId: a.ScopeID()}
	copy(sa.Addr[:], b)
	return sa, nil
}

// fromSockaddr converts a unix.Sockaddr obtained from Getsockname,
// Getpeername, or Accept4 back into an Address.
func fromSockaddr(sa unix.Sockaddr) libadr.Address {
	switch v := sa.(type) {
	case *unix.SockaddrInet4:
		var b [4]byte
		copy(b[:], v.Addr[:])
		return libadr.MakeV4(b, uint16(v.Port))
	case *unix.SockaddrInet6:
		var b [16]byte
		copy(b[:], v.Addr[:])
		return libadr.MakeV6(b, uint16(v.Port), v.ZoneId)
	default:
		return libadr.Address{}
	}
}

func domainFor(f libadr.Family) int {
	if f == libadr.FamilyV6 {
		return unix.AF_INET6
	}
	return unix.AF_INET
}
