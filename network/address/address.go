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

// Package address implements the IP address value type and name resolver
// (component C1 of the I/O framework): a fixed-size, trivially-copyable
// endpoint (IPv4 or IPv6 plus port) and a deadline-bounded resolve() built
// on net.Resolver, with a process-wide cache for repeated lookups.
package address

import (
	"bytes"
	"fmt"
	"net"
	"strconv"

	netprt "github.com/sabouaram/golib/network/protocol"
)

// Family distinguishes the two address shapes a Address can hold, matching
// spec's family() observer (v4/v6/unknown).
type Family uint8

const (
	FamilyUnknown Family = iota
	FamilyV4
	FamilyV6
)

func (f Family) String() string {
	switch f {
	case FamilyV4:
		return "v4"
	case FamilyV6:
		return "v6"
	default:
		return "unknown"
	}
}

// Address is a value type uniformly representing an IPv4 or IPv6 endpoint
// plus a port. It is comparable and carries no heap-allocated state, so the
// zero value (FamilyUnknown) compares equal to itself per spec's invariant.
type Address struct {
	family Family
	port   uint16
	bytes  [16]byte
	flow   uint32
	scope  uint32
}

// MakeV4 builds an IPv4 Address from its 4 network-order bytes and a port.
func MakeV4(b [4]byte, port uint16) Address {
	var a Address
	a.family = FamilyV4
	a.port = port
	copy(a.bytes[:4], b[:])
	return a
}

// MakeV6 builds an IPv6 Address from its 16 network-order bytes, a port, and
// an optional scope id (zero if not link-local).
func MakeV6(b [16]byte, port uint16, scopeID uint32) Address {
	var a Address
	a.family = FamilyV6
	a.port = port
	a.scope = scopeID
	copy(a.bytes[:], b[:])
	return a
}

// ParseAddress accepts dotted-quad ("1.2.3.4:80") and bracketed
// ("[::1]:80") forms; the bracketed form is required for IPv6 so the port
// can be disambiguated from the address's own colons.
func ParseAddress(s string) (Address, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return Address{}, ErrorInvalidArgument.Errorf("%s: %s", s, err.Error())
	}

	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Address{}, ErrorInvalidArgument.Errorf("%s: invalid port %q", s, portStr)
	}

	ip := net.ParseIP(host)
	if ip == nil {
		return Address{}, ErrorInvalidArgument.Errorf("%s: invalid ip %q", s, host)
	}

	return fromNetIP(ip, uint16(port), 0), nil
}

func fromNetIP(ip net.IP, port uint16, scopeID uint32) Address {
	if v4 := ip.To4(); v4 != nil {
		var b [4]byte
		copy(b[:], v4)
		return MakeV4(b, port)
	}

	var b [16]byte
	copy(b[:], ip.To16())
	return MakeV6(b, port, scopeID)
}

// Family reports whether a is an IPv4, IPv6, or the default-constructed
// unknown address.
func (a Address) Family() Family {
	return a.family
}

// Port returns the host-observable port (wire form is big-endian, but this
// accessor returns it as a plain host integer like net.TCPAddr.Port).
func (a Address) Port() uint16 {
	return a.port
}

// ScopeID returns the IPv6 zone/scope id, or 0 for IPv4 and scopeless IPv6.
func (a Address) ScopeID() uint32 {
	return a.scope
}

// ToBytes returns the network-order (big-endian) address bytes: 4 bytes for
// FamilyV4, 16 for FamilyV6, nil for FamilyUnknown.
func (a Address) ToBytes() []byte {
	switch a.family {
	case FamilyV4:
		out := make([]byte, 4)
		copy(out, a.bytes[:4])
		return out
	case FamilyV6:
		out := make([]byte, 16)
		copy(out, a.bytes[:])
		return out
	default:
		return nil
	}
}

// IsV4 and IsV6 are mutually exclusive whenever Family is known.
func (a Address) IsV4() bool { return a.family == FamilyV4 }
func (a Address) IsV6() bool { return a.family == FamilyV6 }

// IsDefault reports whether a is the zero value (FamilyUnknown, no bytes).
func (a Address) IsDefault() bool {
	return a.family == FamilyUnknown && a.port == 0
}

// IsAny reports whether a is the wildcard address (0.0.0.0 or ::).
func (a Address) IsAny() bool {
	switch a.family {
	case FamilyV4, FamilyV6:
		return a.toNetIP().IsUnspecified()
	default:
		return false
	}
}

// IsLoopback reports whether a is a loopback address (127.0.0.0/8 or ::1).
func (a Address) IsLoopback() bool {
	if a.family == FamilyUnknown {
		return false
	}
	return a.toNetIP().IsLoopback()
}

// IsMulticast reports whether a is a multicast address.
func (a Address) IsMulticast() bool {
	if a.family == FamilyUnknown {
		return false
	}
	return a.toNetIP().IsMulticast()
}

func (a Address) toNetIP() net.IP {
	switch a.family {
	case FamilyV4:
		return net.IP(a.bytes[:4])
	case FamilyV6:
		return net.IP(a.bytes[:])
	default:
		return nil
	}
}

// Compare gives Address a total ordering: by family, then address bytes,
// then port, then scope. Two addresses compare equal iff every field
// matches (full byte comparison, per spec).
func (a Address) Compare(o Address) int {
	if a.family != o.family {
		if a.family < o.family {
			return -1
		}
		return 1
	}

	if c := bytes.Compare(a.bytes[:], o.bytes[:]); c != 0 {
		return c
	}

	if a.port != o.port {
		if a.port < o.port {
			return -1
		}
		return 1
	}

	if a.scope != o.scope {
		if a.scope < o.scope {
			return -1
		}
		return 1
	}

	return 0
}

// Equal reports full equality, equivalent to Compare(o) == 0.
func (a Address) Equal(o Address) bool {
	return a.Compare(o) == 0
}

// String renders a as host:port, bracketing IPv6 hosts.
func (a Address) String() string {
	switch a.family {
	case FamilyV4:
		return net.JoinHostPort(a.toNetIP().String(), strconv.Itoa(int(a.port)))
	case FamilyV6:
		host := a.toNetIP().String()
		if a.scope != 0 {
			host = fmt.Sprintf("%s%%%d", host, a.scope)
		}
		return net.JoinHostPort(host, strconv.Itoa(int(a.port)))
	default:
		return ""
	}
}

// networkFor maps a Family to the net-package network string used by
// net.Resolver/net.Dial, defaulting to the protocol-agnostic "ip".
func networkFor(f Family, proto netprt.NetworkProtocol) string {
	switch {
	case proto != netprt.NetworkEmpty:
		return proto.String()
	case f == FamilyV4:
		return "ip4"
	case f == FamilyV6:
		return "ip6"
	default:
		return "ip"
	}
}
