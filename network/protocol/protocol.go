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
 *
 */

// Package protocol carries the socket family/network enum shared by the
// address resolver and the kernel socket handles: the same vocabulary Go's
// net package uses for its "network" string (net.Dial, net.Listen, ...),
// wrapped in a comparable, marshalable type.
package protocol

import "strings"

// NetworkProtocol enumerates the network strings accepted by the standard
// library's net package, plus NetworkEmpty for the zero value.
type NetworkProtocol uint8

const (
	NetworkEmpty NetworkProtocol = iota
	NetworkUnix
	NetworkTCP
	NetworkTCP4
	NetworkTCP6
	NetworkUDP
	NetworkUDP4
	NetworkUDP6
	NetworkIP
	NetworkIP4
	NetworkIP6
	NetworkUnixGram
)

var _protoName = map[NetworkProtocol]string{
	NetworkUnix:     "unix",
	NetworkTCP:      "tcp",
	NetworkTCP4:     "tcp4",
	NetworkTCP6:     "tcp6",
	NetworkUDP:      "udp",
	NetworkUDP4:     "udp4",
	NetworkUDP6:     "udp6",
	NetworkIP:       "ip",
	NetworkIP4:      "ip4",
	NetworkIP6:      "ip6",
	NetworkUnixGram: "unixgram",
}

var _nameProto = func() map[string]NetworkProtocol {
	m := make(map[string]NetworkProtocol, len(_protoName))
	for p, n := range _protoName {
		m[n] = p
	}
	return m
}()

// String returns the net-package-compatible network string, or "" if p is
// not a known protocol.
func (p NetworkProtocol) String() string {
	return _protoName[p]
}

// Code is an alias of String kept for the teacher's naming convention where
// enums expose both a String() and a Code() accessor.
func (p NetworkProtocol) Code() string {
	return p.String()
}

// Int, Int64, Uint, Uint64 return the protocol's ordinal, or 0 if p is not a
// known protocol (including NetworkEmpty itself).
func (p NetworkProtocol) Int() int {
	if p.String() == "" {
		return 0
	}
	return int(p)
}

func (p NetworkProtocol) Int64() int64 {
	return int64(p.Int())
}

func (p NetworkProtocol) Uint() uint {
	return uint(p.Int())
}

func (p NetworkProtocol) Uint64() uint64 {
	return uint64(p.Int())
}

// Parse is case-insensitive, trims surrounding whitespace and matching
// quote/backtick pairs, and returns NetworkEmpty for anything it doesn't
// recognize.
func Parse(s string) NetworkProtocol {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "`")

	for {
		trimmed := strings.TrimSpace(s)
		if len(trimmed) >= 2 && ((trimmed[0] == '"' && trimmed[len(trimmed)-1] == '"') ||
			(trimmed[0] == '\'' && trimmed[len(trimmed)-1] == '\'')) {
			trimmed = trimmed[1 : len(trimmed)-1]
			if trimmed == s {
				break
			}
			s = trimmed
			continue
		}
		s = trimmed
		break
	}

	if p, ok := _nameProto[strings.ToLower(s)]; ok {
		return p
	}

	return NetworkEmpty
}

// ParseBytes is Parse over a raw byte slice.
func ParseBytes(b []byte) NetworkProtocol {
	return Parse(string(b))
}

// ParseInt64 maps an ordinal back to its NetworkProtocol, returning
// NetworkEmpty if it is out of the known [1, NetworkUnixGram] range.
func ParseInt64(v int64) NetworkProtocol {
	if v <= int64(NetworkEmpty) || v > int64(NetworkUnixGram) {
		return NetworkEmpty
	}
	return NetworkProtocol(v)
}
