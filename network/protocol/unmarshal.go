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

package protocol

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// stripQuotes trims surrounding whitespace, then a single-quote pair, then a
// double-quote pair, in that order. Unlike Parse, it does not loop: a value
// quoted with both kinds ("'tcp'") only has its outer double quotes removed
// by the second pass, leaving the inner single quotes in place so the
// resulting lookup misses. That is intentional - it mirrors the one-pass
// bytes.Trim behavior the rest of this package's unmarshalers were written
// against.
func stripQuotes(data []byte) string {
	s := bytes.TrimSpace(data)
	s = bytes.Trim(s, "'")
	s = bytes.Trim(s, `"`)
	return string(s)
}

func lookup(s string) NetworkProtocol {
	if p, ok := _nameProto[strings.ToLower(s)]; ok {
		return p
	}
	return NetworkEmpty
}

// UnmarshalJSON never fails: an unrecognized or malformed value sets the
// receiver to NetworkEmpty rather than returning an error.
func (p *NetworkProtocol) UnmarshalJSON(data []byte) error {
	*p = lookup(stripQuotes(data))
	return nil
}

// UnmarshalYAML never fails, mirroring UnmarshalJSON.
func (p *NetworkProtocol) UnmarshalYAML(value *yaml.Node) error {
	*p = lookup(stripQuotes([]byte(value.Value)))
	return nil
}

// UnmarshalTOML accepts the []byte or string shapes github.com/pelletier/go-toml
// hands unmarshalers; any other type is rejected.
func (p *NetworkProtocol) UnmarshalTOML(i interface{}) error {
	switch v := i.(type) {
	case []byte:
		*p = lookup(stripQuotes(v))
		return nil
	case string:
		*p = lookup(stripQuotes([]byte(v)))
		return nil
	default:
		return fmt.Errorf("network protocol: value not in valid format")
	}
}

// UnmarshalText never fails, mirroring UnmarshalJSON.
func (p *NetworkProtocol) UnmarshalText(data []byte) error {
	*p = lookup(stripQuotes(data))
	return nil
}

// UnmarshalCBOR never fails, mirroring UnmarshalJSON. It reads data as the
// bare protocol string MarshalCBOR produces, not a decoded CBOR text item.
func (p *NetworkProtocol) UnmarshalCBOR(data []byte) error {
	*p = lookup(stripQuotes(data))
	return nil
}
