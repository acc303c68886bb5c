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
	"fmt"
	"reflect"
)

var _protocolType = reflect.TypeOf(NetworkProtocol(0))

func protocolFromOrdinal(v int64) (interface{}, error) {
	p := ParseInt64(v)
	if p == NetworkEmpty {
		return nil, fmt.Errorf("network protocol: invalid value %d", v)
	}
	return p, nil
}

// ViperDecoderHook returns a mapstructure.DecodeHookFuncType usable with
// viper.Unmarshal (viper.DecodeHook(...)) to decode config values into a
// NetworkProtocol field. String sources are parsed with Parse (never
// erroring, falling back to NetworkEmpty); integer sources are looked up by
// ordinal and rejected if out of the known [1, NetworkUnixGram] range. Any
// other source kind, or a target type other than NetworkProtocol, passes the
// value through unchanged.
func ViperDecoderHook() func(reflect.Type, reflect.Type, interface{}) (interface{}, error) {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != _protocolType {
			return data, nil
		}

		switch from.Kind() {
		case reflect.String:
			if s, ok := data.(string); ok {
				return Parse(s), nil
			}
			return data, nil

		case reflect.Int:
			if v, ok := data.(int); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Int8:
			if v, ok := data.(int8); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Int16:
			if v, ok := data.(int16); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Int32:
			if v, ok := data.(int32); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Int64:
			if v, ok := data.(int64); ok {
				return protocolFromOrdinal(v)
			}
			return data, nil

		case reflect.Uint:
			if v, ok := data.(uint); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Uint8:
			if v, ok := data.(uint8); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Uint16:
			if v, ok := data.(uint16); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Uint32:
			if v, ok := data.(uint32); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		case reflect.Uint64:
			if v, ok := data.(uint64); ok {
				return protocolFromOrdinal(int64(v))
			}
			return data, nil

		default:
			return data, nil
		}
	}
}
