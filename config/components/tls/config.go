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

package tls

import (
	"fmt"

	libtls "github.com/sabouaram/golib/certificates"
	spfcbr "github.com/spf13/cobra"
)

// RegisterFlag registers command-line flags for the TLS component.
// TLS settings are expected to come entirely from the configuration file;
// no flags are exposed.
func (o *mod) RegisterFlag(Command *spfcbr.Command) error {
	return nil
}

func (o *mod) getConfig() (*libtls.Config, error) {
	if len(o.key) < 1 {
		return nil, ErrorComponentNotInitialized.Error(nil)
	}

	if o.vpr == nil || o.vpr() == nil {
		return nil, ErrorComponentNotInitialized.Error(nil)
	}

	vpr := o.vpr()
	cfg := &libtls.Config{}

	if !vpr.IsSet(o.key) {
		return nil, ErrorParamInvalid.Error(fmt.Errorf("missing config key '%s'", o.key))
	} else if e := vpr.UnmarshalKey(o.key, cfg); e != nil {
		return nil, ErrorParamInvalid.Error(e)
	}

	return cfg, nil
}
