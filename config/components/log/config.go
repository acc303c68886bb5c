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

package log

import (
	"fmt"

	logcfg "github.com/sabouaram/golib/logger/config"
	spfcbr "github.com/spf13/cobra"
)

func (o *mod) RegisterFlag(Command *spfcbr.Command) error {
	if len(o.key) < 1 {
		return ErrorComponentNotInitialized.Error(nil)
	}

	if o.vpr == nil || o.vpr() == nil {
		return ErrorComponentNotInitialized.Error(nil)
	}

	vpr := o.vpr()
	key := o.key

	Command.PersistentFlags().Bool(key+".disableStandard", false, "allow disabling to write log to standard output stdout/stderr.")
	Command.PersistentFlags().Bool(key+".disableStack", false, "allow to disable the goroutine id before each message")
	Command.PersistentFlags().Bool(key+".disableTimestamp", false, "allow to disable the timestamp before each message")
	Command.PersistentFlags().Bool(key+".enableTrace", true, "allow to add the origin caller/file/line of each message")
	Command.PersistentFlags().String(key+".traceFilter", "", "define the path to clean for trace")
	Command.PersistentFlags().Bool(key+".disableColor", false, "define if color could be use or not in messages format. If the running process is not a tty, no color will be used.")

	for _, f := range []string{"disableStandard", "disableStack", "disableTimestamp", "enableTrace", "traceFilter", "disableColor"} {
		if err := vpr.BindPFlag(key+"."+f, Command.PersistentFlags().Lookup(key+"."+f)); err != nil {
			return err
		}
	}

	return nil
}

func (o *mod) getConfig() (*logcfg.Options, error) {
	if len(o.key) < 1 {
		return nil, ErrorComponentNotInitialized.Error(nil)
	}

	if o.vpr == nil || o.vpr() == nil {
		return nil, ErrorComponentNotInitialized.Error(nil)
	}

	vpr := o.vpr()
	cfg := &logcfg.Options{}

	if !vpr.IsSet(o.key) {
		return nil, ErrorParamInvalid.Error(fmt.Errorf("missing config key '%s'", o.key))
	} else if e := vpr.UnmarshalKey(o.key, cfg); e != nil {
		return nil, ErrorParamInvalid.Error(e)
	}

	if cfg.Stdout == nil {
		cfg.Stdout = &logcfg.OptionsStd{}
	}

	if vpr.GetBool(o.key + ".disableStandard") {
		cfg.Stdout.DisableStandard = true
	}
	if vpr.GetBool(o.key + ".disableStack") {
		cfg.Stdout.DisableStack = true
	}
	if vpr.GetBool(o.key + ".disableTimestamp") {
		cfg.Stdout.DisableTimestamp = true
	}
	if vpr.GetBool(o.key + ".enableTrace") {
		cfg.Stdout.EnableTrace = true
	}
	if val := vpr.GetString(o.key + ".traceFilter"); val != "" {
		cfg.TraceFilter = val
	}
	if vpr.GetBool(o.key + ".disableColor") {
		cfg.Stdout.DisableColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, ErrorConfigInvalid.Error(err)
	}

	return cfg, nil
}
