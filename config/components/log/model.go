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
	"context"
	"sync/atomic"

	libatm "github.com/sabouaram/golib/atomic"
	cfgtps "github.com/sabouaram/golib/config/types"
	libctx "github.com/sabouaram/golib/context"
	liblog "github.com/sabouaram/golib/logger"
	logcfg "github.com/sabouaram/golib/logger/config"
	logfld "github.com/sabouaram/golib/logger/fields"
	loglvl "github.com/sabouaram/golib/logger/level"
	libver "github.com/sabouaram/golib/version"
)

type mod struct {
	x libctx.Config[uint8]
	l libatm.Value[liblog.Logger]
	r *atomic.Bool
	v *atomic.Uint32

	key string
	get cfgtps.FuncCptGet
	vpr cfgtps.FuncCptViper
	vrs libver.Version
	dlg liblog.FuncLog

	fsb, fsa cfgtps.FuncCptEvent
	frb, fra cfgtps.FuncCptEvent
}

func (o *mod) Type() string {
	return ComponentType
}

func (o *mod) Init(key string, ctx context.Context, get cfgtps.FuncCptGet, vpr cfgtps.FuncCptViper, vrs libver.Version, log liblog.FuncLog) {
	o.key = key
	o.get = get
	o.vpr = vpr
	o.vrs = vrs
	o.dlg = log

	if o.x == nil {
		o.x = libctx.New[uint8](ctx)
	}
}

func (o *mod) RegisterFuncStart(before, after cfgtps.FuncCptEvent) {
	o.fsb = before
	o.fsa = after
}

func (o *mod) RegisterFuncReload(before, after cfgtps.FuncCptEvent) {
	o.frb = before
	o.fra = after
}

func (o *mod) IsStarted() bool {
	return o.l.Load() != nil
}

func (o *mod) IsRunning() bool {
	return o.r.Load()
}

func (o *mod) runEvent(fct cfgtps.FuncCptEvent) error {
	if fct == nil {
		return nil
	}
	return fct(o)
}

func (o *mod) apply() error {
	cfg, err := o.getConfig()
	if err != nil {
		return err
	}

	l := o.l.Load()
	if l == nil {
		l = liblog.New(o.x)
		l.SetLevel(o.GetLevel())
	}

	if e := l.SetOptions(cfg); e != nil {
		return ErrorConfigInvalid.Error(e)
	}

	o.l.Store(l)
	o.r.Store(true)

	return nil
}

func (o *mod) Start() error {
	if err := o.runEvent(o.fsb); err != nil {
		return err
	} else if err = o.apply(); err != nil {
		return ErrorStartLog.Error(err)
	} else if err = o.runEvent(o.fsa); err != nil {
		return err
	}

	return nil
}

func (o *mod) Reload() error {
	if err := o.runEvent(o.frb); err != nil {
		return err
	} else if err = o.apply(); err != nil {
		return ErrorReloadLog.Error(err)
	} else if err = o.runEvent(o.fra); err != nil {
		return err
	}

	return nil
}

func (o *mod) Stop() {
	o.r.Store(false)
}

func (o *mod) Dependencies() []string {
	return make([]string, 0)
}

func (o *mod) SetDependencies(d []string) error {
	return nil
}

func (o *mod) defaultLogger() liblog.Logger {
	if o.dlg != nil {
		return o.dlg()
	}
	return liblog.New(o.x)
}

func (o *mod) Log() liblog.Logger {
	if l := o.l.Load(); l != nil {
		return l
	}
	return o.defaultLogger()
}

func (o *mod) LogClone() liblog.Logger {
	if l := o.l.Load(); l != nil {
		if n, e := l.Clone(); e == nil {
			return n
		}
	}
	return o.defaultLogger()
}

func (o *mod) SetLevel(lvl loglvl.Level) {
	o.v.Store(lvl.Uint32())

	if l := o.l.Load(); l != nil {
		l.SetLevel(lvl)
	}
}

func (o *mod) GetLevel() loglvl.Level {
	return loglvl.ParseFromUint32(o.v.Load())
}

func (o *mod) SetField(fields logfld.Fields) {
	if l := o.l.Load(); l != nil {
		l.SetFields(fields)
	}
}

func (o *mod) GetField() logfld.Fields {
	if l := o.l.Load(); l != nil {
		return l.GetFields()
	}
	return logfld.New(o.x)
}

func (o *mod) SetOptions(opt *logcfg.Options) error {
	l := o.l.Load()
	if l == nil {
		return ErrorComponentNotInitialized.Error(nil)
	}

	if e := l.SetOptions(opt); e != nil {
		return ErrorConfigInvalid.Error(e)
	}

	return nil
}

func (o *mod) GetOptions() *logcfg.Options {
	if l := o.l.Load(); l != nil {
		return l.GetOptions()
	}
	return nil
}
