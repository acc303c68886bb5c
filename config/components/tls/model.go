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
	"context"
	"sync/atomic"

	libatm "github.com/sabouaram/golib/atomic"
	libtls "github.com/sabouaram/golib/certificates"
	cfgtps "github.com/sabouaram/golib/config/types"
	libctx "github.com/sabouaram/golib/context"
	liblog "github.com/sabouaram/golib/logger"
	libver "github.com/sabouaram/golib/version"
)

type mod struct {
	x libctx.Config[uint8]
	t libatm.Value[libtls.TLSConfig]
	c libatm.Value[func() *libtls.Config]
	f libtls.FctRootCACert
	r *atomic.Bool

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
	return o.t.Load() != nil
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

	if err = cfg.Validate(); err != nil {
		return ErrorConfigInvalid.Error(err)
	}

	if o.f != nil {
		if ca := o.f(); ca != nil {
			cfg.RootCA = append(cfg.RootCA, ca)
		}
	}

	t := cfg.New()

	o.t.Store(t)
	o.c.Store(func() *libtls.Config { return t.Config() })
	o.r.Store(true)

	return nil
}

func (o *mod) Start() error {
	if err := o.runEvent(o.fsb); err != nil {
		return err
	} else if err = o.apply(); err != nil {
		return ErrorComponentStart.Error(err)
	} else if err = o.runEvent(o.fsa); err != nil {
		return err
	}

	return nil
}

func (o *mod) Reload() error {
	if err := o.runEvent(o.frb); err != nil {
		return err
	} else if err = o.apply(); err != nil {
		return ErrorComponentReload.Error(err)
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

func (o *mod) Config() *libtls.Config {
	if f := o.c.Load(); f != nil {
		return f()
	}
	return nil
}

func (o *mod) GetTLS() libtls.TLSConfig {
	return o.t.Load()
}

func (o *mod) SetTLS(tls libtls.TLSConfig) {
	o.t.Store(tls)
	if tls != nil {
		o.c.Store(func() *libtls.Config { return tls.Config() })
	}
}
