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

package config

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	cfgtps "github.com/sabouaram/golib/config/types"
	libctx "github.com/sabouaram/golib/context"
	liberr "github.com/sabouaram/golib/errors"
	liblog "github.com/sabouaram/golib/logger"
	libver "github.com/sabouaram/golib/version"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

const jsonIndent = "  "

type model struct {
	mu sync.Mutex

	ctx context.Context
	cpt libctx.Config[string]

	vrs libver.Version
	vpr func() *spfvpr.Viper
	log liblog.FuncLog

	fctStartBefore  FuncEvent
	fctStartAfter   FuncEvent
	fctReloadBefore FuncEvent
	fctReloadAfter  FuncEvent
	fctStopBefore   func()
	fctStopAfter    func()
}

func newModel(ctx context.Context, vrs libver.Version) *model {
	if ctx == nil {
		ctx = context.Background()
	}

	return &model{
		ctx: ctx,
		cpt: libctx.New[string](ctx),
		vrs: vrs,
	}
}

func (m *model) Context() context.Context {
	return m.ctx
}

func (m *model) RegisterFuncViper(fct func() *spfvpr.Viper) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vpr = fct
}

func (m *model) RegisterVersion(vrs libver.Version) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vrs = vrs
}

func (m *model) RegisterDefaultLogger(fct liblog.FuncLog) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log = fct
}

func (m *model) RegisterFuncStartBefore(fct FuncEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fctStartBefore = fct
}

func (m *model) RegisterFuncStartAfter(fct FuncEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fctStartAfter = fct
}

func (m *model) RegisterFuncReloadBefore(fct FuncEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fctReloadBefore = fct
}

func (m *model) RegisterFuncReloadAfter(fct FuncEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fctReloadAfter = fct
}

func (m *model) RegisterFuncStopBefore(fct func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fctStopBefore = fct
}

func (m *model) RegisterFuncStopAfter(fct func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fctStopAfter = fct
}

func (m *model) getViper() func() *spfvpr.Viper {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vpr
}

func (m *model) getVersion() libver.Version {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.vrs
}

func (m *model) getLogger() liblog.FuncLog {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.log
}

func (m *model) ComponentHas(key string) bool {
	_, ok := m.cpt.Load(key)
	return ok
}

func (m *model) ComponentType(key string) string {
	if cpt := m.ComponentGet(key); cpt == nil {
		return ""
	} else {
		return cpt.Type()
	}
}

func (m *model) ComponentGet(key string) cfgtps.Component {
	if i, ok := m.cpt.Load(key); !ok || i == nil {
		return nil
	} else if c, k := i.(cfgtps.Component); !k {
		return nil
	} else {
		return c
	}
}

func (m *model) ComponentDel(key string) {
	m.cpt.Delete(key)
}

func (m *model) ComponentSet(key string, cpt cfgtps.Component) {
	if cpt == nil {
		return
	}

	cpt.Init(key, m.ctx, m.ComponentGet, m.getViper(), m.getVersion(), m.getLogger())
	m.cpt.Store(key, cpt)
}

func (m *model) ComponentList() map[string]cfgtps.Component {
	res := make(map[string]cfgtps.Component)

	m.cpt.Walk(func(key string, val interface{}) bool {
		if c, ok := val.(cfgtps.Component); ok {
			res[key] = c
		}
		return true
	})

	return res
}

func (m *model) ComponentKeys() []string {
	res := make([]string, 0)

	m.cpt.Walk(func(key string, _ interface{}) bool {
		res = append(res, key)
		return true
	})

	return res
}

func (m *model) ComponentWalk(fct cfgtps.ComponentListWalkFunc) {
	m.cpt.Walk(func(key string, val interface{}) bool {
		c, ok := val.(cfgtps.Component)
		if !ok {
			return true
		}
		return fct(key, c)
	})
}

func (m *model) ComponentIsStarted() bool {
	started := true

	m.ComponentWalk(func(_ string, cpt cfgtps.Component) bool {
		if !cpt.IsStarted() {
			started = false
			return false
		}
		return true
	})

	return started
}

func (m *model) ComponentIsRunning(atLeast bool) bool {
	result := !atLeast

	m.ComponentWalk(func(_ string, cpt cfgtps.Component) bool {
		running := cpt.IsRunning()

		if atLeast && running {
			result = true
			return false
		}
		if !atLeast && !running {
			result = false
			return false
		}
		return true
	})

	return result
}

func (m *model) DefaultConfig() io.Reader {
	buf := bytes.NewBuffer(nil)
	buf.WriteString("{\n")

	n := buf.Len()

	for _, key := range m.ComponentKeys() {
		cpt := m.ComponentGet(key)
		if cpt == nil {
			continue
		}

		p := cpt.DefaultConfig(jsonIndent)
		if len(p) < 1 {
			continue
		}

		if buf.Len() > n {
			buf.WriteString(",\n")
		}

		buf.WriteString(fmt.Sprintf("%s%q: ", jsonIndent, key))
		buf.Write(p)
	}

	buf.WriteString("\n}")

	res := bytes.NewBuffer(nil)
	if err := json.Indent(res, buf.Bytes(), "", jsonIndent); err != nil {
		return buf
	}

	return res
}

func (m *model) RegisterFlag(cmd *spfcbr.Command) error {
	err := ErrorComponentFlagError.Error(nil)

	for _, key := range m.ComponentKeys() {
		cpt := m.ComponentGet(key)
		if cpt == nil {
			continue
		}

		if e := cpt.RegisterFlag(cmd); e != nil {
			err.Add(e)
		}
	}

	if err.HasParent() {
		return err
	}

	return nil
}

func (m *model) startOne(seen map[string]bool, key string) liberr.Error {
	if seen[key] {
		return nil
	}

	cpt := m.ComponentGet(key)
	if cpt == nil {
		return ErrorComponentNotFound.Error(fmt.Errorf("component '%s'", key))
	}

	if cpt.IsStarted() {
		seen[key] = true
		return nil
	}

	for _, dep := range cpt.Dependencies() {
		if err := m.startOne(seen, dep); err != nil {
			return err
		}
	}

	if err := cpt.Start(); err != nil {
		return ErrorComponentStart.Error(err)
	}

	seen[key] = true
	return nil
}

func (m *model) Start() liberr.Error {
	if m.fctStartBefore != nil {
		if err := m.fctStartBefore(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for _, key := range m.ComponentKeys() {
		if err := m.startOne(seen, key); err != nil {
			return err
		}
	}

	if m.fctStartAfter != nil {
		if err := m.fctStartAfter(); err != nil {
			return err
		}
	}

	return nil
}

func (m *model) reloadOne(seen map[string]bool, key string) liberr.Error {
	if seen[key] {
		return nil
	}

	cpt := m.ComponentGet(key)
	if cpt == nil {
		return ErrorComponentNotFound.Error(fmt.Errorf("component '%s'", key))
	}

	for _, dep := range cpt.Dependencies() {
		if err := m.reloadOne(seen, dep); err != nil {
			return err
		}
	}

	if err := cpt.Reload(); err != nil {
		return ErrorComponentReload.Error(err)
	}

	seen[key] = true
	return nil
}

func (m *model) Reload() liberr.Error {
	if m.fctReloadBefore != nil {
		if err := m.fctReloadBefore(); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for _, key := range m.ComponentKeys() {
		if err := m.reloadOne(seen, key); err != nil {
			return err
		}
	}

	if m.fctReloadAfter != nil {
		if err := m.fctReloadAfter(); err != nil {
			return err
		}
	}

	return nil
}

func (m *model) Stop() {
	if m.fctStopBefore != nil {
		m.fctStopBefore()
	}

	keys := m.ComponentKeys()
	for i := len(keys) - 1; i >= 0; i-- {
		if cpt := m.ComponentGet(keys[i]); cpt != nil {
			cpt.Stop()
		}
	}

	if m.fctStopAfter != nil {
		m.fctStopAfter()
	}
}

func (m *model) Shutdown(code int) {
	m.Stop()

	// give goroutines started by components a chance to observe ctx.Done
	// before the process exits.
	time.Sleep(10 * time.Millisecond)
	os.Exit(code)
}
