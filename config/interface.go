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

// Package config provides the component registry that wires the framework's
// byte-I/O, multiplexer, socket and TLS components (and any application
// component built the same way) into one lifecycle: registration, start,
// reload and graceful shutdown, driven by a shared spf13/viper instance.
package config

import (
	"context"
	"io"

	cfgtps "github.com/sabouaram/golib/config/types"
	liberr "github.com/sabouaram/golib/errors"
	liblog "github.com/sabouaram/golib/logger"
	libver "github.com/sabouaram/golib/version"
	spfcbr "github.com/spf13/cobra"
	spfvpr "github.com/spf13/viper"
)

type FuncEvent func() liberr.Error

// Config is the component registry and lifecycle coordinator.
type Config interface {
	// Context returns the shared application context.
	Context() context.Context

	// RegisterFuncViper registers the function used to retrieve the shared
	// spf13/viper instance. Components call it through their Init to load
	// their own configuration section.
	RegisterFuncViper(fct func() *spfvpr.Viper)

	// RegisterVersion attaches the application's version/build metadata.
	RegisterVersion(vrs libver.Version)

	// RegisterDefaultLogger registers the fallback logger handed to
	// components that do not carry their own.
	RegisterDefaultLogger(fct liblog.FuncLog)

	RegisterFuncStartBefore(fct FuncEvent)
	RegisterFuncStartAfter(fct FuncEvent)
	RegisterFuncReloadBefore(fct FuncEvent)
	RegisterFuncReloadAfter(fct FuncEvent)
	RegisterFuncStopBefore(fct func())
	RegisterFuncStopAfter(fct func())

	// Start triggers Start on every registered component, in dependency order.
	Start() liberr.Error

	// Reload triggers Reload on every registered component, in dependency order.
	Reload() liberr.Error

	// Stop triggers Stop on every registered component, in reverse order.
	Stop()

	// Shutdown calls Stop, cancels the shared context and exits the process.
	Shutdown(code int)

	// ComponentHas returns true if the key is a registered component.
	ComponentHas(key string) bool

	// ComponentType returns the type of the registered component, or "".
	ComponentType(key string) string

	// ComponentGet returns the component registered under key, or nil.
	ComponentGet(key string) cfgtps.Component

	// ComponentDel removes the component registered under key.
	ComponentDel(key string)

	// ComponentSet registers a component under key and runs its Init.
	ComponentSet(key string, cpt cfgtps.Component)

	// ComponentList returns every registered component, keyed by its key.
	ComponentList() map[string]cfgtps.Component

	// ComponentKeys returns the keys of every registered component.
	ComponentKeys() []string

	// ComponentWalk runs fct over every registered component until it
	// returns false or every component has been visited.
	ComponentWalk(fct cfgtps.ComponentListWalkFunc)

	// ComponentIsStarted returns true if every registered component is started.
	ComponentIsStarted() bool

	// ComponentIsRunning returns true if components satisfy atLeast semantics
	// (any running when atLeast is true, all running otherwise).
	ComponentIsRunning(atLeast bool) bool

	// DefaultConfig renders the aggregated default JSON configuration of
	// every registered component.
	DefaultConfig() io.Reader

	// RegisterFlag registers command-line flags for every component against
	// the given cobra command, binding them into the shared viper instance.
	RegisterFlag(cmd *spfcbr.Command) error
}

// New creates a Config bound to ctx and described by vrs.
func New(ctx context.Context, vrs libver.Version) Config {
	return newModel(ctx, vrs)
}
