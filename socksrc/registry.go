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
 */

package socksrc

import (
	"sort"
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/hashicorp/go-version"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Feature bits a registered source may advertise.
const (
	FeatureRegisteredBuffers = iota
	FeatureALPN
	FeatureSessionResumption
	FeatureClientCertificates
	FeatureOCSPStapling
)

// Source is one entry of the registry: a name, a semantic version
// (parsed via hashicorp/go-version so "1.2.0-rc1"-style strings compare
// correctly), and a feature-bit set advertising what it supports.
type Source struct {
	Name     string
	Version  *version.Version
	Features *bitset.BitSet
}

// HasFeature reports whether the source advertises the given bit.
func (s Source) HasFeature(bit uint) bool {
	if s.Features == nil {
		return false
	}
	return s.Features.Test(bit)
}

var (
	registryMu    sync.RWMutex
	registry      = map[string]Source{}
	defaultSource string
	registrations = registrationsCounter()
)

func registrationsCounter() *prometheus.CounterVec {
	return promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "golib",
		Subsystem: "socksrc",
		Name:      "registrations_total",
		Help:      "Count of RegisterSource/UnregisterSource calls, labelled by outcome.",
	}, []string{"outcome"})
}

// NewFeatureSet builds a bitset.BitSet with the given feature bits set.
func NewFeatureSet(bits ...uint) *bitset.BitSet {
	b := bitset.New(uint(FeatureOCSPStapling) + 1)
	for _, bit := range bits {
		b.Set(bit)
	}
	return b
}

// RegisterSource adds a source to the process-wide registry under
// name, rejecting a duplicate name. versionStr is parsed with
// hashicorp/go-version; an unparsable string is rejected rather than
// silently treated as version zero. The first source registered also
// becomes the default.
func RegisterSource(name string, versionStr string, features *bitset.BitSet) error {
	v, err := version.NewVersion(versionStr)
	if err != nil {
		registrations.WithLabelValues("invalid_version").Inc()
		return ErrorInvalidVersion.Errorf("%s: %s", versionStr, err.Error())
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; exists {
		registrations.WithLabelValues("duplicate").Inc()
		return ErrorSourceAlreadyRegistered.Errorf("%s", name)
	}

	registry[name] = Source{Name: name, Version: v, Features: features}
	if defaultSource == "" {
		defaultSource = name
	}

	registrations.WithLabelValues("registered").Inc()
	return nil
}

// UnregisterSource removes a source from the registry. If it was the
// default, the registry falls back to the lexicographically first
// remaining source, or to no default if the registry is now empty.
func UnregisterSource(name string) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; !exists {
		registrations.WithLabelValues("not_found").Inc()
		return ErrorSourceNotFound.Errorf("%s", name)
	}

	delete(registry, name)
	registrations.WithLabelValues("unregistered").Inc()

	if defaultSource == name {
		defaultSource = ""
		names := make([]string, 0, len(registry))
		for n := range registry {
			names = append(names, n)
		}
		sort.Strings(names)
		if len(names) > 0 {
			defaultSource = names[0]
		}
	}

	return nil
}

// Sources returns every registered source, ordered by name.
func Sources() []Source {
	registryMu.RLock()
	defer registryMu.RUnlock()

	out := make([]Source, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DefaultSource returns the registry's default source.
func DefaultSource() (Source, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if defaultSource == "" {
		return Source{}, ErrorNoDefaultSource.Error()
	}
	return registry[defaultSource], nil
}

// SetDefaultSource changes the registry's default to an already
// registered source.
func SetDefaultSource(name string) error {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := registry[name]; !exists {
		return ErrorSourceNotFound.Errorf("%s", name)
	}
	defaultSource = name
	return nil
}
