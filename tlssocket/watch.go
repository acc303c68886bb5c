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

package tlssocket

import (
	"sync"

	"github.com/fsnotify/fsnotify"

	libcrt "github.com/sabouaram/golib/certificates"
)

// certWatcher reloads a certificate+key pair into a TLSConfig whenever
// either file is rewritten on disk (the common pattern for an ACME
// client or a Kubernetes-mounted secret rotating in place).
type certWatcher struct {
	w        *fsnotify.Watcher
	closeOne sync.Once
}

func newCertWatcher(keyFile, crtFile string, cfg libcrt.TLSConfig) (*certWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(keyFile); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Add(crtFile); err != nil {
		_ = w.Close()
		return nil, err
	}

	cw := &certWatcher{w: w}
	go cw.run(keyFile, crtFile, cfg)
	return cw, nil
}

func (c *certWatcher) run(keyFile, crtFile string, cfg libcrt.TLSConfig) {
	for {
		select {
		case ev, ok := <-c.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				_ = cfg.AddCertificatePairFile(keyFile, crtFile)
			}
		case _, ok := <-c.w.Errors:
			if !ok {
				return
			}
		}
	}
}

func (c *certWatcher) Close() {
	c.closeOne.Do(func() {
		_ = c.w.Close()
	})
}
