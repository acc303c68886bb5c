/*
 * MIT License
 *
 * Copyright (c) 2024 Nicolas JUHEL
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

// Package version exposes self-describing build/release metadata for a
// binary built on this framework: package name, description, build hash,
// release tag, author, license and a couple of formatted renderings used by
// CLI --version output and config component registration.
package version

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// License identifies the license a package or one of its vendored
// dependencies is distributed under.
type License uint8

const (
	License_MIT License = iota
	License_GNU_GPL_v3
	License_GNU_Affero_GPL_v3
	License_GNU_Lesser_GPL_v3
	License_Mozilla_PL_v2
	License_Apache_v2
	License_Unlicense
	License_Creative_Common_Zero_v1
	License_Creative_Common_Attribution_v4_int
	License_Creative_Common_Attribution_Share_Alike_v4_int
	License_SIL_Open_Font_1_1
)

func (l License) Name() string {
	switch l {
	case License_MIT:
		return "MIT License"
	case License_GNU_GPL_v3:
		return "GNU GENERAL PUBLIC LICENSE, Version 3"
	case License_GNU_Affero_GPL_v3:
		return "GNU AFFERO GENERAL PUBLIC LICENSE, Version 3"
	case License_GNU_Lesser_GPL_v3:
		return "GNU LESSER GENERAL PUBLIC LICENSE, Version 3"
	case License_Mozilla_PL_v2:
		return "Mozilla Public License, Version 2.0"
	case License_Apache_v2:
		return "Apache License, Version 2.0"
	case License_Unlicense:
		return "The Unlicense"
	case License_Creative_Common_Zero_v1:
		return "Creative Commons CC0 1.0 Universal"
	case License_Creative_Common_Attribution_v4_int:
		return "Creative Commons Attribution 4.0 International"
	case License_Creative_Common_Attribution_Share_Alike_v4_int:
		return "Creative Commons Attribution-ShareAlike 4.0 International"
	case License_SIL_Open_Font_1_1:
		return "SIL Open Font License 1.1"
	default:
		return "Unknown License"
	}
}

// Legal returns a short one-line legal notice for the license. It is not a
// substitute for the full license text returned by Boiler.
func (l License) Legal() string {
	return fmt.Sprintf("Licensed under the %s", l.Name())
}

// Boiler returns the short-form license boilerplate notice. Full upstream
// license texts are not reproduced here; callers needing the exact legal
// text should ship the LICENSE file of the matching project.
func (l License) Boiler() string {
	return fmt.Sprintf("%s\n\nThis software is distributed under the terms of the %s.\nSee the project LICENSE file for the full text.", l.Name(), l.Name())
}

// Version describes the build/release metadata of a package.
type Version interface {
	GetPackage() string
	GetDescription() string
	GetBuild() string
	GetRelease() string
	GetAuthor() string
	GetPrefix() string
	GetDate() string
	GetTime() time.Time
	GetAppId() string
	GetHeader() string
	GetInfo() string
	GetRootPackagePath() string
	GetLicenseName() string
	GetLicenseLegal(extra ...License) string
	GetLicenseBoiler(extra ...License) string
	PrintInfo()
	PrintLicense(extra ...License)
}

type version struct {
	license License
	pkg     string
	desc    string
	date    time.Time
	build   string
	release string
	author  string
	prefix  string
	root    string
}

// NewVersion builds a Version. date accepts RFC3339 or "2006-01-02" layouts;
// an unparsable value falls back to time.Now(). ref is any value located in
// the caller's package (typically an empty struct literal), used through
// reflection to derive the package import path; numSubPackage walks that
// path up by that many segments to compute the "root" package path.
func NewVersion(license License, pkg, desc, date, build, release, author, prefix string, ref interface{}, numSubPackage int) Version {
	v := &version{
		license: license,
		pkg:     pkg,
		desc:    desc,
		build:   build,
		release: release,
		author:  author,
		prefix:  strings.ToUpper(prefix),
	}

	v.date = parseDate(date)
	v.root = rootPackagePath(ref, numSubPackage)

	if v.pkg == "" || strings.EqualFold(v.pkg, "noname") {
		v.pkg = packageName(ref)
	}

	return v
}

func parseDate(date string) time.Time {
	layouts := []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"}
	for _, l := range layouts {
		if t, err := time.Parse(l, date); err == nil {
			return t
		}
	}
	return time.Now()
}

func packageName(ref interface{}) string {
	t := reflect.TypeOf(ref)
	if t == nil {
		return "noname"
	}
	pkgPath := t.PkgPath()
	parts := strings.Split(pkgPath, "/")
	return parts[len(parts)-1]
}

func rootPackagePath(ref interface{}, numSubPackage int) string {
	t := reflect.TypeOf(ref)
	if t == nil {
		return ""
	}

	parts := strings.Split(t.PkgPath(), "/")

	n := numSubPackage
	if n > len(parts) {
		n = len(parts) - 1
	}
	if n < 0 {
		n = 0
	}

	return strings.Join(parts[:len(parts)-n], "/")
}

func (v *version) GetPackage() string     { return v.pkg }
func (v *version) GetDescription() string { return v.desc }
func (v *version) GetBuild() string       { return v.build }
func (v *version) GetRelease() string     { return v.release }

func (v *version) GetAuthor() string {
	return fmt.Sprintf("%s (source: %s)", v.author, v.root)
}

func (v *version) GetPrefix() string { return v.prefix }

func (v *version) GetDate() string {
	return v.date.Format("2006-01-02 15:04:05 MST")
}

func (v *version) GetTime() time.Time { return v.date }

func (v *version) GetAppId() string {
	return fmt.Sprintf("%s-%s-%s (Runtime: %s/%s)", v.pkg, v.release, v.build, runtime.GOOS, runtime.GOARCH)
}

func (v *version) GetRootPackagePath() string { return v.root }

func (v *version) GetHeader() string {
	return fmt.Sprintf("%s - %s\nRelease: %s / Build: %s", v.pkg, v.desc, v.release, v.build)
}

func (v *version) GetInfo() string {
	return fmt.Sprintf("Package: %s\nRelease: %s\nBuild: %s\nDate: %s\nAuthor: %s", v.pkg, v.release, v.build, v.GetDate(), v.GetAuthor())
}

func (v *version) GetLicenseName() string { return v.license.Name() }

func (v *version) GetLicenseLegal(extra ...License) string {
	s := v.license.Legal()
	for _, e := range extra {
		s += "\n" + e.Legal()
	}
	return s
}

func (v *version) GetLicenseBoiler(extra ...License) string {
	s := v.license.Boiler()
	for _, e := range extra {
		s += "\n\n" + e.Boiler()
	}
	return s
}

func (v *version) PrintInfo() {
	println(v.GetHeader())
}

func (v *version) PrintLicense(extra ...License) {
	println(v.GetLicenseBoiler(extra...))
}
