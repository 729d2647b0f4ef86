// Copyright 2024 Alexandre Mahdhaoui
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package carchive builds the `go build -buildmode=c-archive` invocation for
// calculate.go and dispatches it.
package carchive

import (
	"fmt"
	"strings"
)

const (
	// DefaultName is the archive file name used when none is given.
	DefaultName = "lib.a"
	// DefaultPath is the output directory used when none is given.
	DefaultPath = "./"

	// SourceFile is the file compiled into the archive. It is resolved
	// relative to the working directory of the go toolchain.
	SourceFile = "calculate.go"
	// BuildMode is passed to `go build -buildmode`.
	BuildMode = "c-archive"

	goBinary = "go"
)

// BuildRequest is the resolved configuration of a single archive build.
type BuildRequest struct {
	// Name is the archive file name (e.g. "libcalculate.a").
	Name string
	// Path is the directory the archive is written to.
	Path string
}

// NewBuildRequest returns a BuildRequest for name and path. Empty values fall
// back to DefaultName and DefaultPath.
func NewBuildRequest(name, path string) BuildRequest {
	if name == "" {
		name = DefaultName
	}
	if path == "" {
		path = DefaultPath
	}
	return BuildRequest{Name: name, Path: path}
}

// OutputPath is "<path>/<name>", concatenated as-is.
func (r BuildRequest) OutputPath() string {
	return r.Path + "/" + r.Name
}

// StatusLine is the line printed before the build is dispatched.
func (r BuildRequest) StatusLine() string {
	return fmt.Sprintf("build info %s  %s", r.Name, r.Path)
}

// Args returns the arguments passed to the go toolchain.
func (r BuildRequest) Args() []string {
	return []string{
		"build",
		"-o", r.OutputPath(),
		"-buildmode=" + BuildMode,
		SourceFile,
	}
}

// CommandString renders the invocation as a single line. It is meant for
// display only: values are not quoted.
func (r BuildRequest) CommandString() string {
	return goBinary + " " + strings.Join(r.Args(), " ")
}
