//go:build unit

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

package carchive_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexandremahdhaoui/go-carchive/internal/carchive"
)

func TestNewBuildRequest_Defaults(t *testing.T) {
	req := carchive.NewBuildRequest("", "")

	assert.Equal(t, "lib.a", req.Name)
	assert.Equal(t, "./", req.Path)
	assert.Equal(t, ".//lib.a", req.OutputPath())
}

func TestNewBuildRequest_KeepsGivenValues(t *testing.T) {
	req := carchive.NewBuildRequest("libcalculate.a", "/out")

	assert.Equal(t, carchive.BuildRequest{Name: "libcalculate.a", Path: "/out"}, req)
}

func TestBuildRequest_Rendering(t *testing.T) {
	tests := []struct {
		name        string
		req         carchive.BuildRequest
		wantStatus  string
		wantCommand string
		wantArgs    []string
	}{
		{
			name:        "defaults",
			req:         carchive.NewBuildRequest("", ""),
			wantStatus:  "build info lib.a  ./",
			wantCommand: "go build -o .//lib.a -buildmode=c-archive calculate.go",
			wantArgs:    []string{"build", "-o", ".//lib.a", "-buildmode=c-archive", "calculate.go"},
		},
		{
			name:        "name and path",
			req:         carchive.BuildRequest{Name: "foo.a", Path: "/tmp"},
			wantStatus:  "build info foo.a  /tmp",
			wantCommand: "go build -o /tmp/foo.a -buildmode=c-archive calculate.go",
			wantArgs:    []string{"build", "-o", "/tmp/foo.a", "-buildmode=c-archive", "calculate.go"},
		},
		{
			name:        "cargo out dir",
			req:         carchive.BuildRequest{Name: "libcalculate.a", Path: "/target/debug/build/calc-1/out"},
			wantStatus:  "build info libcalculate.a  /target/debug/build/calc-1/out",
			wantCommand: "go build -o /target/debug/build/calc-1/out/libcalculate.a -buildmode=c-archive calculate.go",
			wantArgs: []string{
				"build", "-o", "/target/debug/build/calc-1/out/libcalculate.a",
				"-buildmode=c-archive", "calculate.go",
			},
		},
		{
			name:        "spaces stay in a single argument",
			req:         carchive.BuildRequest{Name: "my lib.a", Path: "/tmp/with space"},
			wantStatus:  "build info my lib.a  /tmp/with space",
			wantCommand: "go build -o /tmp/with space/my lib.a -buildmode=c-archive calculate.go",
			wantArgs:    []string{"build", "-o", "/tmp/with space/my lib.a", "-buildmode=c-archive", "calculate.go"},
		},
		{
			name:        "shell metacharacters are not interpreted",
			req:         carchive.BuildRequest{Name: "lib.a;rm -rf x", Path: "$HOME"},
			wantStatus:  "build info lib.a;rm -rf x  $HOME",
			wantCommand: "go build -o $HOME/lib.a;rm -rf x -buildmode=c-archive calculate.go",
			wantArgs:    []string{"build", "-o", "$HOME/lib.a;rm -rf x", "-buildmode=c-archive", "calculate.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.req.StatusLine())
			assert.Equal(t, tt.wantCommand, tt.req.CommandString())
			assert.Equal(t, tt.wantArgs, tt.req.Args())
		})
	}
}

func TestBuildRequest_Deterministic(t *testing.T) {
	req := carchive.BuildRequest{Name: "foo.a", Path: "/tmp"}

	first := req.CommandString()
	for range 3 {
		assert.Equal(t, first, req.CommandString())
	}
}
