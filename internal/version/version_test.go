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

package version

import (
	"bytes"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func noBuildInfo() (*debug.BuildInfo, bool) { return nil, false }

func noGit(...string) string { return "" }

func TestNew(t *testing.T) {
	info := New("go-carchive")

	assert.Equal(t, "go-carchive", info.ToolName)
	assert.Equal(t, "dev", info.Version)
	assert.Equal(t, "unknown", info.CommitSHA)
	assert.Equal(t, "unknown", info.BuildTimestamp)
}

func TestGet_LdflagsWin(t *testing.T) {
	info := New("go-carchive")
	info.Version = "v1.0.0"
	info.CommitSHA = "abc1234"
	info.BuildTimestamp = "2025-01-01T00:00:00Z"
	info.readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "v9.9.9"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffffff"}},
		}, true
	}
	info.git = func(...string) string { return "from-git" }

	v, c, ts := info.Get()
	assert.Equal(t, "v1.0.0", v)
	assert.Equal(t, "abc1234", c)
	assert.Equal(t, "2025-01-01T00:00:00Z", ts)
}

func TestGet_FromBuildInfo(t *testing.T) {
	info := New("go-carchive")
	info.readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{Version: "v0.3.1"},
			Settings: []debug.BuildSetting{
				{Key: "vcs.revision", Value: "0123456789abcdef"},
				{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			},
		}, true
	}
	info.git = noGit

	v, c, ts := info.Get()
	assert.Equal(t, "v0.3.1", v)
	assert.Equal(t, "0123456", c)
	assert.Equal(t, "2026-01-02T03:04:05Z", ts)
}

func TestGet_DevelUsesRevision(t *testing.T) {
	info := New("go-carchive")
	info.readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main:     debug.Module{Version: "(devel)"},
			Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc"}},
		}, true
	}
	info.git = noGit

	v, c, _ := info.Get()
	assert.Equal(t, "abc", v)
	assert.Equal(t, "abc", c)
}

func TestGet_FallsBackToGit(t *testing.T) {
	info := New("go-carchive")
	info.readBuildInfo = noBuildInfo
	info.git = func(args ...string) string {
		switch args[0] {
		case "describe":
			return "v0.1.0-dirty"
		case "rev-parse":
			return "deadbee"
		}
		return ""
	}

	v, c, ts := info.Get()
	assert.Equal(t, "v0.1.0-dirty", v)
	assert.Equal(t, "deadbee", c)
	assert.Equal(t, "unknown", ts)
}

func TestString(t *testing.T) {
	info := New("go-carchive")
	info.Version = "v1.2.3"
	info.CommitSHA = "abc1234"

	assert.Equal(t, "go-carchive version v1.2.3 (abc1234)", info.String())
}

func TestPrint(t *testing.T) {
	info := New("go-carchive")
	info.readBuildInfo = noBuildInfo
	info.git = noGit

	var out bytes.Buffer
	info.Print(&out)

	assert.Contains(t, out.String(), "go-carchive version dev\n")
	assert.Contains(t, out.String(), "  commit:    unknown\n")
	assert.Contains(t, out.String(), "  go:        "+runtime.Version()+"\n")
	assert.Contains(t, out.String(), "  platform:  "+runtime.GOOS+"/"+runtime.GOARCH+"\n")
}
