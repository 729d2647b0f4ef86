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
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"runtime/debug"
	"strings"
)

const (
	devVersion = "dev"
	unknown    = "unknown"
)

// Info holds version information for the tool.
type Info struct {
	ToolName string
	// Version, CommitSHA and BuildTimestamp are set via ldflags.
	Version        string
	CommitSHA      string
	BuildTimestamp string

	// readBuildInfo and git are replaced in tests.
	readBuildInfo func() (*debug.BuildInfo, bool)
	git           func(args ...string) string
}

// New creates an Info with the "dev"/"unknown" placeholders.
func New(toolName string) *Info {
	return &Info{
		ToolName:       toolName,
		Version:        devVersion,
		CommitSHA:      unknown,
		BuildTimestamp: unknown,
		readBuildInfo:  debug.ReadBuildInfo,
		git:            runGit,
	}
}

// Get resolves the version, commit and timestamp.
// Values set via ldflags win. Placeholders are filled from the module build
// info first (go install), then from VCS settings, then from git itself.
func (i *Info) Get() (version, commit, timestamp string) {
	version, commit, timestamp = i.Version, i.CommitSHA, i.BuildTimestamp

	if i.readBuildInfo != nil {
		if info, ok := i.readBuildInfo(); ok {
			if version == devVersion && info.Main.Version != "" && info.Main.Version != "(devel)" {
				version = info.Main.Version
			}

			for _, setting := range info.Settings {
				switch setting.Key {
				case "vcs.revision":
					if commit == unknown {
						commit = shortSHA(setting.Value)
					}
					if version == devVersion {
						version = shortSHA(setting.Value)
					}
				case "vcs.time":
					if timestamp == unknown {
						timestamp = setting.Value
					}
				}
			}
		}
	}

	if i.git == nil {
		return version, commit, timestamp
	}

	if version == devVersion {
		if v := i.git("describe", "--tags", "--always", "--dirty"); v != "" {
			version = v
		}
	}

	if commit == unknown {
		if c := i.git("rev-parse", "--short", "HEAD"); c != "" {
			commit = c
		}
	}

	return version, commit, timestamp
}

// String returns "<tool> version <version> (<commit>)".
func (i *Info) String() string {
	version, commit, _ := i.Get()
	return fmt.Sprintf("%s version %s (%s)", i.ToolName, version, commit)
}

// Print writes the full version report to w.
func (i *Info) Print(w io.Writer) {
	version, commit, timestamp := i.Get()
	_, _ = fmt.Fprintf(w, "%s version %s\n", i.ToolName, version)
	_, _ = fmt.Fprintf(w, "  commit:    %s\n", commit)
	_, _ = fmt.Fprintf(w, "  built:     %s\n", timestamp)
	_, _ = fmt.Fprintf(w, "  go:        %s\n", runtime.Version())
	_, _ = fmt.Fprintf(w, "  platform:  %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func shortSHA(sha string) string {
	if len(sha) >= 7 {
		return sha[:7]
	}
	return sha
}

func runGit(args ...string) string {
	output, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(output))
}
