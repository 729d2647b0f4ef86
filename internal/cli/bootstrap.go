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

package cli

import (
	"context"
	"os"

	"github.com/alexandremahdhaoui/go-carchive/internal/version"
)

// RunFunc runs the command with the arguments that follow the program name
// and returns the process exit code. versionInfo is the resolved version.
type RunFunc func(ctx context.Context, args []string, versionInfo *version.Info) int

// Config holds the configuration for Bootstrap.
type Config struct {
	// Name is the command name (e.g. "go-carchive").
	Name string

	// Version information (typically set via ldflags).
	Version        string
	CommitSHA      string
	BuildTimestamp string

	// Run is the command itself.
	Run RunFunc
}

var (
	osExit = os.Exit
	osArgs = func() []string { return os.Args }
)

// Bootstrap runs cfg.Run with os.Args and exits with its result.
//
// This function will call os.Exit and never return.
func Bootstrap(cfg Config) {
	osExit(Execute(cfg, osArgs()[1:]))
}

// Execute runs cfg.Run with args and returns its exit code.
func Execute(cfg Config, args []string) int {
	versionInfo := version.New(cfg.Name)
	if cfg.Version != "" {
		versionInfo.Version = cfg.Version
	}
	if cfg.CommitSHA != "" {
		versionInfo.CommitSHA = cfg.CommitSHA
	}
	if cfg.BuildTimestamp != "" {
		versionInfo.BuildTimestamp = cfg.BuildTimestamp
	}

	return cfg.Run(context.Background(), args, versionInfo)
}
