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

package main

import (
	"context"

	"github.com/alexandremahdhaoui/go-carchive/internal/cli"
	"github.com/alexandremahdhaoui/go-carchive/internal/command"
	"github.com/alexandremahdhaoui/go-carchive/internal/version"
)

// Version information (set via ldflags)
var (
	Version        = "dev"
	CommitSHA      = "unknown"
	BuildTimestamp = "unknown"
)

func main() {
	cli.Bootstrap(cli.Config{
		Name:           command.Name,
		Version:        Version,
		CommitSHA:      CommitSHA,
		BuildTimestamp: BuildTimestamp,
		Run:            run,
	})
}

func run(ctx context.Context, args []string, versionInfo *version.Info) int {
	return command.Run(ctx, args, command.Dependencies{
		Version: versionInfo,
	})
}
