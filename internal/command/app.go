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

// Package command implements the go-carchive command line.
package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/alexandremahdhaoui/go-carchive/internal/carchive"
	"github.com/alexandremahdhaoui/go-carchive/internal/mcpserver"
	"github.com/alexandremahdhaoui/go-carchive/internal/util"
	"github.com/alexandremahdhaoui/go-carchive/internal/version"
)

// Name is the command name.
const Name = "go-carchive"

// Exit codes returned by Run.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// CLI defines the flags parsed by Kong.
type CLI struct {
	Name    string      `short:"n" default:"lib.a" help:"Output archive file name."`
	Path    string      `short:"p" default:"./" help:"Output directory."`
	Wait    bool        `help:"Wait for go build to finish and exit 1 if it fails."`
	DryRun  bool        `name:"dry-run" help:"Print the go build command on stderr instead of running it."`
	MCP     bool        `name:"mcp" help:"Serve the build tool over MCP on stdio."`
	Version versionFlag `short:"v" help:"Print version information and exit."`
}

// VersionReporter resolves version information on demand.
// *version.Info implements it.
type VersionReporter interface {
	// String returns the one-line version announced in MCP mode.
	String() string
	// Print writes the full report shown by --version.
	Print(w io.Writer)
}

// versionFlag prints the version report and exits. Resolving the version may
// shell out to git, so it only happens when the flag is set.
type versionFlag bool

func (versionFlag) BeforeReset(app *kong.Kong, v VersionReporter) error {
	v.Print(app.Stdout)
	app.Exit(ExitOK)
	return nil
}

// Dependencies holds what Run needs from its environment.
// Zero values fall back to the process defaults.
type Dependencies struct {
	Out    io.Writer
	ErrOut io.Writer
	// Environ replaces the process environment when reading Envs.
	Environ map[string]string
	// Version is printed by --version and announced in MCP mode.
	Version VersionReporter
	// Dispatcher replaces the dispatcher selected from the flags.
	Dispatcher carchive.Dispatcher
	// ServeMCP runs the MCP server. Defaults to serving on stdio.
	ServeMCP func(ctx context.Context, server *mcpserver.Server) error
}

// mode is how the build is handed to the go toolchain.
type mode int

const (
	modeLaunch mode = iota
	modeWait
	modeDryRun
)

func (c CLI) mode() mode {
	switch {
	case c.DryRun:
		return modeDryRun
	case c.Wait:
		return modeWait
	default:
		return modeLaunch
	}
}

// Run parses args, prints the build status line and dispatches the build.
// It returns the process exit code.
func Run(ctx context.Context, args []string, deps Dependencies) int {
	if deps.Out == nil {
		deps.Out = os.Stdout
	}
	if deps.ErrOut == nil {
		deps.ErrOut = os.Stderr
	}
	if deps.Version == nil {
		deps.Version = &version.Info{ToolName: Name, Version: "dev", CommitSHA: "unknown", BuildTimestamp: "unknown"}
	}

	cli := CLI{}
	exitCode := -1
	parser, err := kong.New(&cli,
		kong.Name(Name),
		kong.Description(description()),
		kong.Writers(deps.Out, deps.ErrOut),
		kong.Exit(func(code int) { exitCode = code }),
		kong.BindTo(deps.Version, (*VersionReporter)(nil)),
	)
	if err != nil {
		_, _ = fmt.Fprintf(deps.ErrOut, "%s: building parser: %v\n", Name, err)
		return ExitFailure
	}

	if _, err := parser.Parse(normalizeArgs(args)); err != nil {
		_, _ = fmt.Fprintf(deps.ErrOut, "%s: error: %v\n", Name, err)
		_, _ = fmt.Fprintf(deps.ErrOut, "Run '%s --help' for usage.\n", Name)
		return ExitUsage
	}

	// --help and --version already wrote their output.
	if exitCode >= 0 {
		return exitCode
	}

	// Read after parsing so --help, --version and usage errors do not depend
	// on the environment.
	envs, err := readEnvs(deps.Environ)
	if err != nil {
		_, _ = fmt.Fprintf(deps.ErrOut, "%s: %v\n", Name, err)
		return ExitFailure
	}

	l := newLogger(deps.ErrOut, envs.Debug)

	dispatcher := deps.Dispatcher
	if dispatcher == nil {
		dispatcher = newDispatcher(cli.mode(), envs, deps.ErrOut)
	}

	if cli.MCP {
		return runMCP(ctx, deps, dispatcher, l)
	}

	return runBuild(ctx, cli, deps.Out, dispatcher, l)
}

func runBuild(ctx context.Context, cli CLI, out io.Writer, dispatcher carchive.Dispatcher, l logger) int {
	req := carchive.BuildRequest{Name: cli.Name, Path: cli.Path}

	_, _ = fmt.Fprintln(out, req.StatusLine())

	l.debugf("dispatching: %s", req.CommandString())

	if err := dispatcher.Dispatch(ctx, req); err != nil {
		if cli.mode() == modeWait {
			l.Printf("go build failed: %v", err)
			return ExitFailure
		}
		// The build outcome never changes the exit code outside --wait.
		l.Printf("WARNING: %v", err)
	}

	return ExitOK
}

func newDispatcher(m mode, envs Envs, errOut io.Writer) carchive.Dispatcher {
	switch m {
	case modeDryRun:
		return carchive.DryRun{Output: errOut}
	case modeWait:
		return carchive.Runner{GoBinary: envs.GoBinary, Output: errOut}
	default:
		return carchive.Launcher{GoBinary: envs.GoBinary, Stderr: errOut}
	}
}

// normalizeArgs rewrites the short forms "-n=value" and "-nvalue" (and the
// same for -p) into "-n value" before Kong sees them.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args)+1)
	expectValue := false

	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}

		if expectValue {
			expectValue = false
			out = append(out, arg)
			continue
		}

		switch {
		case arg == "-n" || arg == "-p" || arg == "--name" || arg == "--path":
			expectValue = true
			out = append(out, arg)
		case len(arg) > 2 && (strings.HasPrefix(arg, "-n") || strings.HasPrefix(arg, "-p")):
			out = append(out, arg[:2], strings.TrimPrefix(arg[2:], "="))
		default:
			out = append(out, arg)
		}
	}

	return out
}

func description() string {
	return fmt.Sprintf(
		"Build %s into a static C archive with `go build -buildmode=%s`. "+
			"The build is started in the background and its result is not checked unless --wait is set.\n\n"+
			"Environment variables:\n%s",
		carchive.SourceFile, carchive.BuildMode, util.FormatExpectedEnvList[Envs](),
	)
}
