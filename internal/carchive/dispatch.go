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

package carchive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/alexandremahdhaoui/go-carchive/internal/util"
)

var (
	errStartingBuild = errors.New("starting go build")
	errRunningBuild  = errors.New("running go build")
)

// Dispatcher hands a BuildRequest to the go toolchain.
type Dispatcher interface {
	Dispatch(ctx context.Context, req BuildRequest) error
}

// ----------------------------------------------------- LAUNCHER --------------------------------------------------- //

// Launcher starts `go build` and returns without waiting for it.
//
// The child is reaped in the background and its exit status is discarded. Its
// stdout is discarded and its stderr goes to Stderr. The context is not
// attached to the child, so the build outlives cancellation and the parent
// process alike.
type Launcher struct {
	// GoBinary is the toolchain executable. Defaults to "go".
	GoBinary string
	// Stderr receives the child's stderr. Defaults to os.Stderr.
	// An *os.File is handed to the child as is; any other writer is fed by a
	// copy that only lives as long as this process.
	Stderr io.Writer
}

// Dispatch implements Dispatcher.
// The only error it reports is a failure to start the process.
func (l Launcher) Dispatch(_ context.Context, req BuildRequest) error {
	cmd := exec.Command(resolveGoBinary(l.GoBinary), req.Args()...) //nolint:gosec // argv, no shell

	cmd.Stdout = nil
	cmd.Stderr = os.Stderr
	if l.Stderr != nil {
		cmd.Stderr = l.Stderr
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %w", errStartingBuild, err)
	}

	go func() { _ = cmd.Wait() }()

	return nil
}

// ----------------------------------------------------- RUNNER ----------------------------------------------------- //

// Runner runs `go build` and waits for it to exit.
// Both output streams of the child are copied to Output.
type Runner struct {
	// GoBinary is the toolchain executable. Defaults to "go".
	GoBinary string
	// Output receives the child's stdout and stderr.
	Output io.Writer
}

// Dispatch implements Dispatcher.
func (r Runner) Dispatch(ctx context.Context, req BuildRequest) error {
	out := r.Output
	if out == nil {
		out = os.Stderr
	}

	cmd := exec.CommandContext(ctx, resolveGoBinary(r.GoBinary), req.Args()...) //nolint:gosec // argv, no shell

	if err := util.RunCmdWithPipes(cmd, out, out); err != nil {
		return fmt.Errorf("%w: %s: %w", errRunningBuild, req.CommandString(), err)
	}

	return nil
}

// ----------------------------------------------------- DRY RUN ---------------------------------------------------- //

// DryRun writes the command it would run to Output and runs nothing.
type DryRun struct {
	Output io.Writer
}

// Dispatch implements Dispatcher.
func (d DryRun) Dispatch(_ context.Context, req BuildRequest) error {
	out := d.Output
	if out == nil {
		out = os.Stderr
	}

	_, err := fmt.Fprintln(out, req.CommandString())
	return err
}

func resolveGoBinary(bin string) string {
	if bin == "" {
		return goBinary
	}
	return bin
}
