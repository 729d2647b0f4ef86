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

package util

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"
)

var errCopyingOutput = errors.New("copying command output")

// RunCmdWithPipes starts cmd, copies its stdout to stdout and its stderr to
// stderr, and waits for it to exit.
// Both copies must drain before cmd.Wait is called, since Wait closes the pipes.
func RunCmdWithPipes(cmd *exec.Cmd, stdout, stderr io.Writer) error {
	cmdStdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}

	cmdStderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	errChan := make(chan error, 2)
	var wg sync.WaitGroup
	var mu sync.Mutex

	copyStream := func(dst io.Writer, src io.Reader, stream string) {
		defer wg.Done()
		if _, err := io.Copy(dst, src); err != nil {
			errChan <- fmt.Errorf("%w: %s: %w", errCopyingOutput, stream, err)
		}
	}

	wg.Add(2)
	go copyStream(&lockedWriter{mu: &mu, w: stdout}, cmdStdout, "stdout")
	go copyStream(&lockedWriter{mu: &mu, w: stderr}, cmdStderr, "stderr")

	wg.Wait()
	close(errChan)

	if err := cmd.Wait(); err != nil {
		return err
	}

	if err, ok := <-errChan; ok {
		return err
	}

	return nil
}

// lockedWriter serializes writes so stdout and stderr may share a writer.
type lockedWriter struct {
	mu *sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}
