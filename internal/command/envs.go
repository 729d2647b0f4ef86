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

package command

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/caarlos0/env/v11"
)

// ----------------------------------------------------- ENVS ------------------------------------------------------- //

// Envs holds the environment variables read by go-carchive itself.
// The go toolchain inherits the whole environment regardless.
type Envs struct {
	// Debug enables [DEBUG] log lines on stderr.
	Debug bool `env:"GO_CARCHIVE_DEBUG"`
	// GoBinary is the go toolchain executable.
	GoBinary string `env:"GO_CARCHIVE_GO" envDefault:"go"`
}

var errReadingEnvs = errors.New("reading environment variables")

// readEnvs parses Envs from environ, or from the process environment when environ is nil.
func readEnvs(environ map[string]string) (Envs, error) {
	envs := Envs{} //nolint:exhaustruct // unmarshal

	var err error
	if environ != nil {
		err = env.ParseWithOptions(&envs, env.Options{Environment: environ})
	} else {
		err = env.Parse(&envs)
	}
	if err != nil {
		return Envs{}, fmt.Errorf("%w: %w", errReadingEnvs, err)
	}

	return envs, nil
}

// ----------------------------------------------------- LOGGING ---------------------------------------------------- //

type logger struct {
	*log.Logger
	debug bool
}

func newLogger(w io.Writer, debug bool) logger {
	return logger{
		Logger: log.New(w, "", log.LstdFlags),
		debug:  debug,
	}
}

func (l logger) debugf(format string, args ...any) {
	if !l.debug {
		return
	}
	l.Printf("[DEBUG] "+format, args...)
}
