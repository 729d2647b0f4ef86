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
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// ----------------------------------------------------- FormatExpectedEnvList -------------------------------------- //

type envEntry struct {
	name     string
	required bool
	def      string
}

// FormatExpectedEnvList formats the environment variables read into T.
// It reads the `env` and `envDefault` tags of the struct fields, as understood by caarlos0/env.
// Required variables are listed first. Each line looks like:
//
//	- GO_CARCHIVE_GO    [Optional] (default: go)
func FormatExpectedEnvList[T any]() string {
	entries := make([]envEntry, 0)
	maxLen := 0

	rt := reflect.TypeFor[T]()
	for i := range rt.NumField() {
		field := rt.Field(i)
		val, ok := field.Tag.Lookup("env")
		if !ok || val == "" {
			continue
		}

		opts := strings.Split(val, ",")
		entry := envEntry{
			name:     opts[0],
			required: slices.Contains(opts[1:], "required"),
			def:      field.Tag.Get("envDefault"),
		}
		entries = append(entries, entry)

		if l := len(entry.name); l > maxLen {
			maxLen = l
		}
	}

	// Stable: required first, declaration order otherwise.
	slices.SortStableFunc(entries, func(a, b envEntry) int {
		switch {
		case a.required == b.required:
			return 0
		case a.required:
			return -1
		default:
			return 1
		}
	})

	var sb strings.Builder
	for _, e := range entries {
		kind := "[Optional]"
		if e.required {
			kind = "[Required]"
		}

		line := fmt.Sprintf("- %s %s%s", e.name, fmtSpaces(e.name, maxLen), kind)
		if e.def != "" {
			line = fmt.Sprintf("%s (default: %s)", line, e.def)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func fmtSpaces(s string, maxLen int) string {
	return strings.Repeat(" ", maxLen-len(s))
}
