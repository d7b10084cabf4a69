// Copyright 2025 Florian Zenker (flo@znkr.io)
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

// Package unixpatch runs the unix patch and diff3 tools. It's used to cross-check the output of
// this module against the reference implementations.
//
// This package is only for testing.
package unixpatch

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Patch applies the unified diff to orig. Additional arguments are passed on to patch, e.g. "-R"
// to apply the diff in reverse.
func Patch(orig, diff string, args ...string) (string, error) {
	// patch doesn't create an output file for an empty diff.
	if diff == "" {
		return orig, nil
	}
	var out []byte
	err := withFiles([]string{orig, diff}, func(dir string, files []string) error {
		result := filepath.Join(dir, "result")
		args = append([]string{"-u"}, args...)
		args = append(args, "-i", files[1], "-o", result, files[0])
		if msg, err := exec.Command("patch", args...).CombinedOutput(); err != nil {
			return fmt.Errorf("patch %v: %w\n%s", args, err, msg)
		}
		var err error
		out, err = os.ReadFile(result)
		return err
	})
	return string(out), err
}

// Merge runs diff3 -m on the three inputs and returns the merged output and whether diff3 found
// conflicts.
func Merge(mine, base, theirs string) (string, bool, error) {
	var out []byte
	var conflicts bool
	err := withFiles([]string{mine, base, theirs}, func(_ string, files []string) error {
		var err error
		out, err = exec.Command("diff3", append([]string{"-m"}, files...)...).Output()
		var exit *exec.ExitError
		if errors.As(err, &exit) && exit.ExitCode() == 1 {
			conflicts, err = true, nil
		}
		if err != nil {
			return fmt.Errorf("diff3 -m %v: %w", files, err)
		}
		return nil
	})
	return string(out), conflicts, err
}

// withFiles writes every content into its own file in a temporary directory and calls f with the
// directory and the file names.
func withFiles(contents []string, f func(dir string, files []string) error) error {
	dir, err := os.MkdirTemp("", "unixpatch-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	files := make([]string, len(contents))
	for i, c := range contents {
		files[i] = filepath.Join(dir, fmt.Sprint(i))
		if err := os.WriteFile(files[i], []byte(c), 0o644); err != nil {
			return err
		}
	}
	return f(dir, files)
}
