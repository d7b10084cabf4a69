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

// eval validates the engine on two versions of a directory tree. For every file present in both
// trees, it generates a patch and applies it forward and in reverse, merges the two versions, and
// round trips binary files through the binary diff. Optionally, text patches are cross-checked
// with the unix patch tool.
package main

import (
	"bufio"
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"xdiff.dev/diff"
	"xdiff.dev/diff/engine"
	"xdiff.dev/diff/internal/unixpatch"
	"xdiff.dev/diff/patch"
	"xdiff.dev/diff/textdiff"
)

type config struct {
	old, new string
	parallel int
	stats    string
	validate bool
	verbose  bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.old, "old", "", "directory with the old version of the tree")
	flag.StringVar(&cfg.new, "new", "", "directory with the new version of the tree")
	flag.IntVar(&cfg.parallel, "parallel", runtime.GOMAXPROCS(0), "number of evaluations to run in parallel")
	flag.StringVar(&cfg.stats, "stats", "", "file to store stats in")
	flag.BoolVar(&cfg.validate, "validate", false, "if patches should be cross-checked with patch(1)")
	flag.BoolVar(&cfg.verbose, "v", false, "log every evaluated file")
	flag.Parse()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if len(flag.CommandLine.Args()) > 0 {
		log.Error("unexpected command line arguments", "args", flag.CommandLine.Args())
		os.Exit(1)
	}
	if cfg.old == "" || cfg.new == "" {
		log.Error("both -old and -new are required")
		os.Exit(1)
	}

	failures, err := run(log, &cfg)
	if err != nil {
		log.Error("evaluation failed", "err", err)
		os.Exit(1)
	}
	if failures > 0 {
		log.Error("evaluation found failures", "failures", failures)
		os.Exit(1)
	}
}

// walk returns a [engine.Tree] enumerating the content of root.
func walk(root string) engine.Tree {
	return func(yield func(engine.Entry, error) bool) {
		emit := func(e engine.Entry, err error) error {
			if !yield(e, err) {
				return filepath.SkipAll
			}
			return nil
		}
		filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return emit(engine.Entry{Path: path}, err)
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return emit(engine.Entry{Path: path}, err)
			}
			e := engine.Entry{Path: filepath.ToSlash(rel)}
			info, err := d.Info()
			if err != nil {
				return emit(e, err)
			}
			e.Size, e.ModTime = info.Size(), info.ModTime()
			switch {
			case d.IsDir():
				e.Kind = engine.Directory
			case d.Type()&fs.ModeSymlink != 0:
				e.Kind = engine.Symlink
			case d.Type().IsRegular():
				e.Kind = engine.RegularFile
			default:
				return nil
			}
			return emit(e, nil)
		})
	}
}

type result struct {
	file     string
	variant  string
	size     int
	patch    int
	duration time.Duration
}

var variants = []struct {
	name string
	opts []diff.Option
}{
	{"default", nil},
	{"minimal", []diff.Option{diff.Minimal()}},
	{"fast", []diff.Option{diff.Fast()}},
	{"indent-heuristic", []diff.Option{textdiff.IndentHeuristic()}},
}

func run(log *slog.Logger, cfg *config) (int64, error) {
	start := time.Now()
	var failures, evaluated atomic.Int64
	fail := func(file, msg string, args ...any) {
		failures.Add(1)
		log.Error(msg, append([]any{"file", file}, args...)...)
	}

	var results chan result
	var statsWG sync.WaitGroup
	var statsErr error
	if cfg.stats != "" {
		stats, err := os.Create(cfg.stats)
		if err != nil {
			return 0, fmt.Errorf("creating stats file: %v", err)
		}
		results = make(chan result)
		statsWG.Add(1)
		go func() {
			defer statsWG.Done()
			w := bufio.NewWriter(stats)
			w.WriteString("file,variant,size,patch_size,duration_ns\n")
			for r := range results {
				if statsErr != nil {
					continue
				}
				_, statsErr = fmt.Fprintf(w, "%s,%s,%d,%d,%d\n", r.file, r.variant, r.size, r.patch, r.duration.Nanoseconds())
			}
			if err := w.Flush(); statsErr == nil {
				statsErr = err
			}
			if err := stats.Close(); statsErr == nil {
				statsErr = err
			}
		}()
	}

	g := new(errgroup.Group)
	g.SetLimit(cfg.parallel)
	for e, err := range walk(cfg.old) {
		if err != nil {
			fail(e.Path, "walking old tree", "err", err)
			continue
		}
		if e.Kind != engine.RegularFile {
			continue
		}
		g.Go(func() error {
			old, err := engine.Load(engine.File(filepath.Join(cfg.old, e.Path)))
			if err != nil {
				fail(e.Path, "reading old file", "err", err)
				return nil
			}
			new, err := engine.Load(engine.File(filepath.Join(cfg.new, e.Path)))
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					fail(e.Path, "reading new file", "err", err)
				}
				return nil
			}
			if engine.IsBinary(old) || engine.IsBinary(new) {
				evalBinary(e.Path, old, new, results, fail)
			} else {
				evalText(cfg, e.Path, old, new, results, fail)
			}
			log.Debug("evaluated", "file", e.Path, "size", e.Size)
			evaluated.Add(1)
			return nil
		})
	}
	err := g.Wait()
	if results != nil {
		close(results)
	}
	statsWG.Wait()
	if err != nil {
		return failures.Load(), err
	}
	if statsErr != nil {
		return failures.Load(), fmt.Errorf("writing stats: %v", statsErr)
	}

	log.Info("done", "files", evaluated.Load(), "failures", failures.Load(), "duration", time.Since(start))
	return failures.Load(), nil
}

func evalText(cfg *config, file string, old, new []byte, results chan<- result, fail func(string, string, ...any)) {
	for _, v := range variants {
		start := time.Now()
		p, err := engine.GenerateDiff(old, new, 3, v.opts...)
		duration := time.Since(start)
		if err != nil {
			fail(file, "generating diff", "variant", v.name, "err", err)
			continue
		}
		if results != nil {
			results <- result{file: file, variant: v.name, size: len(old) + len(new), patch: len(p), duration: duration}
		}

		got, rejects, err := engine.ApplyDiff(old, p, patch.Forward, nil)
		if err != nil || rejects > 0 || !bytes.Equal(got, new) {
			fail(file, "forward patch doesn't reproduce new file", "variant", v.name, "rejects", rejects, "err", err)
		}
		got, rejects, err = engine.ApplyDiff(new, p, patch.Reverse, nil)
		if err != nil || rejects > 0 || !bytes.Equal(got, old) {
			fail(file, "reverse patch doesn't reproduce old file", "variant", v.name, "rejects", rejects, "err", err)
		}

		if cfg.validate {
			patched, err := unixpatch.Patch(string(old), string(p))
			if err != nil {
				fail(file, "running patch", "variant", v.name, "err", err)
			} else if patched != string(new) {
				fail(file, "patch(1) doesn't reproduce new file", "variant", v.name)
			}
		}
	}

	if got, conflicts := engine.Merge3Way(old, new, old); conflicts > 0 || !bytes.Equal(got, new) {
		fail(file, "merging one-sided change", "conflicts", conflicts)
	}
	if got, conflicts := engine.Merge3Way(old, new, new); conflicts > 0 || !bytes.Equal(got, new) {
		fail(file, "merging identical changes", "conflicts", conflicts)
	}
}

func evalBinary(file string, old, new []byte, results chan<- result, fail func(string, string, ...any)) {
	start := time.Now()
	p := engine.GenerateBinaryDiff(old, new)
	duration := time.Since(start)
	if results != nil {
		results <- result{file: file, variant: "binary", size: len(old) + len(new), patch: len(p), duration: duration}
	}
	got, err := engine.ApplyBinaryDiff(old, p)
	if err != nil || !bytes.Equal(got, new) {
		fail(file, "binary patch doesn't reproduce new file", "err", err)
	}
}
