// Copyright 2025 walteh LLC
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

package operation

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/replacetext/pkg/log"
	"github.com/walteh/replacetext/pkg/pathtree"
	"github.com/walteh/replacetext/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner applies a substitution to a set of files
type Runner struct {
	opts Options
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) (*Runner, error) {
	if opts.FS == nil {
		return nil, errors.Errorf("filesystem is required")
	}
	if opts.Replacer == nil {
		return nil, errors.Errorf("replacer is required")
	}
	if opts.Command == nil {
		return nil, errors.Errorf("command is required")
	}
	if opts.Logger == nil {
		return nil, errors.Errorf("logger is required")
	}
	if opts.Jobs < 1 {
		opts.Jobs = 1
	}
	return &Runner{opts: opts}, nil
}

// 🏃 Run processes every file, at most Jobs at a time. The first read or
// write failure cancels the files not yet started and is returned.
func (r *Runner) Run(ctx context.Context, files []pathtree.Node) (*Summary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Int("files", len(files)).Int("jobs", r.opts.Jobs).Bool("dry_run", r.opts.DryRun).Msg("starting run")

	var (
		mu      sync.Mutex
		summary = &Summary{Files: len(files)}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Jobs)
	for _, file := range files {
		path := file.Path()
		g.Go(func() error {
			op, err := r.processFile(gctx, path)
			if err != nil {
				return err
			}
			r.opts.Logger.LogFileOperation(gctx, op)

			mu.Lock()
			defer mu.Unlock()
			summary.add(op)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// 📝 processFile rewrites a single file and reports what happened to it
func (r *Runner) processFile(ctx context.Context, path string) (log.FileOperation, error) {
	op := log.FileOperation{Path: path}

	if err := ctx.Err(); err != nil {
		return op, errors.Errorf("processing %s: %w", path, err)
	}

	info, err := r.opts.FS.Stat(path)
	if err != nil {
		return op, errors.Errorf("stating %s: %w", path, err)
	}

	f, err := r.opts.FS.Open(path)
	if err != nil {
		return op, errors.Errorf("opening %s: %w", path, err)
	}
	result, err := r.opts.Replacer.ReplaceText(ctx, f, r.opts.Command)
	f.Close()
	if errors.Is(err, text.ErrBinaryContent) {
		zerolog.Ctx(ctx).Debug().Str("file", path).Msg("skipping binary file")
		op.Status = StatusSkipped
		op.IsSkipped = true
		return op, nil
	}
	if err != nil {
		return op, errors.Errorf("processing %s: %w", path, err)
	}

	op.Replacements = result.ReplacementCount
	if !result.WasModified {
		op.Status = StatusUnchanged
		return op, nil
	}
	op.IsModified = true

	if r.opts.DryRun {
		op.Status = StatusWouldModify
		op.Diff = lineDiff(string(result.OriginalContent), string(result.ModifiedContent))
		return op, nil
	}

	if err := writeFile(r.opts.FS, path, result.ModifiedContent, info); err != nil {
		return op, errors.Errorf("writing %s: %w", path, err)
	}
	op.Status = StatusModified
	return op, nil
}

// writeFile replaces path through a temporary file in the same directory
// so a failed write never leaves it truncated. The original mode is kept.
func writeFile(fs billy.Filesystem, path string, data []byte, info os.FileInfo) (err error) {
	tmp, err := util.TempFile(fs, filepath.Dir(path), ".replacetext-")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return errors.Errorf("closing temp file: %w", err)
	}

	if ch, ok := fs.(billy.Change); ok {
		if err = ch.Chmod(tmpName, info.Mode().Perm()); err != nil {
			return errors.Errorf("setting mode: %w", err)
		}
	}

	if err = fs.Rename(tmpName, path); err != nil {
		return errors.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// lineDiff renders the changed lines between two versions, removed lines
// prefixed with "-" and added ones with "+"
func lineDiff(before, after string) string {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	for _, d := range diffs {
		var prefix string
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		default:
			continue
		}
		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}
			sb.WriteString(prefix)
			sb.WriteString(line)
			if !strings.HasSuffix(line, "\n") {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
