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

// Package filter narrows a tree's target files down to the ones a run
// should touch.
package filter

import (
	"context"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"github.com/rs/zerolog"
	"github.com/walteh/replacetext/pkg/pathtree"
	"gitlab.com/tozd/go/errors"
)

const gitDir = ".git"

// 🔧 Options controls which target files are selected
type Options struct {
	// Include keeps only files matching one of these globs (all when empty)
	Include []string
	// Exclude drops files matching any of these globs
	Exclude []string
	// Gitignore drops files ignored by .gitignore and anything inside .git
	Gitignore bool
}

// 🎯 Filter selects target files by glob and .gitignore rules.
// Globs are matched against the path relative to the input the file was
// found under, and against the bare file name.
type Filter struct {
	fs   billy.Filesystem
	opts Options
}

// 🏭 New validates the glob patterns and creates a filter
func New(fs billy.Filesystem, opts Options) (*Filter, error) {
	for _, p := range slices.Concat(opts.Include, opts.Exclude) {
		if !doublestar.ValidatePattern(p) {
			return nil, errors.Errorf("invalid glob pattern %q", p)
		}
	}
	return &Filter{fs: fs, opts: opts}, nil
}

// 🔍 Match applies the include and exclude globs to a node
func (f *Filter) Match(n pathtree.Node) bool {
	rel := RelativePath(n)
	if len(f.opts.Include) > 0 && !matchAny(f.opts.Include, rel, n.Name()) {
		return false
	}
	return !matchAny(f.opts.Exclude, rel, n.Name())
}

// 📋 Select returns the tree's target files that pass the filter, in
// traversal order
func (f *Filter) Select(ctx context.Context, tree *pathtree.Tree) ([]pathtree.Node, error) {
	logger := zerolog.Ctx(ctx)

	var ignore gitignore.Matcher
	if f.opts.Gitignore {
		m, err := f.gitignoreMatcher(tree)
		if err != nil {
			return nil, errors.Errorf("reading gitignore patterns: %w", err)
		}
		ignore = m
	}

	var selected []pathtree.Node
	for n := range tree.Files() {
		if !f.Match(n) {
			logger.Debug().Str("file", n.Path()).Msg("skipped by glob")
			continue
		}
		if ignore != nil {
			segments := repoSegments(n)
			if slices.Contains(segments, gitDir) || ignore.Match(segments, false) {
				logger.Debug().Str("file", n.Path()).Msg("skipped by gitignore")
				continue
			}
		}
		selected = append(selected, n)
	}
	return selected, nil
}

// gitignoreMatcher reads the .gitignore files beneath every input
// directory of the tree.
func (f *Filter) gitignoreMatcher(tree *pathtree.Tree) (gitignore.Matcher, error) {
	var patterns []gitignore.Pattern
	for n := range tree.Targets() {
		if !n.IsDirectory() || !isInputRoot(n) {
			continue
		}
		ps, err := gitignore.ReadPatterns(f.fs, repoSegments(n))
		if err != nil {
			return nil, errors.Errorf("reading patterns under %s: %w", n.Path(), err)
		}
		patterns = append(patterns, ps...)
	}
	return gitignore.NewMatcher(patterns), nil
}

// RelativePath is the slash separated path of n below the input it was
// added through. A file given directly is relative to itself, so the
// result is its name.
func RelativePath(n pathtree.Node) string {
	names := []string{n.Name()}
	for curr := n; !isInputRoot(curr); {
		parent, ok := curr.Parent()
		if !ok || parent.IsRoot() {
			break
		}
		names = append(names, parent.Name())
		curr = parent
	}
	if len(names) > 1 {
		// the input directory itself is not part of the relative path
		names = names[:len(names)-1]
	}
	slices.Reverse(names)
	return strings.Join(names, "/")
}

// isInputRoot reports whether n is a target whose parent is not.
func isInputRoot(n pathtree.Node) bool {
	parent, ok := n.Parent()
	return n.IsTarget() && (!ok || parent.IsRoot() || !parent.IsTarget())
}

// repoSegments are the node's segments without the root marker, the form
// gitignore patterns are matched against.
func repoSegments(n pathtree.Node) []string {
	segments := n.Segments()
	if len(segments) > 0 && pathtree.IsRootMarker(segments[0]) {
		segments = segments[1:]
	}
	return segments
}

func matchAny(patterns []string, rel, name string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
