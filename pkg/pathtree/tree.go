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

package pathtree

import (
	"context"
	"iter"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrNotFound is returned by Add when the input path is neither a file nor
// a directory.
var ErrNotFound = errors.Base("not found")

// Filesystem is the read side of billy.Filesystem used to resolve inputs
// and expand directories.
type Filesystem interface {
	Stat(filename string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
}

// Option configures a Tree.
type Option func(*Tree)

// WithFilesystem replaces the OS filesystem, mostly for tests.
func WithFilesystem(fs Filesystem) Option {
	return func(t *Tree) {
		t.fs = fs
	}
}

// Tree is a deduplicated registry of filesystem targets. It is built
// serially through Add and is read-only afterwards.
type Tree struct {
	fs       Filesystem
	nodes    []node
	warnings []ExpansionWarning
}

// New creates an empty tree holding only the root.
func New(opts ...Option) *Tree {
	t := &Tree{
		fs: osfs.New("/"),
		nodes: []node{{
			name:        "",
			isDirectory: true,
			parent:      noParent,
			children:    map[string]NodeID{},
		}},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Root returns the synthetic root node.
func (t *Tree) Root() Node {
	return Node{tree: t, id: rootID}
}

// HasValue reports whether at least one input has been added.
func (t *Tree) HasValue() bool {
	return len(t.nodes[rootID].order) > 0
}

// Len is the number of nodes, not counting the root.
func (t *Tree) Len() int {
	return len(t.nodes) - 1
}

// Warnings lists the directories that could not be expanded.
func (t *Tree) Warnings() []ExpansionWarning {
	return t.warnings
}

// Add resolves path against the filesystem and registers it as a target.
// Directories are expanded so every file and subdirectory beneath them is
// a target too. A missing path returns ErrNotFound, any other stat failure
// is returned with its cause, and in both cases the tree is left untouched.
func (t *Tree) Add(ctx context.Context, path string) error {
	logger := zerolog.Ctx(ctx)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return errors.Errorf("resolving absolute path of %s: %w", path, err)
	}

	info, err := t.fs.Stat(absPath)
	if err != nil {
		logger.Debug().Err(err).Str("path", absPath).Msg("stat failed")
		if errors.Is(err, os.ErrNotExist) {
			return errors.Errorf("%w: %s", ErrNotFound, path)
		}
		return errors.Errorf("stat %s: %w", path, err)
	}

	tokens := Tokenize(absPath)
	last := lastToken(tokens)
	curr := rootID
	for i, token := range tokens {
		if token == "" {
			continue
		}
		isLeaf := i == last
		child, ok := t.nodes[curr].children[token]
		if !ok {
			child = t.newNode(curr, token, !isLeaf || info.IsDir())
		}
		curr = child
		if isLeaf {
			t.markTarget(curr)
		}
	}

	logger.Debug().Str("path", absPath).Bool("directory", info.IsDir()).Msg("added input")

	if t.nodes[curr].isDirectory {
		t.expand(ctx, curr)
	}
	return nil
}

// TryAdd is Add with a boolean result and a printable message.
func (t *Tree) TryAdd(ctx context.Context, path string) (bool, string) {
	if err := t.Add(ctx, path); err != nil {
		return false, err.Error()
	}
	return true, ""
}

// FindNode walks the tree along the tokens of path. Absence is a normal
// outcome and reported through the boolean.
func (t *Tree) FindNode(path string) (Node, bool) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return Node{}, false
	}
	curr := rootID
	for _, token := range Tokenize(absPath) {
		if token == "" {
			continue
		}
		child, ok := t.nodes[curr].children[token]
		if !ok {
			return Node{}, false
		}
		curr = child
	}
	return Node{tree: t, id: curr}, true
}

// All yields every node except the root in pre-order. Each call starts a
// fresh walk.
func (t *Tree) All() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		stack := pushReversed(nil, t.nodes[rootID].order)
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(Node{tree: t, id: id}) {
				return
			}
			stack = pushReversed(stack, t.nodes[id].order)
		}
	}
}

// Targets yields the target nodes of All.
func (t *Tree) Targets() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for n := range t.All() {
			if n.IsTarget() && !yield(n) {
				return
			}
		}
	}
}

// Files yields the target nodes that are not directories.
func (t *Tree) Files() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		for n := range t.Targets() {
			if !n.IsDirectory() && !yield(n) {
				return
			}
		}
	}
}

// Traverse calls visit for every node except the root in pre-order.
func (t *Tree) Traverse(visit func(Node)) {
	for n := range t.All() {
		visit(n)
	}
}

func pushReversed(stack []NodeID, ids []NodeID) []NodeID {
	for i := len(ids) - 1; i >= 0; i-- {
		stack = append(stack, ids[i])
	}
	return stack
}

func (t *Tree) newNode(parent NodeID, name string, isDirectory bool) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, node{
		name:        name,
		isDirectory: isDirectory,
		parent:      parent,
		children:    map[string]NodeID{},
	})
	t.nodes[id].originalPath = Node{tree: t, id: id}.Path()
	t.nodes[parent].children[name] = id
	t.nodes[parent].order = append(t.nodes[parent].order, id)
	return id
}

// markTarget is the only writer of isTarget; it never clears the flag.
func (t *Tree) markTarget(id NodeID) {
	if id == rootID {
		return
	}
	t.nodes[id].isTarget = true
}
