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
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"
)

// ExpansionWarning records a directory whose contents could not be listed.
// Expansion skips it and carries on with its siblings.
type ExpansionWarning struct {
	Path string
	Err  error
}

func (w ExpansionWarning) String() string {
	return fmt.Sprintf("skipped %s: %v", w.Path, w.Err)
}

// expand walks the filesystem beneath dir, creating a target node for every
// file and subdirectory. Files of a directory are inserted before its
// subdirectories, each group in name order. Symlinks to directories are
// not followed.
func (t *Tree) expand(ctx context.Context, dir NodeID) {
	logger := zerolog.Ctx(ctx)

	stack := []NodeID{dir}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		dirPath := Node{tree: t, id: id}.Path()
		entries, err := t.fs.ReadDir(dirPath)
		if err != nil {
			logger.Warn().Err(err).Str("path", dirPath).Msg("skipping unreadable directory")
			t.warnings = append(t.warnings, ExpansionWarning{Path: dirPath, Err: err})
			continue
		}

		files, dirs := t.splitEntries(ctx, dirPath, entries)
		for _, name := range files {
			t.markTarget(t.ensureChild(id, name, false))
		}
		subdirs := make([]NodeID, 0, len(dirs))
		for _, name := range dirs {
			child := t.ensureChild(id, name, true)
			t.markTarget(child)
			subdirs = append(subdirs, child)
		}
		stack = pushReversed(stack, subdirs)
	}
}

func (t *Tree) ensureChild(parent NodeID, name string, isDirectory bool) NodeID {
	if id, ok := t.nodes[parent].children[name]; ok {
		return id
	}
	return t.newNode(parent, name, isDirectory)
}

func (t *Tree) splitEntries(ctx context.Context, dirPath string, entries []os.FileInfo) (files, dirs []string) {
	logger := zerolog.Ctx(ctx)
	for _, e := range entries {
		switch {
		case e.Mode()&os.ModeSymlink != 0:
			target, err := t.fs.Stat(filepath.Join(dirPath, e.Name()))
			if err != nil {
				logger.Debug().Err(err).Str("dir", dirPath).Str("name", e.Name()).Msg("dangling symlink")
				continue
			}
			if target.IsDir() {
				logger.Debug().Str("dir", dirPath).Str("name", e.Name()).Msg("not following directory symlink")
				continue
			}
			files = append(files, e.Name())
		case e.IsDir():
			dirs = append(dirs, e.Name())
		default:
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	sort.Strings(dirs)
	return files, dirs
}
