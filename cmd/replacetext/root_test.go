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

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/replacetext/pkg/command"
	"github.com/walteh/replacetext/pkg/pathtree"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd := newRootCmd(out)
	cmd.SetArgs(append([]string{"--color", "never"}, args...))
	cmd.SetOut(out)
	cmd.SetErr(out)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRoot(t *testing.T) {
	tests := []struct {
		name        string
		files       map[string]string
		args        func(dir string) []string
		errContains string
		want        map[string]string
	}{
		{
			name:  "replaces_in_directory",
			files: map[string]string{"a.txt": "hoge hoge", "sub/b.txt": "hoge"},
			args: func(dir string) []string {
				return []string{"s/hoge/piyo/g", dir}
			},
			want: map[string]string{"a.txt": "piyo piyo", "sub/b.txt": "piyo"},
		},
		{
			name:  "first_match_without_g",
			files: map[string]string{"a.txt": "hoge hoge"},
			args: func(dir string) []string {
				return []string{"s/hoge/piyo/", filepath.Join(dir, "a.txt")}
			},
			want: map[string]string{"a.txt": "piyo hoge"},
		},
		{
			name:  "dry_run",
			files: map[string]string{"a.txt": "hoge"},
			args: func(dir string) []string {
				return []string{"--dry-run", "s/hoge/piyo/", dir}
			},
			want: map[string]string{"a.txt": "hoge"},
		},
		{
			name:  "include_and_exclude",
			files: map[string]string{"a.go": "x", "a.md": "x", "vendor/v.go": "x"},
			args: func(dir string) []string {
				return []string{"--include", "*.go", "--exclude", "vendor/**", "s/x/y/", dir}
			},
			want: map[string]string{"a.go": "y", "a.md": "x", "vendor/v.go": "x"},
		},
		{
			name:  "serial_jobs",
			files: map[string]string{"a.txt": "1", "b.txt": "2"},
			args: func(dir string) []string {
				return []string{"-j", "1", `s/(\d)/<\1>/`, dir}
			},
			want: map[string]string{"a.txt": "<1>", "b.txt": "<2>"},
		},
		{
			name:  "config_file",
			files: map[string]string{"a.txt": "x", "b.log": "x", "cfg/replacetext.yaml": "exclude: [\"*.log\"]\n"},
			args: func(dir string) []string {
				return []string{"-c", filepath.Join(dir, "cfg", "replacetext.yaml"), "s/x/y/", filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.log")}
			},
			want: map[string]string{"a.txt": "y", "b.log": "x"},
		},
		{
			name:  "invalid_command",
			files: map[string]string{"a.txt": "hoge"},
			args: func(dir string) []string {
				return []string{"s/hoge/piyo/z", dir}
			},
			errContains: `invalid command "s/hoge/piyo/z": unknown flag 'z'`,
			want:        map[string]string{"a.txt": "hoge"},
		},
		{
			name:  "missing_path",
			files: map[string]string{"a.txt": "hoge"},
			args: func(dir string) []string {
				return []string{"s/hoge/piyo/", filepath.Join(dir, "a.txt"), filepath.Join(dir, "nope")}
			},
			errContains: "not found: ",
			want:        map[string]string{"a.txt": "hoge"},
		},
		{
			name:  "too_few_args",
			files: map[string]string{"a.txt": "hoge"},
			args: func(dir string) []string {
				return []string{"s/hoge/piyo/"}
			},
			errContains: "requires at least 2 arg(s)",
			want:        map[string]string{"a.txt": "hoge"},
		},
		{
			name:  "bad_color",
			files: map[string]string{"a.txt": "hoge"},
			args: func(dir string) []string {
				return []string{"--color", "rainbow", "s/hoge/piyo/", dir}
			},
			errContains: "color must be one of",
			want:        map[string]string{"a.txt": "hoge"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFiles(t, dir, tt.files)

			_, err := execute(t, tt.args(dir)...)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
			} else {
				require.NoError(t, err)
			}

			for name, want := range tt.want {
				assert.Equal(t, want, readFile(t, filepath.Join(dir, filepath.FromSlash(name))), "content of %s", name)
			}
		})
	}
}

func TestRoot_ErrorKinds(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hoge"})

	_, err := execute(t, "s/hoge", dir)
	assert.ErrorIs(t, err, command.ErrSyntax)
	assert.ErrorIs(t, err, command.ErrUnterminated)

	_, err = execute(t, `s/hoge/\1/`, dir)
	assert.ErrorIs(t, err, command.ErrInvalidPattern)
	assert.Equal(t, "hoge", readFile(t, filepath.Join(dir, "a.txt")), "rejected command writes nothing")

	_, err = execute(t, "s/hoge/piyo/", filepath.Join(dir, "x"), filepath.Join(dir, "y"))
	assert.ErrorIs(t, err, pathtree.ErrNotFound)
	assert.Contains(t, err.Error(), filepath.Join(dir, "x"))
	assert.Contains(t, err.Error(), filepath.Join(dir, "y"), "every missing path is reported")
}

func TestRoot_Output(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "hello\n", "b.txt": "bye\n"})

	out, err := execute(t, "--dry-run", "s/hello/hallo/", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "replacetext • s/hello/hallo/")
	assert.Contains(t, out, filepath.Join(dir, "a.txt"))
	assert.Contains(t, out, "would modify")
	assert.Contains(t, out, "-hello")
	assert.Contains(t, out, "+hallo")
	assert.Contains(t, out, "unchanged")
	assert.Contains(t, out, "replacements 1")
	assert.Contains(t, out, "dry run, no files were written")

	out, err = execute(t, "s/hello/hallo/", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "updated 1 of 2 files")

	out, err = execute(t, "s/hello/hallo/", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "nothing to replace")

	out, err = execute(t, "--include", "*.md", "s/hallo/hello/", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "no files selected from 1 paths")
}

func TestVersion(t *testing.T) {
	out := &bytes.Buffer{}
	cmd := newRootCmd(out)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))

	assert.Contains(t, out.String(), "replacetext version info")
	assert.Contains(t, out.String(), "Go:")
}
