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

package log

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disableColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	SetColor(false)
	t.Cleanup(func() { SetColor(!prev) })
}

func TestLogger(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name     string
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "log_file_operation",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "test.txt",
					Status:       "modified",
					IsModified:   true,
					Replacements: 2,
				})
			},
			wantLogs: []string{
				"⟳ test.txt                            2 replaced      modified",
			},
		},
		{
			name: "log_file_operation_with_diff",
			op: func(t *testing.T, logger *Logger) {
				logger.LogFileOperation(context.Background(), FileOperation{
					Path:         "test.txt",
					Status:       "would modify",
					IsModified:   true,
					Replacements: 1,
					Diff:         "-hello\n+hallo\n",
				})
			},
			wantLogs: []string{
				"⟳ test.txt                            1 replaced      would modify",
				"-hello",
				"+hallo",
			},
		},
		{
			name: "log_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("info message")
				logger.Warning("warning message")
				logger.Success("success message")
			},
			wantLogs: []string{
				"ℹ️  info message",
				"⚠️  warning message",
				"✅ success message",
			},
		},
		{
			name: "log_formatted_messages",
			op: func(t *testing.T, logger *Logger) {
				logger.Warningf("warning %s", "test")
				logger.Successf("success %d", 2)
			},
			wantLogs: []string{
				"⚠️  warning test",
				"✅ success 2",
			},
		},
		{
			name: "log_header",
			op: func(t *testing.T, logger *Logger) {
				logger.Header("s/foo/bar/g")
			},
			wantLogs: []string{
				"replacetext • s/foo/bar/g",
			},
		},
		{
			name: "log_newline",
			op: func(t *testing.T, logger *Logger) {
				logger.Info("first")
				logger.LogNewline()
				logger.Info("second")
			},
			wantLogs: []string{
				"ℹ️  first",
				"",
				"ℹ️  second",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.InfoLevel)

	ctx := NewContext(context.Background(), logger)

	assert.Equal(t, zerolog.InfoLevel, zerolog.Ctx(ctx).GetLevel(), "zerolog logger should be attached")
	assert.Equal(t, zerolog.Disabled, zerolog.Ctx(context.Background()).GetLevel(), "plain context has no logger")
}

func TestFileOperationFormatting(t *testing.T) {
	disableColor(t)

	tests := []struct {
		name string
		op   FileOperation
		want string
	}{
		{
			name: "modified_file",
			op: FileOperation{
				Path:         "test.txt",
				Status:       "modified",
				IsModified:   true,
				Replacements: 2,
			},
			want: "⟳ test.txt                            2 replaced      modified",
		},
		{
			name: "unchanged_file",
			op: FileOperation{
				Path:   "test.txt",
				Status: "unchanged",
			},
			want: "• test.txt                                            unchanged",
		},
		{
			name: "skipped_file",
			op: FileOperation{
				Path:      "image.png",
				Status:    "skipped (binary)",
				IsSkipped: true,
			},
			want: "- image.png                                           skipped (binary)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.Disabled)

			logger.LogFileOperation(context.Background(), tt.op)

			assert.Equal(t, tt.want, strings.TrimSpace(buf.String()), "formatted output should match")
		})
	}
}

func TestPadRight(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "ascii", in: "ab", want: "ab   "},
		{name: "wide_runes", in: "日本", want: "日本 "},
		{name: "too_long", in: "abcdefg", want: "abcdefg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, padRight(tt.in, 5))
		})
	}
}

func TestSummary(t *testing.T) {
	disableColor(t)

	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Disabled)
	logger.Summary(RunSummary{Files: 3, Modified: 2, Skipped: 1, Replacements: 7, DryRun: true})

	output := buf.String()
	assert.Contains(t, output, "replacetext")
	assert.Contains(t, output, "files        3")
	assert.Contains(t, output, "would modify 2")
	assert.Contains(t, output, "skipped      1")
	assert.Contains(t, output, "replacements 7")
}

func TestColorEnabled(t *testing.T) {
	assert.True(t, ColorEnabled("always", nil))
	assert.False(t, ColorEnabled("never", nil))
	assert.False(t, ColorEnabled("auto", nil), "no file means no terminal")

	t.Setenv("NO_COLOR", "1")
	assert.True(t, ColorEnabled("always", nil), "always wins over NO_COLOR")
	assert.False(t, ColorEnabled("auto", nil))
}
