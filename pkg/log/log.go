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
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	countWidth  = 15 // Width for replacement count
	statusWidth = 15 // Width for status text
)

// 🎯 FileOperation represents a processed file for logging
type FileOperation struct {
	Path         string // File path
	Status       string // Operation status
	Replacements int    // Number of replacements made
	IsModified   bool   // Whether the content changed
	IsSkipped    bool   // Whether the file was left alone (binary)
	Diff         string // Unified style diff, set on dry runs
}

// 📊 RunSummary totals a run for the closing box
type RunSummary struct {
	Files        int
	Modified     int
	Skipped      int
	Replacements int
	DryRun       bool
}

// 🎯 Logger handles structured logging with console output
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	mu      sync.Mutex
}

// 🏭 New creates a new logger. Structured records go to stderr, the
// human readable lines to console.
func New(console io.Writer, level zerolog.Level) *Logger {
	zlog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: color.NoColor}).With().Timestamp().Logger().Level(level)
	return &Logger{
		zlog:    zlog,
		console: console,
		mu:      sync.Mutex{},
	}
}

// 🎯 NewContext attaches the structured side of l to ctx, where
// zerolog.Ctx finds it
func NewContext(ctx context.Context, l *Logger) context.Context {
	return l.zlog.WithContext(ctx)
}

// 🎨 ColorEnabled resolves a color mode (auto, always or never) for output
// written to f
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// 🎨 SetColor turns colored console output on or off globally
func SetColor(enabled bool) {
	color.NoColor = !enabled
	if enabled {
		pterm.EnableColor()
	} else {
		pterm.DisableColor()
	}
}

// 📝 formatFileOperation formats a file operation for display
func (l *Logger) formatFileOperation(op FileOperation) string {
	var symbol rune
	var symbolColor color.Attribute
	switch {
	case op.IsSkipped:
		symbol = '-'
		symbolColor = color.FgYellow
	case op.IsModified:
		symbol = '⟳'
		symbolColor = color.FgBlue
	default:
		symbol = '•'
		symbolColor = color.FgCyan
	}

	count := ""
	if op.Replacements > 0 {
		count = fmt.Sprintf("%d replaced", op.Replacements)
	}

	return fmt.Sprintf("%s%s %s %s %s",
		fmt.Sprintf("%*s", fileIndent, ""),
		color.New(symbolColor).Sprint(string(symbol)),
		padRight(op.Path, nameWidth),
		color.New(color.FgMagenta).Sprint(fmt.Sprintf("%-*s", countWidth, count)),
		fmt.Sprintf("%-*s", statusWidth, op.Status))
}

// padRight pads s to w terminal cells; wide runes count double
func padRight(s string, w int) string {
	if pad := w - runewidth.StringWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// 📝 formatDiff indents a diff and colors its added and removed lines
func formatDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			line = color.New(color.FgGreen).Sprint(line)
		case strings.HasPrefix(line, "-"):
			line = color.New(color.FgRed).Sprint(line)
		}
		fmt.Fprintf(&b, "%*s%s\n", fileIndent*2, "", line)
	}
	return b.String()
}

// 📝 LogFileOperation logs a file operation
func (l *Logger) LogFileOperation(ctx context.Context, op FileOperation) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fmt.Fprintln(l.console, l.formatFileOperation(op))
	if op.Diff != "" {
		fmt.Fprint(l.console, formatDiff(op.Diff))
	}

	l.zlog.Debug().
		Str("file", op.Path).
		Str("status", op.Status).
		Bool("is_modified", op.IsModified).
		Bool("is_skipped", op.IsSkipped).
		Int("replacements", op.Replacements).
		Msg("file operation")
}

// 📊 Summary prints the closing box of a run
func (l *Logger) Summary(s RunSummary) {
	l.mu.Lock()
	defer l.mu.Unlock()

	modified := "modified"
	if s.DryRun {
		modified = "would modify"
	}
	body := fmt.Sprintf("files        %d\n%-12s %d\nskipped      %d\nreplacements %d",
		s.Files, modified, s.Modified, s.Skipped, s.Replacements)

	fmt.Fprintln(l.console, pterm.DefaultBox.WithTitle("replacetext").Sprint(body))

	l.zlog.Info().
		Int("files", s.Files).
		Int("modified", s.Modified).
		Int("skipped", s.Skipped).
		Int("replacements", s.Replacements).
		Bool("dry_run", s.DryRun).
		Msg("run complete")
}

// 📝 LogNewline logs a newline
func (l *Logger) LogNewline() {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console)
}

// 📝 Header logs a header
func (l *Logger) Header(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	name := color.New(color.Bold, color.FgCyan).Sprint("replacetext")
	fmt.Fprintf(l.console, "\n%s %s\n\n", name, color.New(color.Faint).Sprint("• "+msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Success logs a success message
func (l *Logger) Success(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "✅ %s\n", color.New(color.FgGreen).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "⚠️  %s\n", color.New(color.FgYellow).Sprint(msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.console, "ℹ️  %s\n", color.New(color.FgCyan).Sprint(msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warningf logs a formatted warning message
func (l *Logger) Warningf(format string, args ...interface{}) {
	l.Warning(fmt.Sprintf(format, args...))
}

// 📝 Successf logs a formatted success message
func (l *Logger) Successf(format string, args ...interface{}) {
	l.Success(fmt.Sprintf(format, args...))
}
