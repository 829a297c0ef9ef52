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

package command

import (
	"regexp"
	"strings"
)

// Command is a validated substitute command. Values only come out of Parse.
type Command struct {
	// Pattern is the regular expression source. An escaped delimiter is
	// quoted, so s|a\|b|| yields a\|b.
	Pattern string

	// Replacement is the sed style template. An escaped delimiter is bare
	// unless it is '&', which stays escaped.
	Replacement string

	// Flags are the modifiers after the last delimiter
	Flags Flags

	// Delimiter is the character that followed the leading 's'
	Delimiter rune

	re       *regexp.Regexp
	template string
}

// Regexp is the compiled pattern, flags applied.
func (c *Command) Regexp() *regexp.Regexp {
	return c.re
}

// Template is Replacement translated to regexp.Expand syntax.
func (c *Command) Template() string {
	return c.template
}

// Apply substitutes the first match of s, or every match when the command
// has the g flag, and returns the result with the number of replacements.
func (c *Command) Apply(s string) (string, int) {
	var matches [][]int
	if c.Flags.Has(FlagGlobal) {
		matches = c.re.FindAllStringSubmatchIndex(s, -1)
	} else if m := c.re.FindStringSubmatchIndex(s); m != nil {
		matches = [][]int{m}
	}
	if len(matches) == 0 {
		return s, 0
	}

	out := make([]byte, 0, len(s))
	last := 0
	for _, m := range matches {
		out = append(out, s[last:m[0]]...)
		out = c.re.ExpandString(out, c.template, s, m)
		last = m[1]
	}
	out = append(out, s[last:]...)
	return string(out), len(matches)
}

// String renders the command back into its textual form.
func (c *Command) String() string {
	d := string(c.Delimiter)
	return "s" + d + escapeField(c.Pattern, c.Delimiter) + d + escapeField(c.Replacement, c.Delimiter) + d + c.Flags.String()
}

// escapeField puts a backslash in front of every bare delim. Backslash
// pairs are copied unchanged, which keeps quoted delimiters quoted.
func escapeField(field string, delim rune) string {
	var b strings.Builder
	escaped := false
	for _, r := range field {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == delim:
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// goTemplate converts a sed replacement into a regexp.Expand template.
// \1..\9 become group references, & the whole match, \n and \t a newline
// and a tab, and any other escaped character stands for itself. '$' has
// no special meaning in the sed form.
func goTemplate(repl string) string {
	var b strings.Builder
	b.Grow(len(repl))
	for i := 0; i < len(repl); i++ {
		ch := repl[i]
		switch ch {
		case '\\':
			if i+1 >= len(repl) {
				b.WriteByte('\\')
				continue
			}
			i++
			next := repl[i]
			switch {
			case next >= '1' && next <= '9':
				b.WriteString("${")
				b.WriteByte(next)
				b.WriteString("}")
			case next == 'n':
				b.WriteByte('\n')
			case next == 't':
				b.WriteByte('\t')
			case next == '$':
				b.WriteString("$$")
			default:
				b.WriteByte(next)
			}
		case '&':
			b.WriteString("${0}")
		case '$':
			b.WriteString("$$")
		default:
			b.WriteByte(ch)
		}
	}
	return b.String()
}
