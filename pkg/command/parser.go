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
	"unicode"
)

// Parse validates text against the grammar
//
//	s<d>PATTERN<d>REPLACEMENT<d>FLAGS
//
// where <d> is the character following the leading 's'. Inside PATTERN and
// REPLACEMENT a backslash followed by <d> stands for a literal <d>, even when
// <d> is a regexp operator or '&'. Every other backslash pair is kept as
// written. A replacement may not reference a group the pattern lacks. The
// returned error is always a *SyntaxError or a *FlagError.
func Parse(text string) (*Command, error) {
	p := &parser{text: text, src: []rune(text)}
	return p.parse()
}

// TryParse reports success instead of an error. The command is nil unless
// the text is fully valid.
func TryParse(text string) (*Command, bool) {
	cmd, err := Parse(text)
	if err != nil {
		return nil, false
	}
	return cmd, true
}

type parser struct {
	text string
	src  []rune
	pos  int
}

func (p *parser) parse() (*Command, error) {
	if len(p.src) == 0 || p.src[0] != 's' {
		return nil, syntaxError(p.text, ErrLeadingToken, "command must start with 's'")
	}
	if len(p.src) < 2 {
		return nil, syntaxError(p.text, ErrDelimiter, "missing delimiter after 's'")
	}

	delim := p.src[1]
	if !validDelimiter(delim) {
		return nil, syntaxError(p.text, ErrDelimiter, "%q cannot be used as a delimiter", delim)
	}
	p.pos = 2

	pattern, ok := p.readField(delim, patternEscape)
	if !ok {
		return nil, syntaxError(p.text, ErrUnterminated, "unterminated pattern, expected closing %q", delim)
	}
	replacement, ok := p.readField(delim, replacementEscape)
	if !ok {
		return nil, syntaxError(p.text, ErrUnterminated, "unterminated replacement, expected closing %q", delim)
	}

	rest := p.src[p.pos:]
	for _, c := range rest {
		if c == delim {
			return nil, syntaxError(p.text, ErrTooManyFields, "unexpected %q after flags", delim)
		}
	}

	if pattern == "" {
		return nil, syntaxError(p.text, ErrEmptyPattern, "pattern must not be empty")
	}

	var flags Flags
	for _, c := range rest {
		f, ok := FlagFor(c)
		if !ok {
			return nil, &FlagError{
				SyntaxError: syntaxError(p.text, ErrUnknownFlag, "unknown flag %q", c),
				Flag:        c,
			}
		}
		flags |= f
	}

	re, err := regexp.Compile(flags.regexpPrefix() + pattern)
	if err != nil {
		serr := syntaxError(p.text, ErrInvalidPattern, "invalid regular expression: %v", err)
		serr.Err = err
		return nil, serr
	}

	if ref := highestReference(replacement); ref > re.NumSubexp() {
		return nil, syntaxError(p.text, ErrInvalidPattern,
			"invalid reference \\%d in replacement, pattern has %d groups", ref, re.NumSubexp())
	}

	return &Command{
		Pattern:     pattern,
		Replacement: replacement,
		Flags:       flags,
		Delimiter:   delim,
		re:          re,
		template:    goTemplate(replacement),
	}, nil
}

// readField consumes up to and including the next unescaped delim. An
// escaped delim is written through escape. It reports false when the input
// ends first.
func (p *parser) readField(delim rune, escape func(rune) string) (string, bool) {
	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '\\' && p.pos+1 < len(p.src) {
			next := p.src[p.pos+1]
			if next == delim {
				b.WriteString(escape(delim))
			} else {
				b.WriteRune(c)
				b.WriteRune(next)
			}
			p.pos += 2
			continue
		}
		p.pos++
		if c == delim {
			return b.String(), true
		}
		b.WriteRune(c)
	}
	return "", false
}

// patternEscape quotes an escaped delimiter so it matches itself even when
// it is a regexp operator.
func patternEscape(delim rune) string {
	return regexp.QuoteMeta(string(delim))
}

// replacementEscape keeps the backslash in front of '&' so the template
// still sees a literal ampersand.
func replacementEscape(delim rune) string {
	if delim == '&' {
		return `\&`
	}
	return string(delim)
}

// highestReference returns the largest \N group reference in a sed
// replacement, or 0 when there is none.
func highestReference(repl string) int {
	highest := 0
	for i := 0; i < len(repl); i++ {
		if repl[i] != '\\' || i+1 >= len(repl) {
			continue
		}
		i++
		if n := repl[i]; n >= '1' && n <= '9' && int(n-'0') > highest {
			highest = int(n - '0')
		}
	}
	return highest
}

func validDelimiter(c rune) bool {
	switch {
	case c == '\\' || c == '\n' || c == '\r':
		return false
	case c < unicode.MaxASCII && (unicode.IsLetter(c) || unicode.IsDigit(c)):
		return false
	case unicode.IsSpace(c):
		return false
	}
	return true
}
