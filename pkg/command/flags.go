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

import "strings"

// Flags is the set of modifiers following the last delimiter.
type Flags uint8

const (
	// FlagGlobal (g) replaces every match instead of only the first.
	FlagGlobal Flags = 1 << iota
	// FlagIgnoreCase (i) matches case-insensitively.
	FlagIgnoreCase
	// FlagMultiline (m) lets ^ and $ match at line boundaries.
	FlagMultiline
	// FlagDotAll (s) lets . match a newline.
	FlagDotAll
)

// flagTable is in canonical order.
var flagTable = []struct {
	char rune
	flag Flags
}{
	{'g', FlagGlobal},
	{'i', FlagIgnoreCase},
	{'m', FlagMultiline},
	{'s', FlagDotAll},
}

// FlagFor returns the flag spelled by c.
func FlagFor(c rune) (Flags, bool) {
	for _, f := range flagTable {
		if f.char == c {
			return f.flag, true
		}
	}
	return 0, false
}

// Has reports whether every bit of flag is set.
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

// String spells the set in canonical order, e.g. "gi".
func (f Flags) String() string {
	var b strings.Builder
	for _, e := range flagTable {
		if f.Has(e.flag) {
			b.WriteRune(e.char)
		}
	}
	return b.String()
}

// regexpPrefix is the inline flag group for the Go regexp engine.
func (f Flags) regexpPrefix() string {
	var b strings.Builder
	if f.Has(FlagIgnoreCase) {
		b.WriteByte('i')
	}
	if f.Has(FlagMultiline) {
		b.WriteByte('m')
	}
	if f.Has(FlagDotAll) {
		b.WriteByte('s')
	}
	if b.Len() == 0 {
		return ""
	}
	return "(?" + b.String() + ")"
}
