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
	"path/filepath"
	"strings"
)

const (
	posixRootMarker = "/"
	uncRootMarker   = `\\`
)

// Tokenize splits an absolute path on the platform separator. A leading
// root marker ("/" or a UNC "\\" prefix) is kept as the first token so the
// tokens can be joined back into an absolute path. Empty tokens produced by
// consecutive separators are kept; tree walks skip them.
func Tokenize(absPath string) []string {
	return tokenize(absPath, filepath.Separator)
}

func tokenize(absPath string, sep rune) []string {
	tokens := strings.Split(absPath, string(sep))
	switch {
	case strings.HasPrefix(absPath, uncRootMarker):
		tokens = append([]string{uncRootMarker}, tokens...)
	case strings.HasPrefix(absPath, posixRootMarker):
		tokens = append([]string{posixRootMarker}, tokens...)
	}
	return tokens
}

// IsRootMarker reports whether name is one of the synthetic first tokens
// produced by Tokenize for absolute paths.
func IsRootMarker(name string) bool {
	return name == posixRootMarker || name == uncRootMarker
}

// joinTokens is the inverse of Tokenize for non-empty tokens.
func joinTokens(names []string, sep rune) string {
	if len(names) > 0 && IsRootMarker(names[0]) {
		return names[0] + strings.Join(names[1:], string(sep))
	}
	return strings.Join(names, string(sep))
}

// lastToken returns the index of the last non-empty token, or -1.
func lastToken(tokens []string) int {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i] != "" {
			return i
		}
	}
	return -1
}
