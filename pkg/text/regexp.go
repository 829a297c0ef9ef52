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

package text

import (
	"bytes"
	"context"
	"io"

	"github.com/walteh/replacetext/pkg/command"
	"gitlab.com/tozd/go/errors"
)

// binarySniffLen is how much of the content is checked for NUL bytes.
const binarySniffLen = 8000

// RegexpTextReplacer implements TextReplacer with the command's compiled
// regular expression
type RegexpTextReplacer struct{}

// NewRegexpTextReplacer creates a new RegexpTextReplacer
func NewRegexpTextReplacer() *RegexpTextReplacer {
	return &RegexpTextReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *RegexpTextReplacer) ReplaceText(ctx context.Context, content io.Reader, cmd *command.Command) (*ReplacementResult, error) {
	if cmd == nil {
		return nil, errors.New("command is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("replacing text: %w", err)
	}

	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	if IsBinary(originalContent) {
		return result, ErrBinaryContent
	}

	modified, count := cmd.Apply(string(originalContent))
	if count > 0 {
		result.ReplacementCount = count
		result.ModifiedContent = []byte(modified)
		// a match can be replaced by identical text
		result.WasModified = !bytes.Equal(originalContent, result.ModifiedContent)
	}

	return result, nil
}

// IsBinary reports whether data has a NUL byte near its start.
func IsBinary(data []byte) bool {
	if len(data) > binarySniffLen {
		data = data[:binarySniffLen]
	}
	return bytes.IndexByte(data, 0) >= 0
}
