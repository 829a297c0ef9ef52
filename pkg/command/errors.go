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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

var (
	// ErrSyntax matches every parse failure.
	ErrSyntax = errors.Base("invalid substitute command")

	ErrLeadingToken   = errors.Base("wrong leading token")
	ErrDelimiter      = errors.Base("invalid delimiter")
	ErrUnterminated   = errors.Base("unterminated field")
	ErrTooManyFields  = errors.Base("too many fields")
	ErrEmptyPattern   = errors.Base("empty pattern")
	ErrInvalidPattern = errors.Base("invalid regular expression")
	ErrUnknownFlag    = errors.Base("unknown flag")
)

// SyntaxError describes why a command was rejected. It matches ErrSyntax
// and its Kind with errors.Is.
type SyntaxError struct {
	Command string
	Kind    error
	Reason  string
	Err     error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid command %q: %s", e.Command, e.Reason)
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax || target == e.Kind
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// FlagError is the SyntaxError for a flag character that is not known.
type FlagError struct {
	*SyntaxError
	Flag rune
}

func (e *FlagError) Unwrap() error {
	return e.SyntaxError
}

func syntaxError(cmd string, kind error, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Command: cmd,
		Kind:    kind,
		Reason:  fmt.Sprintf(format, args...),
	}
}
