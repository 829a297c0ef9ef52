package text

import (
	"context"
	"io"

	"github.com/walteh/replacetext/pkg/command"
	"gitlab.com/tozd/go/errors"
)

// ErrBinaryContent is returned for content that looks binary. Such content
// is never rewritten.
var ErrBinaryContent = errors.Base("binary content")

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies a substitute command to the content
	// Returns a ReplacementResult containing the modified content and metadata
	ReplaceText(ctx context.Context, content io.Reader, cmd *command.Command) (*ReplacementResult, error)
}
