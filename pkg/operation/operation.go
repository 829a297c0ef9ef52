package operation

import (
	"github.com/go-git/go-billy/v5"
	"github.com/walteh/replacetext/pkg/command"
	"github.com/walteh/replacetext/pkg/log"
	"github.com/walteh/replacetext/pkg/text"
)

// 🏷️ Status values reported per file
const (
	StatusModified    = "modified"
	StatusWouldModify = "would modify"
	StatusUnchanged   = "unchanged"
	StatusSkipped     = "skipped (binary)"
)

// 🔧 Options contains configuration for the runner
type Options struct {
	// FS is where files are read from and written to
	FS billy.Filesystem
	// Replacer rewrites file content
	Replacer text.TextReplacer
	// Command is the substitution to apply
	Command *command.Command
	// Jobs is how many files are processed at once, 1 is serial
	Jobs int
	// DryRun renders diffs instead of writing
	DryRun bool
	// Logger receives one entry per file
	Logger *log.Logger
}

// 📊 Summary totals the outcome of a run
type Summary struct {
	Files        int
	Modified     int
	Skipped      int
	Replacements int
}

// RunSummary converts the totals for the console summary box.
func (s Summary) RunSummary(dryRun bool) log.RunSummary {
	return log.RunSummary{
		Files:        s.Files,
		Modified:     s.Modified,
		Skipped:      s.Skipped,
		Replacements: s.Replacements,
		DryRun:       dryRun,
	}
}

func (s *Summary) add(op log.FileOperation) {
	if op.IsModified {
		s.Modified++
	}
	if op.IsSkipped {
		s.Skipped++
	}
	s.Replacements += op.Replacements
}
