package main

import (
	"context"
	"io"
	"os"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/replacetext/pkg/command"
	"github.com/walteh/replacetext/pkg/config"
	"github.com/walteh/replacetext/pkg/filter"
	"github.com/walteh/replacetext/pkg/log"
	"github.com/walteh/replacetext/pkg/operation"
	"github.com/walteh/replacetext/pkg/pathtree"
	"github.com/walteh/replacetext/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// rootFlags holds the values bound to the root command's flags
type rootFlags struct {
	configFile string
	debug      bool
	dryRun     bool
	jobs       int
	include    []string
	exclude    []string
	gitignore  bool
	color      string
}

// newRootCmd builds the command tree. Console output goes to out.
func newRootCmd(out io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "replacetext [flags] COMMAND PATH...",
		Short: "Apply a sed style substitution to files and directories",
		Long: `replacetext rewrites the content of every file under the given paths
with a substitute command of the form s/pattern/replacement/flags.

Directories are walked recursively. Any delimiter other than a backslash,
newline, whitespace or an ASCII letter or digit may replace "/".
Supported flags are g (all matches), i (ignore case), m (multi-line) and
s (dot matches newline).`,
		Example: `  replacetext 's/hoge/piyo/g' ./src
  replacetext --dry-run --include '**/*.go' 's|old/pkg|new/pkg|g' .`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), out, flags, cmd.Flags(), args[0], args[1:])
		},
	}

	addRootFlags(cmd, flags)
	cmd.AddCommand(newVersionCmd(out))

	return cmd
}

// addRootFlags binds the flags of the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", "", "config file path (default "+config.DefaultPath+" if present)")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "show a diff instead of writing files")
	cmd.Flags().IntVarP(&flags.jobs, "jobs", "j", 0, "files processed in parallel (default number of CPUs)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "only process files matching these globs")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "skip files matching these globs")
	cmd.Flags().BoolVar(&flags.gitignore, "gitignore", false, "skip files ignored by .gitignore")
	cmd.Flags().StringVar(&flags.color, "color", "", "color output: auto, always or never")
}

// loadConfig reads the config file and lets explicitly set flags win over
// its values
func loadConfig(ctx context.Context, flags *rootFlags, set *pflag.FlagSet) (*config.Config, error) {
	cfg := config.Default()

	path := flags.configFile
	if path == "" {
		if _, err := os.Stat(config.DefaultPath); err == nil {
			path = config.DefaultPath
		}
	}
	if path != "" {
		loaded, err := config.Load(ctx, path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if set.Changed("include") {
		cfg.Include = flags.include
	}
	if set.Changed("exclude") {
		cfg.Exclude = flags.exclude
	}
	if set.Changed("gitignore") {
		cfg.Gitignore = flags.gitignore
	}
	if set.Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if set.Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if set.Changed("color") {
		cfg.Color = config.ColorMode(flags.color)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// run parses the command, builds the path tree from every input and
// applies the substitution to the selected files
func run(ctx context.Context, out io.Writer, flags *rootFlags, set *pflag.FlagSet, commandText string, paths []string) error {
	level := zerolog.InfoLevel
	if flags.debug {
		level = zerolog.DebugLevel
	}

	cfg, err := loadConfig(ctx, flags, set)
	if err != nil {
		return err
	}

	log.SetColor(log.ColorEnabled(string(cfg.Color), os.Stderr))
	logger := log.New(out, level)
	ctx = log.NewContext(ctx, logger)

	cmd, err := command.Parse(commandText)
	if err != nil {
		return err
	}

	fs := osfs.New("/")
	tree := pathtree.New(pathtree.WithFilesystem(fs))

	// every input is tried so all bad paths are reported at once
	var addErrs []error
	for _, p := range paths {
		if err := tree.Add(ctx, p); err != nil {
			addErrs = append(addErrs, err)
		}
	}
	if len(addErrs) > 0 {
		return errors.Join(addErrs...)
	}

	for _, w := range tree.Warnings() {
		logger.Warning(w.String())
	}

	f, err := filter.New(fs, filter.Options{
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
		Gitignore: cfg.Gitignore,
	})
	if err != nil {
		return err
	}
	files, err := f.Select(ctx, tree)
	if err != nil {
		return err
	}

	logger.Header(cmd.String())
	if len(files) == 0 {
		logger.Warningf("no files selected from %d paths", len(paths))
	}

	runner, err := operation.NewRunner(operation.Options{
		FS:       fs,
		Replacer: text.NewRegexpTextReplacer(),
		Command:  cmd,
		Jobs:     cfg.Jobs,
		DryRun:   cfg.DryRun,
		Logger:   logger,
	})
	if err != nil {
		return errors.Errorf("creating runner: %w", err)
	}

	summary, err := runner.Run(ctx, files)
	if err != nil {
		return err
	}

	logger.LogNewline()
	logger.Summary(summary.RunSummary(cfg.DryRun))
	switch {
	case cfg.DryRun:
		logger.Info("dry run, no files were written")
	case summary.Modified == 0:
		logger.Info("nothing to replace")
	default:
		logger.Successf("updated %d of %d files", summary.Modified, summary.Files)
	}
	return nil
}
