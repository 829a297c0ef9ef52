/*
Package operation applies a parsed substitution to the selected files.

	+-------------+
	|   Runner    |
	|  (errgroup) |
	+------+------+
	       |
	+------+------+
	|  Replacer   |
	| (Transform) |
	+------+------+
	       |
	+------+------+
	| billy.FS    |
	| write/diff  |
	+-------------+

🎯 Purpose:
- Reads every selected file through a billy filesystem
- Runs the text replacer over the whole content
- Writes modified files back in place, or renders a diff on dry runs
- Reports one log.FileOperation per file and totals the run

🔄 Flow:
1. The path tree is built and frozen by the caller
2. Run fans the files out to at most Jobs workers
3. Binary files are skipped, unchanged files left alone
4. The first read or write failure stops the run

Files are independent of each other, so no ordering holds between them
once Jobs is above one.

🔍 Example:

	runner, err := operation.NewRunner(operation.Options{
		FS:       osfs.New("/"),
		Replacer: text.NewRegexpTextReplacer(),
		Command:  cmd,
		Jobs:     4,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	summary, err := runner.Run(ctx, files)
*/
package operation
