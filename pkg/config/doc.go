/*
Package config loads the optional replacetext settings file.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	   +---------+-----+-----+---------+
	   |         |           |         |
	+--+---+ +---+--+    +---+--+  +---+--+
	| YAML | | JSON |    | HCL  |  | TOML |
	+------+ +------+    +------+  +------+

🎯 Purpose:
- Reads include/exclude globs, gitignore handling, parallelism and output
  settings from a file
- Rejects unknown fields in every format
- Fills in defaults for anything left unset

🔄 Flow:
1. The parser is picked by file extension
2. The file is decoded on top of Default()
3. Validate checks values and normalizes the rest

Flags given on the command line win over values loaded here.

🔍 Example:

	cfg, err := config.Load(ctx, ".replacetext.yaml")
	if err != nil {
		return err
	}
	fmt.Println(cfg.Jobs, cfg.Color)
*/
package config
