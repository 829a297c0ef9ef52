/*
Package pathtree turns a list of user supplied paths into a deduplicated
tree of targets.

	          (root)
	            |
	           "/"
	            |
	          "home"            not a target, only routes to "proj"
	            |
	          "proj"   <- Add("~/proj") marks it and expands it
	         /      \
	   "main.go"   "pkg"        targets found by expansion
	                 |
	             "util.go"

🎯 Purpose:
- Accept overlapping inputs ("proj", "proj/pkg/util.go", "proj" again)
  without producing duplicate targets
- Expand directories into every file and subdirectory beneath them
- Give callers lookup (FindNode) and pre-order traversal (All, Targets, Files)

📦 Storage:
Nodes live in an arena owned by the Tree and refer to their parent and
children by NodeID. Node values handed out to callers are small handles
into that arena.

⚡ Invariants:
- the root is a directory, never a target, and has no parent
- a node's directory flag never changes after creation
- a node's target flag only ever goes from false to true
- sibling names are unique

🔍 Example:

	tree := pathtree.New()
	if err := tree.Add(ctx, "./src"); err != nil {
		return err
	}
	for file := range tree.Files() {
		fmt.Println(file.Path())
	}
*/
package pathtree
