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
	"slices"
)

// NodeID indexes a node in the tree's arena.
type NodeID int

const (
	rootID   NodeID = 0
	noParent NodeID = -1
)

// node is the arena record behind a Node handle.
type node struct {
	name         string
	isDirectory  bool
	isTarget     bool
	originalPath string
	parent       NodeID
	children     map[string]NodeID
	order        []NodeID // children in insertion order
}

// Node is a read-only handle to one entry of a Tree.
type Node struct {
	tree *Tree
	id   NodeID
}

func (n Node) rec() *node {
	return &n.tree.nodes[n.id]
}

// ID returns the arena index of the node.
func (n Node) ID() NodeID { return n.id }

// Name is the single path segment of the node, "" for the root.
func (n Node) Name() string { return n.rec().name }

// IsDirectory is fixed when the node is created.
func (n Node) IsDirectory() bool { return n.rec().isDirectory }

// IsTarget reports whether the node was selected for processing rather
// than only being an ancestor of a selected node.
func (n Node) IsTarget() bool { return n.rec().isTarget }

// OriginalPath is the absolute path computed when the node was created.
func (n Node) OriginalPath() string { return n.rec().originalPath }

// IsRoot reports whether this is the synthetic root.
func (n Node) IsRoot() bool { return n.id == rootID }

// Path joins the names from the root (exclusive) down to the node.
func (n Node) Path() string {
	return joinTokens(n.Segments(), filepath.Separator)
}

// Segments returns the names from the root (exclusive) down to the node.
func (n Node) Segments() []string {
	var names []string
	for id := n.id; id != rootID && id != noParent; id = n.tree.nodes[id].parent {
		names = append(names, n.tree.nodes[id].name)
	}
	slices.Reverse(names)
	return names
}

// Parent returns the owning node; the root has none.
func (n Node) Parent() (Node, bool) {
	p := n.rec().parent
	if p == noParent {
		return Node{}, false
	}
	return Node{tree: n.tree, id: p}, true
}

// Child looks up a direct child by name.
func (n Node) Child(name string) (Node, bool) {
	id, ok := n.rec().children[name]
	if !ok {
		return Node{}, false
	}
	return Node{tree: n.tree, id: id}, true
}

// Children returns the direct children in insertion order.
func (n Node) Children() []Node {
	order := n.rec().order
	out := make([]Node, len(order))
	for i, id := range order {
		out[i] = Node{tree: n.tree, id: id}
	}
	return out
}
