// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements a rooted phylogenetic tree
// whose nodes can hold annotation fields.
package tree

import "github.com/js-arias/phyjson/annotation"

// A Tree is a rooted tree.
type Tree struct {
	// Name is the name of the tree,
	// it can be empty.
	Name string

	// Root is the root node of the tree.
	Root *Node

	// Fields are annotations
	// attached to the tree as a whole.
	Fields map[string]annotation.Value
}

// A Node is a node of a tree,
// either a terminal or an internal node.
type Node struct {
	// Name of the node.
	// In a terminal is usually the taxon name.
	Name string

	// Length is the length of the branch
	// that connects the node with its parent.
	// It is only meaningful if HasLength is true.
	Length    float64
	HasLength bool

	// Support is the support value of the node
	// (e.g., a bootstrap frequency).
	// It is only meaningful if HasSupport is true.
	Support    float64
	HasSupport bool

	// Fields are the annotations of the node.
	Fields map[string]annotation.Value

	// Children of the node,
	// in input order.
	Children []*Node
}

// Set sets the value of an annotation field.
func (n *Node) Set(field string, v annotation.Value) {
	if n.Fields == nil {
		n.Fields = make(map[string]annotation.Value)
	}
	n.Fields[field] = v
}

// Field returns the value of an annotation field
// and reports if the node has the field.
func (n *Node) Field(field string) (annotation.Value, bool) {
	v, ok := n.Fields[field]
	return v, ok
}

// IsTerm returns true if the node is a terminal.
func (n *Node) IsTerm() bool {
	return len(n.Children) == 0
}

// Nodes returns all the nodes of the tree
// in pre-order.
func (t *Tree) Nodes() []*Node {
	if t.Root == nil {
		return nil
	}
	var ls []*Node
	stack := []*Node{t.Root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ls = append(ls, n)
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return ls
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.Nodes())
}

// Terms returns the names of the terminals
// in pre-order.
func (t *Tree) Terms() []string {
	var terms []string
	for _, n := range t.Nodes() {
		if n.IsTerm() {
			terms = append(terms, n.Name)
		}
	}
	return terms
}

// Depth returns the number of nodes
// in the longest path from the root to a terminal.
func (t *Tree) Depth() int {
	if t.Root == nil {
		return 0
	}
	return depth(t.Root)
}

func depth(n *Node) int {
	d := 0
	for _, c := range n.Children {
		d = max(d, depth(c))
	}
	return d + 1
}
