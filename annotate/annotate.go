// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package annotate combines a phylogenetic tree
// with a table of annotations.
package annotate

import (
	"github.com/js-arias/phyjson/annotation"
	"github.com/js-arias/phyjson/tree"
)

// Stats is a summary of a join
// between a tree and an annotation table.
type Stats struct {
	// Annotated is the number of nodes
	// with a row in the table.
	Annotated int

	// Matched are the rows of the table
	// that match at least one node,
	// in alphabetical order.
	Matched []string

	// Missing are the named nodes
	// without a row in the table.
	Missing []string

	// Unused are the rows of the table
	// that do not match any node.
	Unused []string
}

// Join copies the values of each row of the table
// into the fields of the tree nodes
// with the same name.
// Nodes without a row in the table are not modified.
func Join(t *tree.Tree, tab *annotation.Table) Stats {
	var st Stats
	used := make(map[string]bool)
	for _, n := range t.Nodes() {
		row, ok := tab.Row(n.Name)
		if !ok {
			if n.Name != "" {
				st.Missing = append(st.Missing, n.Name)
			}
			continue
		}
		for f, v := range row {
			n.Set(f, v)
		}
		used[n.Name] = true
		st.Annotated++
	}

	for _, name := range tab.Names() {
		if used[name] {
			st.Matched = append(st.Matched, name)
			continue
		}
		st.Unused = append(st.Unused, name)
	}
	return st
}

// Load reads a tree and an annotation table
// and returns the tree annotated with the table,
// and the fields of the table.
//
// If format is empty,
// the tree format is derived
// from the extension of the tree file.
// If the tree file is a collection of trees,
// treeName is the name of the tree to be read.
func Load(treeFile, format, treeName, annotationFile string) (*tree.Tree, []string, error) {
	t, err := ReadTreeFile(treeFile, format, treeName)
	if err != nil {
		return nil, nil, err
	}
	tab, err := ReadTableFile(annotationFile)
	if err != nil {
		return nil, nil, err
	}

	Join(t, tab)
	return t, tab.Fields(), nil
}
