// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotate

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/js-arias/phyjson/annotation"
	"github.com/js-arias/phyjson/newick"
	"github.com/js-arias/phyjson/tree"
	"github.com/js-arias/timetree"
)

// MillionYears is used to transform ages
// of time calibrated trees
// into branch lengths.
const MillionYears = 1_000_000

// Tree file formats.
var (
	newickFormats = []string{"newick", "nwk", "nh", "tre", "tree"}
	nexusFormats  = []string{"nex", "nexus"}
	tsvFormats    = []string{"tab", "tsv"}
)

// Formats returns the names of the recognized tree formats.
func Formats() []string {
	f := slices.Concat(newickFormats, nexusFormats, tsvFormats)
	slices.Sort(f)
	return f
}

// Format returns the format of a tree file.
// If format is empty,
// the format is the extension of the file name
// (i.e., the text after the last dot).
func Format(name, format string) string {
	if format != "" {
		return strings.ToLower(format)
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		return strings.ToLower(name[i+1:])
	}
	return strings.ToLower(name)
}

// ReadTree reads a tree in the given format.
//
// If the format is a tab-delimited file
// with a collection of time calibrated trees,
// the tree with the given name is returned,
// or the first tree of the collection,
// if name is empty.
func ReadTree(r io.Reader, format, name string) (*tree.Tree, error) {
	switch {
	case slices.Contains(newickFormats, format):
		t, err := newick.Read(r)
		if err != nil {
			return nil, err
		}
		t.Name = name
		return t, nil
	case slices.Contains(nexusFormats, format):
		t, err := newick.ReadNexus(r)
		if err != nil {
			return nil, err
		}
		if name != "" {
			t.Name = name
		}
		return t, nil
	case slices.Contains(tsvFormats, format):
		c, err := timetree.ReadTSV(r)
		if err != nil {
			return nil, err
		}
		return fromTimeTree(c, name)
	}
	return nil, fmt.Errorf("unknown tree format %q (valid formats: %s)", format, strings.Join(Formats(), ", "))
}

// ReadTreeFile reads a tree from a file.
// If format is empty,
// it will be derived from the file extension.
func ReadTreeFile(name, format, treeName string) (*tree.Tree, error) {
	format = Format(name, format)
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadTree(f, format, treeName)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

// ReadTableFile reads an annotation table from a file.
func ReadTableFile(name string) (*annotation.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tab, err := annotation.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return tab, nil
}

func fromTimeTree(c *timetree.Collection, name string) (*tree.Tree, error) {
	ls := c.Names()
	if len(ls) == 0 {
		return nil, fmt.Errorf("no tree found")
	}
	if name == "" {
		name = ls[0]
	}
	tt := c.Tree(name)
	if tt == nil {
		return nil, fmt.Errorf("tree %q not found", name)
	}

	t := &tree.Tree{Name: tt.Name()}
	t.Root = copyTimeNode(tt, tt.Root())
	return t, nil
}

func copyTimeNode(tt *timetree.Tree, id int) *tree.Node {
	n := &tree.Node{
		Name: tt.Taxon(id),
	}
	for _, c := range tt.Children(id) {
		cn := copyTimeNode(tt, c)
		cn.Length = float64(tt.Age(id)-tt.Age(c)) / MillionYears
		cn.HasLength = true
		n.Children = append(n.Children, cn)
	}
	return n
}
