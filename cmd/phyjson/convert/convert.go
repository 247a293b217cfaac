// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package convert implements a command to annotate a tree
// and write it as a JSON tree.
package convert

import (
	"flag"
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/phyjson/annotate"
	"github.com/js-arias/phyjson/jsontree"
)

var Command = &command.Command{
	Usage: `convert [--treeformat <format>] [--tree <name>]
	[--children <key>] [--names] [--lengths] [--support]
	<tree-file> <annotation-file> <output-file>`,
	Short: "convert an annotated tree into a JSON tree",
	Long: `
Command convert reads a tree and an annotation table, adds the annotations to
the nodes of the tree with the same name, and writes the annotated tree as a
JSON document.

The first argument of the command is the tree file. By default, the format of
the tree is the extension of the file name. Use the flag --treeformat to set
a different format. See "phyjson help tree-formats" for the recognized
formats. If the tree file is a collection of trees, the flag --tree sets the
name of the tree to be converted.

The second argument is the annotation file, a tab-delimited file with a
"name" column. See "phyjson help annotation-files".

The third argument is the name of the output file. See
"phyjson help json-trees" for a description of the output.

By default, the descendants of each node are stored with the key "children".
Use the flag --children to set a different key.

By default, node names and branch lengths are not stored. Use the flag
--names to store the node name with the key "name", and the flag --lengths to
store the branch length with the key "branch_length". Numeric labels of
internal nodes in newick trees are support values, not names; use the flag
--support to store them with the key "confidence".

Flags can also be given after the output file, for example:

	phyjson convert tree.txt annotations.tab tree.json --treeformat newick
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFormat string
var treeName string
var childrenKey = jsontree.ChildrenKey
var namesFlag bool
var lengthsFlag bool
var supportFlag bool

func setFlags(c *command.Command) {
	addFlags(c.Flags())
}

// addFlags defines the command flags
// using the current values as defaults.
func addFlags(fs *flag.FlagSet) {
	fs.StringVar(&treeFormat, "treeformat", treeFormat, "")
	fs.StringVar(&treeName, "tree", treeName, "")
	fs.StringVar(&childrenKey, "children", childrenKey, "")
	fs.BoolVar(&namesFlag, "names", namesFlag, "")
	fs.BoolVar(&lengthsFlag, "lengths", lengthsFlag, "")
	fs.BoolVar(&supportFlag, "support", supportFlag, "")
}

// trailingFlags parses the flags
// given after the positional arguments
// and returns the positional arguments.
func trailingFlags(args []string, n int) ([]string, error) {
	if len(args) <= n {
		return args, nil
	}
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	addFlags(fs)
	if err := fs.Parse(args[n:]); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("too many arguments")
	}
	return args[:n], nil
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting annotation file")
	}
	if len(args) < 3 {
		return c.UsageError("expecting output file")
	}
	args, err := trailingFlags(args, 3)
	if err != nil {
		return c.UsageError(err.Error())
	}

	t, fields, err := annotate.Load(args[0], treeFormat, treeName, args[1])
	if err != nil {
		return err
	}

	obj := jsontree.Convert(t, nil, fields, jsontree.Options{
		ChildrenKey: childrenKey,
		Names:       namesFlag,
		Lengths:     lengthsFlag,
		Support:     supportFlag,
	})
	if err := jsontree.WriteFile(args[2], obj); err != nil {
		return err
	}
	return nil
}
