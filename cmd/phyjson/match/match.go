// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package match implements a command to report
// the names shared by a tree and an annotation table.
package match

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phyjson/annotate"
	"github.com/js-arias/phyjson/annotation"
	"github.com/js-arias/phyjson/tree"
)

var Command = &command.Command{
	Usage: `match [--treeformat <format>] [--tree <name>]
	[--terms] [-o|--output <file>]
	<tree-file> <annotation-file>`,
	Short: "report names shared by a tree and an annotation table",
	Long: `
Command match reads a tree and an annotation table and prints the number of
nodes of the tree with an annotation, the names of the nodes without
annotations, and the names in the annotation table that are not found in the
tree.

The first argument of the command is the tree file. By default, the format of
the tree is the extension of the file name. Use the flag --treeformat to set
a different format. If the tree file is a collection of trees, the flag
--tree sets the name of the tree to be used.

The second argument is the annotation file.

By default, all named nodes without annotations are reported. If the flag
--terms is set, only terminals without annotations are reported.

If the flag --output, or -o, is set, the rows of the annotation table that
match a node of the tree will be written as a tab-delimited annotation file
with the indicated name.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFormat string
var treeName string
var termsFlag bool
var output string

func setFlags(c *command.Command) {
	addFlags(c.Flags())
}

// addFlags defines the command flags
// using the current values as defaults.
func addFlags(fs *flag.FlagSet) {
	fs.StringVar(&treeFormat, "treeformat", treeFormat, "")
	fs.StringVar(&treeName, "tree", treeName, "")
	fs.BoolVar(&termsFlag, "terms", termsFlag, "")
	fs.StringVar(&output, "output", output, "")
	fs.StringVar(&output, "o", output, "")
}

// trailingFlags parses the flags
// given after the positional arguments
// and returns the positional arguments.
func trailingFlags(args []string, n int) ([]string, error) {
	if len(args) <= n {
		return args, nil
	}
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
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
	args, err := trailingFlags(args, 2)
	if err != nil {
		return c.UsageError(err.Error())
	}

	t, err := annotate.ReadTreeFile(args[0], treeFormat, treeName)
	if err != nil {
		return err
	}
	tab, err := annotate.ReadTableFile(args[1])
	if err != nil {
		return err
	}

	st := annotate.Join(t, tab)
	if termsFlag {
		st.Missing = termsOnly(t, st.Missing)
	}
	report(c.Stdout(), t.Len(), st)

	if output != "" {
		if err := writeMatched(output, tab, st.Matched); err != nil {
			return err
		}
	}
	return nil
}

func report(w io.Writer, nodes int, st annotate.Stats) {
	fmt.Fprintf(w, "nodes\t%d\n", nodes)
	fmt.Fprintf(w, "annotated\t%d\n", st.Annotated)
	for _, n := range st.Missing {
		fmt.Fprintf(w, "missing\t%s\n", n)
	}
	for _, n := range st.Unused {
		fmt.Fprintf(w, "unused\t%s\n", n)
	}
}

// termsOnly returns the names
// that are terminals of the tree.
func termsOnly(t *tree.Tree, names []string) []string {
	terms := make(map[string]bool)
	for _, tax := range t.Terms() {
		terms[tax] = true
	}

	var ls []string
	for _, n := range names {
		if terms[n] {
			ls = append(ls, n)
		}
	}
	return ls
}

// matchedTable returns a table
// with the rows of the given names.
func matchedTable(tab *annotation.Table, names []string) *annotation.Table {
	m := annotation.New(tab.Fields()...)
	for _, n := range names {
		row, ok := tab.Row(n)
		if !ok {
			continue
		}
		m.Add(n, row)
	}
	return m
}

func writeMatched(name string, tab *annotation.Table, names []string) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := matchedTable(tab, names).TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
