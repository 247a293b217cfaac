// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyjson/newick"
)

const nexusFile = `#NEXUS
[a file with two trees]
begin taxa;
	dimensions ntax=3;
	taxlabels A 'B b' C;
end;

begin trees;
	translate
		1 A,
		2 'B b',
		3 C;
	tree 'first tree' = [&R] (1:0.5,(2,3)80)D;
	tree second = (1,2,3);
end;
`

func TestReadNexus(t *testing.T) {
	tr, err := newick.ReadNexus(strings.NewReader(nexusFile))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if tr.Name != "first tree" {
		t.Errorf("tree name: got %q, want %q", tr.Name, "first tree")
	}
	var nodes []string
	for _, n := range tr.Nodes() {
		nodes = append(nodes, n.Name)
	}
	want := []string{"D", "A", "", "B b", "C"}
	if !reflect.DeepEqual(nodes, want) {
		t.Errorf("nodes: got %q, want %q", nodes, want)
	}
	if s := shape(tr.Root); s != "(,(,))" {
		t.Errorf("shape: got %q, want %q", s, "(,(,))")
	}

	a := tr.Root.Children[0]
	if !a.HasLength || a.Length != 0.5 {
		t.Errorf("node %q: length: got %.2f, want 0.5", a.Name, a.Length)
	}
	bc := tr.Root.Children[1]
	if !bc.HasSupport || bc.Support != 80 {
		t.Errorf("node (B,C): support: got %.2f, want 80", bc.Support)
	}
}

func TestReadNexusWithoutTranslate(t *testing.T) {
	in := "#nexus\nBEGIN TREES;\n\tUTREE * best = (A,B)C;\nEND;\n"
	tr, err := newick.ReadNexus(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Name != "best" {
		t.Errorf("tree name: got %q, want %q", tr.Name, "best")
	}
	if tr.Root.Name != "C" {
		t.Errorf("root: got %q, want %q", tr.Root.Name, "C")
	}
}

func TestReadNexusError(t *testing.T) {
	tests := map[string]string{
		"no header":       "begin trees; tree a = (A,B); end;",
		"no trees block":  "#NEXUS\nbegin taxa; dimensions ntax=2; end;\n",
		"no tree":         "#NEXUS\nbegin trees; end;\n",
		"tree without =":  "#NEXUS\nbegin trees; tree a (A,B); end;\n",
		"bad translation": "#NEXUS\nbegin trees; translate 1 A B, 2 C; tree a = (1,2); end;\n",
		"bad tree":        "#NEXUS\nbegin trees; tree a = (A,(B,C); end;\n",
	}

	for name, in := range tests {
		if _, err := newick.ReadNexus(strings.NewReader(in)); err == nil {
			t.Errorf("%s: expecting error for %q", name, in)
		}
	}
}
