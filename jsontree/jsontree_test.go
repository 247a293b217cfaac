// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package jsontree_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/phyjson/annotate"
	"github.com/js-arias/phyjson/annotation"
	"github.com/js-arias/phyjson/jsontree"
	"github.com/js-arias/phyjson/newick"
	"github.com/js-arias/phyjson/tree"
)

func annotatedTree(t testing.TB, nwk, ann string) (*tree.Tree, []string) {
	t.Helper()

	tr, err := newick.Read(strings.NewReader(nwk))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	tab, err := annotation.ReadTSV(strings.NewReader(ann))
	if err != nil {
		t.Fatalf("unable to read table: %v", err)
	}
	annotate.Join(tr, tab)
	return tr, tab.Fields()
}

const example = `{
 "tree": {
  "children": [
   {
    "host": "human",
    "children": []
   },
   {
    "children": [
     {
      "host": "mouse",
      "children": []
     },
     {
      "children": []
     }
    ]
   }
  ]
 }
}`

func TestWrite(t *testing.T) {
	tr, fields := annotatedTree(t, "(A,(B,C)D)E;", "name\thost\nA\thuman\nB\tmouse\n")

	obj := jsontree.Convert(tr, nil, fields, jsontree.Options{})
	var w bytes.Buffer
	if err := jsontree.Write(&w, obj); err != nil {
		t.Fatalf("unable to write JSON: %v", err)
	}
	if w.String() != example {
		t.Errorf("output:\ngot:\n%s\nwant:\n%s\n", w.String(), example)
	}

	// idempotence
	var w2 bytes.Buffer
	if err := jsontree.Write(&w2, jsontree.Convert(tr, nil, fields, jsontree.Options{})); err != nil {
		t.Fatalf("unable to write JSON: %v", err)
	}
	if !bytes.Equal(w.Bytes(), w2.Bytes()) {
		t.Errorf("output is not reproducible")
	}
}

// shape returns the number of nodes,
// the depth,
// and the branching of a decoded JSON tree.
func shape(t testing.TB, v any, key string) (nodes, depth int, branching string) {
	t.Helper()

	obj, ok := v.(map[string]any)
	if !ok {
		t.Fatalf("node is not an object: %v", v)
	}
	children, ok := obj[key].([]any)
	if !ok {
		t.Fatalf("node without %q array: %v", key, obj)
	}
	nodes = 1
	var b strings.Builder
	b.WriteByte('(')
	for i, c := range children {
		n, d, br := shape(t, c, key)
		nodes += n
		depth = max(depth, d)
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(br)
	}
	b.WriteByte(')')
	if len(children) == 0 {
		return nodes, 1, ""
	}
	return nodes, depth + 1, b.String()
}

func TestShape(t *testing.T) {
	tests := map[string]string{
		"example":     "(A,(B,C)D)E;",
		"caterpillar": "((((A,B),C),D),E);",
		"polytomy":    "(A,B,C,(D,E,F,G),H);",
		"single":      "A;",
	}

	for name, nwk := range tests {
		tr, fields := annotatedTree(t, nwk, "name\thost\nA\thuman\n")
		var w bytes.Buffer
		if err := jsontree.Write(&w, jsontree.Convert(tr, nil, fields, jsontree.Options{})); err != nil {
			t.Fatalf("%s: unable to write JSON: %v", name, err)
		}

		var doc map[string]any
		if err := json.Unmarshal(w.Bytes(), &doc); err != nil {
			t.Fatalf("%s: unable to decode JSON: %v", name, err)
		}
		nodes, depth, _ := shape(t, doc["tree"], "children")
		if nodes != tr.Len() {
			t.Errorf("%s: nodes: got %d, want %d", name, nodes, tr.Len())
		}
		if depth != tr.Depth() {
			t.Errorf("%s: depth: got %d, want %d", name, depth, tr.Depth())
		}
	}
}

func TestStructuralFields(t *testing.T) {
	ann := "name\tchildren\tclades\thost\nA\tx\ty\thuman\n"
	tr, fields := annotatedTree(t, "(A,B)C;", ann)

	var w bytes.Buffer
	if err := jsontree.Write(&w, jsontree.Convert(tr, nil, fields, jsontree.Options{})); err != nil {
		t.Fatalf("unable to write JSON: %v", err)
	}

	var doc struct {
		Tree struct {
			Children []map[string]any `json:"children"`
		} `json:"tree"`
	}
	if err := json.Unmarshal(w.Bytes(), &doc); err != nil {
		t.Fatalf("unable to decode JSON: %v", err)
	}
	a := doc.Tree.Children[0]
	if _, ok := a["clades"]; ok {
		t.Errorf("field %q copied into output", "clades")
	}
	if c, ok := a["children"].([]any); !ok || len(c) != 0 {
		t.Errorf("children: got %v, want an empty array", a["children"])
	}
	if a["host"] != "human" {
		t.Errorf("host: got %v, want %q", a["host"], "human")
	}
}

func TestOptions(t *testing.T) {
	tr, fields := annotatedTree(t, "(A:1,B:0.5)C;", "name\tdescendants\tname2\nA\tx\t<a&b>\n")

	obj := jsontree.Convert(tr, nil, fields, jsontree.Options{
		ChildrenKey: "descendants",
		Names:       true,
		Lengths:     true,
	})
	var w bytes.Buffer
	if err := jsontree.Write(&w, obj); err != nil {
		t.Fatalf("unable to write JSON: %v", err)
	}

	want := `{
 "tree": {
  "name": "C",
  "descendants": [
   {
    "name": "A",
    "branch_length": 1.0,
    "name2": "<a&b>",
    "descendants": []
   },
   {
    "name": "B",
    "branch_length": 0.5,
    "descendants": []
   }
  ]
 }
}`
	if w.String() != want {
		t.Errorf("output:\ngot:\n%s\nwant:\n%s\n", w.String(), want)
	}
}

func TestSupport(t *testing.T) {
	tr, fields := annotatedTree(t, "((A,B)95,C);", "name\tconfidence\thost\nA\t1\thuman\n")

	obj := jsontree.Convert(tr, nil, fields, jsontree.Options{Support: true})
	var w bytes.Buffer
	if err := jsontree.Write(&w, obj); err != nil {
		t.Fatalf("unable to write JSON: %v", err)
	}

	want := `{
 "tree": {
  "children": [
   {
    "confidence": 95.0,
    "children": [
     {
      "host": "human",
      "children": []
     },
     {
      "children": []
     }
    ]
   },
   {
    "children": []
   }
  ]
 }
}`
	if w.String() != want {
		t.Errorf("output:\ngot:\n%s\nwant:\n%s\n", w.String(), want)
	}

	// without the option,
	// the support value is not stored
	// and the field is stored as any other field
	obj = jsontree.Convert(tr, nil, fields, jsontree.Options{})
	root, _ := obj.Get("tree")
	ab := children(t, root)[0]
	if _, ok := ab.Get("confidence"); ok {
		t.Errorf("unexpected support value without the option")
	}
	a := children(t, ab)[0]
	if v, ok := a.Get("confidence"); !ok || !reflect.DeepEqual(v, annotation.IntValue(1)) {
		t.Errorf("field confidence: got %v, want 1", v)
	}
}

func children(t testing.TB, v any) []*jsontree.Object {
	t.Helper()

	obj, ok := v.(*jsontree.Object)
	if !ok {
		t.Fatalf("got %T, want a node object", v)
	}
	c, _ := obj.Get("children")
	ls, ok := c.([]*jsontree.Object)
	if !ok {
		t.Fatalf("children: got %T, want a list of nodes", c)
	}
	return ls
}

func TestTreeFields(t *testing.T) {
	tr, fields := annotatedTree(t, "(A,B)C;", "name\thost\nA\thuman\n")
	tr.Fields = map[string]annotation.Value{
		"title": annotation.StringValue("flu"),
		"tree":  annotation.StringValue("ignored"),
	}

	obj := jsontree.Convert(tr, []string{"title", "tree", "undefined"}, fields, jsontree.Options{})
	keys := []string{"title", "tree"}
	if g := obj.Keys(); !reflect.DeepEqual(g, keys) {
		t.Errorf("keys: got %v, want %v", g, keys)
	}
	v, _ := obj.Get("tree")
	if _, ok := v.(*jsontree.Object); !ok {
		t.Errorf("key %q: got %T, want a node object", "tree", v)
	}
}

func TestWriteFile(t *testing.T) {
	tr, fields := annotatedTree(t, "(A,(B,C)D)E;", "name\thost\nA\thuman\nB\tmouse\n")

	name := filepath.Join(t.TempDir(), "tree.json")
	if err := jsontree.WriteFile(name, jsontree.Convert(tr, nil, fields, jsontree.Options{})); err != nil {
		t.Fatalf("unable to write file: %v", err)
	}
	b, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read file: %v", err)
	}
	if string(b) != example {
		t.Errorf("output:\ngot:\n%s\nwant:\n%s\n", string(b), example)
	}

	bad := filepath.Join(t.TempDir(), "missing", "tree.json")
	if err := jsontree.WriteFile(bad, jsontree.Convert(tr, nil, fields, jsontree.Options{})); err == nil {
		t.Errorf("expecting error when writing to %q", bad)
	}
}
