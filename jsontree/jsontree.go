// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package jsontree converts an annotated tree
// into a nested JSON document.
//
// The document is an object with the key "tree",
// and each node is an object
// with the annotation fields of the node
// and an array with the node children.
// For example:
//
//	{
//	 "tree": {
//	  "children": [
//	   {
//	    "host": "human",
//	    "children": []
//	   },
//	   ...
//	  ]
//	 }
//	}
package jsontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/js-arias/phyjson/annotation"
	"github.com/js-arias/phyjson/tree"
)

// Default keys of the output document.
const (
	TreeKey     = "tree"
	ChildrenKey = "children"
	CladesKey   = "clades"
	NameKey     = "name"
	LengthKey   = "branch_length"
	SupportKey  = "confidence"
)

// Options modify the conversion of a tree.
type Options struct {
	// ChildrenKey is the key used for the children array.
	// If empty, "children" is used.
	ChildrenKey string

	// If Names is true,
	// the name of each node is stored
	// using the "name" key.
	Names bool

	// If Lengths is true,
	// the branch length of each node
	// (when defined)
	// is stored using the "branch_length" key.
	Lengths bool

	// If Support is true,
	// the support value of each node
	// (when defined)
	// is stored using the "confidence" key.
	Support bool
}

// Convert returns a JSON object
// with the tree fields given in treeFields,
// and the tree nodes stored under the key "tree".
// For each node,
// only the fields in nodeFields are stored.
// Fields named as the structural keys
// (i.e., "clades" or the children key)
// are never stored.
func Convert(t *tree.Tree, treeFields, nodeFields []string, opt Options) *Object {
	if opt.ChildrenKey == "" {
		opt.ChildrenKey = ChildrenKey
	}

	obj := NewObject()
	for _, f := range treeFields {
		if f == TreeKey {
			continue
		}
		if v, ok := t.Fields[f]; ok {
			obj.Set(f, v)
		}
	}

	skip := []string{CladesKey, opt.ChildrenKey}
	if opt.Names {
		skip = append(skip, NameKey)
	}
	if opt.Lengths {
		skip = append(skip, LengthKey)
	}
	if opt.Support {
		skip = append(skip, SupportKey)
	}
	fields := make([]string, 0, len(nodeFields))
	for _, f := range nodeFields {
		if slices.Contains(skip, f) {
			continue
		}
		fields = append(fields, f)
	}

	c := converter{fields: fields, opt: opt}
	if t.Root != nil {
		obj.Set(TreeKey, c.node(t.Root))
	}
	return obj
}

type converter struct {
	fields []string
	opt    Options
}

func (c converter) node(n *tree.Node) *Object {
	obj := NewObject()
	if c.opt.Names {
		obj.Set(NameKey, n.Name)
	}
	if c.opt.Lengths && n.HasLength {
		obj.Set(LengthKey, annotation.FloatValue(n.Length))
	}
	if c.opt.Support && n.HasSupport {
		obj.Set(SupportKey, annotation.FloatValue(n.Support))
	}
	for _, f := range c.fields {
		if v, ok := n.Field(f); ok {
			obj.Set(f, v)
		}
	}

	children := make([]*Object, 0, len(n.Children))
	for _, d := range n.Children {
		children = append(children, c.node(d))
	}
	obj.Set(c.opt.ChildrenKey, children)
	return obj
}

// Write writes an object as an indented JSON document.
func Write(w io.Writer, obj *Object) error {
	b, err := encode(obj)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return err
	}
	return nil
}

// WriteFile writes an object into a file.
// The file is created
// only if the object was encoded without errors.
func WriteFile(name string, obj *Object) (err error) {
	b, err := encode(obj)
	if err != nil {
		return fmt.Errorf("while encoding %q: %v", name, err)
	}

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

	if _, err := f.Write(b); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func encode(obj *Object) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(obj); err != nil {
		return nil, err
	}

	// the encoder always adds a new line
	return bytes.TrimSuffix(b.Bytes(), []byte("\n")), nil
}
