// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package annotation implements a table of annotations
// indexed by the name of a node.
package annotation

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
)

// KeyField is the header of the column
// used as the index of the table.
const KeyField = "name"

// A Table is a collection of annotation fields
// indexed by name.
type Table struct {
	fields []string
	kinds  map[string]Kind
	rows   map[string]map[string]Value
}

// New creates a new empty table
// with the given fields.
func New(fields ...string) *Table {
	t := &Table{
		kinds: make(map[string]Kind, len(fields)),
		rows:  make(map[string]map[string]Value),
	}
	for _, f := range fields {
		if _, dup := t.kinds[f]; dup {
			continue
		}
		t.fields = append(t.fields, f)
		t.kinds[f] = Null
	}
	return t
}

// Add sets the values of a row.
// Fields not defined in the table are ignored.
// If the row is already defined,
// it will be replaced.
func (t *Table) Add(name string, row map[string]Value) {
	if name == "" {
		return
	}
	r := make(map[string]Value, len(t.fields))
	for _, f := range t.fields {
		v := row[f]
		r[f] = v
		if v.IsNull() {
			continue
		}
		t.kinds[f] = merge(t.kinds[f], v.Kind())
	}
	t.rows[name] = r
}

func merge(a, b Kind) Kind {
	switch {
	case a == Null:
		return b
	case a == b:
		return a
	case (a == Int && b == Float) || (a == Float && b == Int):
		return Float
	}
	return String
}

// Fields returns the fields of the table,
// in the order of the header.
func (t *Table) Fields() []string {
	return slices.Clone(t.fields)
}

// Kind returns the kind of values
// stored in a field.
func (t *Table) Kind(field string) Kind {
	return t.kinds[field]
}

// Has returns true if a row with the given name
// is defined in the table.
func (t *Table) Has(name string) bool {
	_, ok := t.rows[name]
	return ok
}

// Names returns the names of the rows of the table.
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.rows))
	for n := range t.rows {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Row returns the values of a row.
// It reports false if the name is not in the table.
func (t *Table) Row(name string) (map[string]Value, bool) {
	r, ok := t.rows[name]
	if !ok {
		return nil, false
	}
	cp := make(map[string]Value, len(r))
	for f, v := range r {
		cp[f] = v
	}
	return cp, true
}

// Column returns the values of a field,
// ordered by row name.
func (t *Table) Column(field string) []Value {
	if _, ok := t.kinds[field]; !ok {
		return nil
	}
	names := t.Names()
	col := make([]Value, 0, len(names))
	for _, n := range names {
		col = append(col, t.rows[n][field])
	}
	return col
}

// ReadTSV reads an annotation table
// from a TSV file.
//
// The TSV file must contain a header,
// and one of the columns must be the field "name"
// (in lower case),
// used as the index of the table.
// Any other column will be an annotation field.
// The kind of values in each field
// is inferred from its content,
// empty cells (or cells such as "NA")
// are missing values.
// If a name is repeated,
// the last row will be used.
//
// Here is an example file:
//
//	# virus annotations
//	name	host	year
//	A	human	2014
//	B	mouse	2015
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	key := -1
	fields := make(map[string]int, len(head))
	for i, h := range head {
		if h == KeyField {
			if key >= 0 {
				return nil, fmt.Errorf("repeated field %q", h)
			}
			key = i
			continue
		}
		if _, dup := fields[h]; dup {
			return nil, fmt.Errorf("repeated field %q", h)
		}
		fields[h] = i
	}
	if key < 0 {
		return nil, fmt.Errorf("expecting field %q", KeyField)
	}

	var names []string
	var cells [][]string
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return nil, fmt.Errorf("on row %d: %v", perr.StartLine, perr.Err)
			}
			return nil, err
		}

		name := row[key]
		if name == "" {
			continue
		}
		names = append(names, name)
		cells = append(cells, row)
	}

	var order []string
	for i, h := range head {
		if i == key {
			continue
		}
		order = append(order, h)
	}
	t := New(order...)
	col := make([]string, len(cells))
	for _, f := range order {
		for i, row := range cells {
			col[i] = row[fields[f]]
		}
		t.kinds[f] = Infer(col)
	}

	for i, name := range names {
		row := make(map[string]Value, len(order))
		for _, f := range order {
			row[f] = Parse(t.kinds[f], cells[i][fields[f]])
		}
		t.rows[name] = row
	}
	return t, nil
}

// TSV writes an annotation table as a TSV file.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := append([]string{KeyField}, t.fields...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, n := range t.Names() {
		r := t.rows[n]
		row := make([]string, 0, len(header))
		row = append(row, n)
		for _, f := range t.fields {
			row = append(row, r[f].String())
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
