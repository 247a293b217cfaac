// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package jsontree

import (
	"bytes"
	"encoding/json"
)

// An Object is a JSON object
// that keeps its keys in insertion order.
type Object struct {
	keys []string
	vals map[string]any
}

// NewObject returns a new empty object.
func NewObject() *Object {
	return &Object{
		vals: make(map[string]any),
	}
}

// Set sets the value of a key.
// A new key is added at the end of the object.
func (o *Object) Set(key string, v any) {
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
}

// Get returns the value of a key.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.vals[key]
	return v, ok
}

// Keys returns the keys of the object
// in insertion order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// MarshalJSON implements the json.Marshaler interface.
func (o *Object) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)

	b.WriteByte('{')
	for i, k := range o.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		if err := enc.Encode(k); err != nil {
			return nil, err
		}
		b.WriteByte(':')
		if err := enc.Encode(o.vals[k]); err != nil {
			return nil, err
		}
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}
