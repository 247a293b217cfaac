// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotation

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Kind is the type of the values
// stored in an annotation field.
type Kind int

// Valid kinds.
const (
	Null Kind = iota
	Int
	Float
	Bool
	String
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Int:
		return "int"
	case Float:
		return "float"
	case Bool:
		return "bool"
	case String:
		return "string"
	}
	return "unknown"
}

// A Value is a scalar annotation value.
// The zero Value is a null value.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

// StringValue returns a string value.
func StringValue(s string) Value {
	return Value{kind: String, s: s}
}

// IntValue returns an integer value.
func IntValue(i int64) Value {
	return Value{kind: Int, i: i}
}

// FloatValue returns a floating point value.
func FloatValue(f float64) Value {
	return Value{kind: Float, f: f}
}

// BoolValue returns a boolean value.
func BoolValue(b bool) Value {
	return Value{kind: Bool, b: b}
}

// Kind returns the kind of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true if the value is undefined.
func (v Value) IsNull() bool {
	return v.kind == Null
}

// Float returns the value as a float,
// and reports if the value is numeric.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Int:
		return float64(v.i), true
	case Float:
		return v.f, true
	}
	return 0, false
}

// String returns the value as text.
func (v Value) String() string {
	switch v.kind {
	case Int:
		return strconv.FormatInt(v.i, 10)
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Bool:
		return strconv.FormatBool(v.b)
	case String:
		return v.s
	}
	return ""
}

// MarshalJSON implements the json.Marshaler interface.
//
// Floats always carry a decimal point
// so they are not confused with integers,
// and non-finite floats are encoded as null.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Int:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	case Float:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		b, err := json.Marshal(v.f)
		if err != nil {
			return nil, err
		}
		if !strings.ContainsAny(string(b), ".eE") {
			b = append(b, ".0"...)
		}
		return b, nil
	case Bool:
		return json.Marshal(v.b)
	case String:
		return quote(v.s)
	}
	return []byte("null"), nil
}

// Quote returns a JSON string
// without HTML escaping.
func quote(s string) ([]byte, error) {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(b.Bytes(), "\n"), nil
}

// naValues are the cell contents
// interpreted as missing values.
var naValues = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// IsNA returns true if a cell content
// is interpreted as a missing value.
func IsNA(cell string) bool {
	return naValues[cell]
}

// Infer returns the narrowest kind
// that can hold all the given cells.
// Missing values are ignored,
// if all cells are missing,
// the kind is Null.
func Infer(cells []string) Kind {
	k := Null
	for _, c := range cells {
		if IsNA(c) {
			continue
		}
		k = widen(k, c)
		if k == String {
			return String
		}
	}
	return k
}

func widen(k Kind, cell string) Kind {
	switch k {
	case Null, Int:
		if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return Int
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return Float
		}
		if k == Null && isBool(cell) {
			return Bool
		}
	case Float:
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			return Float
		}
	case Bool:
		if isBool(cell) {
			return Bool
		}
	}
	return String
}

func isBool(cell string) bool {
	return strings.EqualFold(cell, "true") || strings.EqualFold(cell, "false")
}

// Parse returns the value of a cell
// as a value of the given kind.
// The kind should be obtained with Infer,
// a cell that cannot be parsed
// is returned as a string.
func Parse(k Kind, cell string) Value {
	if IsNA(cell) {
		return Value{}
	}
	switch k {
	case Int:
		if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return IntValue(i)
		}
	case Float:
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return FloatValue(f)
		}
	case Bool:
		if isBool(cell) {
			return BoolValue(strings.EqualFold(cell, "true"))
		}
	}
	return StringValue(cell)
}
