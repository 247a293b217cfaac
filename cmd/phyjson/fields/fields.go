// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package fields implements a command to print
// a summary of the fields of an annotation table.
package fields

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/phyjson/annotate"
	"github.com/js-arias/phyjson/annotation"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: "fields <annotation-file>",
	Short: "print a summary of annotation fields",
	Long: `
Command fields reads an annotation table and prints a summary of its fields
in the standard output, in the order found in the file.

The summary is a tab-delimited table with the following columns:

	- field   the name of the field
	- kind    the kind of the values of the field
	- values  the number of rows with a defined value
	- mean    the mean of the values
	- sd      the standard deviation of the values
	- min     the minimum value
	- max     the maximum value

Statistics are only reported for numeric fields.

The argument of the command is the annotation file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting annotation file")
	}

	tab, err := annotate.ReadTableFile(args[0])
	if err != nil {
		return err
	}

	if err := writeSummary(c.Stdout(), tab); err != nil {
		return err
	}
	return nil
}

// summary is the summary of an annotation field.
type summary struct {
	field  string
	kind   annotation.Kind
	values int

	numeric bool
	mean    float64
	sd      float64
	min     float64
	max     float64
}

func summarize(tab *annotation.Table, field string) summary {
	s := summary{
		field: field,
		kind:  tab.Kind(field),
	}

	var x []float64
	for _, v := range tab.Column(field) {
		if v.IsNull() {
			continue
		}
		s.values++
		if f, ok := v.Float(); ok {
			x = append(x, f)
		}
	}
	if s.kind != annotation.Int && s.kind != annotation.Float {
		return s
	}
	if len(x) == 0 {
		return s
	}

	s.numeric = true
	s.mean, s.sd = stat.MeanStdDev(x, nil)
	if len(x) < 2 {
		s.sd = 0
	}
	s.min = floats.Min(x)
	s.max = floats.Max(x)
	return s
}

func writeSummary(w io.Writer, tab *annotation.Table) error {
	out := csv.NewWriter(w)
	out.Comma = '\t'

	header := []string{"field", "kind", "values", "mean", "sd", "min", "max"}
	if err := out.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, f := range tab.Fields() {
		s := summarize(tab, f)
		row := []string{
			s.field,
			s.kind.String(),
			strconv.Itoa(s.values),
			"", "", "", "",
		}
		if s.numeric {
			row[3] = strconv.FormatFloat(s.mean, 'f', 6, 64)
			row[4] = strconv.FormatFloat(s.sd, 'f', 6, 64)
			row[5] = strconv.FormatFloat(s.min, 'f', 6, 64)
			row[6] = strconv.FormatFloat(s.max, 'f', 6, 64)
		}
		if err := out.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	out.Flush()
	if err := out.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
