// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyJSON is a tool to combine phylogenetic trees
// with annotation tables into JSON trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phyjson/cmd/phyjson/convert"
	"github.com/js-arias/phyjson/cmd/phyjson/fields"
	"github.com/js-arias/phyjson/cmd/phyjson/match"
)

var app = &command.Command{
	Usage: "phyjson <command> [<argument>...]",
	Short: "a tool to build annotated JSON trees",
}

func init() {
	app.Add(convert.Command)
	app.Add(fields.Command)
	app.Add(match.Command)
}

func main() {
	app.Main()
}
