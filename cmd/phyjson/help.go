// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(annotationFilesGuide)
	app.Add(jsonFilesGuide)
	app.Add(treeFormatsGuide)
}

var annotationFilesGuide = &command.Command{
	Usage: "annotation-files",
	Short: "about annotation files",
	Long: `
An annotation file is a tab-delimited file with a header. One of the columns
must be named "name", and its values are used to match the rows of the file
with the nodes of a tree. Every other column is an annotation field, and the
header of the column is the name of the field.

Here is an example file:

	# virus annotations
	name	host	year
	A	human	2014
	B	mouse	2015

Lines starting with '#' are ignored.

The kind of the values of a field is inferred from its content. If all the
values of a column are integers, the values will be integers; if they are
numbers, they will be floating point numbers; if they are "true" or "false",
they will be booleans; any other column is a text column. Empty cells, as
well as cells with values such as "NA", "NaN", or "null", are missing values,
and they are stored as null. Missing values do not change the kind of a
column, so a column of integers with empty cells is still an integer column.
Infinite numbers, such as "inf" or "-inf", are read as floating point numbers,
but JSON has no infinite values, so they are stored as null.

If a name is repeated in the file, the last row with that name is used.
	`,
}

var jsonFilesGuide = &command.Command{
	Usage: "json-trees",
	Short: "about JSON tree files",
	Long: `
A JSON tree file is a JSON document with an object that stores the tree under
the key "tree". Each node of the tree is an object with the annotation fields
of the node, and the key "children" with an array of the node descendants.
For terminal nodes, the array is empty. Nodes without annotations only have
the "children" key.

Here is an example of the tree "(A,(B,C)D)E;" annotated with the fields of
the example in "phyjson help annotation-files":

	{
	 "tree": {
	  "children": [
	   {
	    "host": "human",
	    "year": 2014,
	    "children": []
	   },
	   {
	    "children": [
	     {
	      "host": "mouse",
	      "year": 2015,
	      "children": []
	     },
	     {
	      "children": []
	     }
	    ]
	   }
	  ]
	 }
	}

Fields named "clades" or "children" are never stored in the nodes.
	`,
}

var treeFormatsGuide = &command.Command{
	Usage: "tree-formats",
	Short: "about tree file formats",
	Long: `
PhyJSON reads trees in three formats.

Newick trees (i.e., trees in parenthetical format) are identified by the
format names "newick", "nwk", "nh", "tre", or "tree". Any node can have a
label, and the label is used as the name of the node. Labels can be quoted
with single quotes. Branch lengths, given after a colon, are optional, and
comments (text enclosed in brackets) are ignored. Only the first tree of a
newick file is read.

A numeric label of an internal node is a support value (for example, a
bootstrap percentage) and not a name, so the node is unnamed and it will not
be matched with the annotations. Numeric labels of terminals are names.

Here is an example of a newick tree:

	(A:0.1,(B:0.2,C:0.3)95:0.4)E;

Nexus files are identified by the format names "nex" or "nexus". The first
tree of the TREES block is read, and the tree is stored as a newick tree. If
the block has a TRANSLATE command, the node labels are replaced by the
translated names.

Here is an example file:

	#NEXUS
	begin trees;
		translate
			1 A,
			2 B,
			3 C;
		tree flu = ((1,2)95,3)E;
	end;

Time calibrated trees in tab-delimited files are identified by the format
names "tab" or "tsv". A tab-delimited file can store multiple trees, and by
default the first tree (in alphabetical order) is read. The name of each node
is its taxon name, and branch lengths are the age differences (in million
years) between a node and its parent.

Here is an example file:

	# time calibrated phylogenetic tree
	tree	node	parent	age	taxon
	dinosaurs	0	-1	235000000
	dinosaurs	1	0	230000000	Eoraptor lunensis
	dinosaurs	2	0	170000000
	dinosaurs	3	2	145000000	Ceratosaurus nasicornis
	dinosaurs	4	2	71000000	Carnotaurus sastrei

If no format is given to a command, the format is the extension of the tree
file name (i.e., the text after the last dot). For example, the format of the
file "tree.nwk" is "nwk".
	`,
}
