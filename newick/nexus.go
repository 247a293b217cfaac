// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/phyjson/tree"
)

// ReadNexus reads the first tree
// from the TREES block of a nexus file.
//
// If the block has a TRANSLATE command,
// the node labels are replaced
// with the translated names.
//
// Here is an example file:
//
//	#NEXUS
//	begin trees;
//		translate
//			1 A,
//			2 'B b';
//		tree one = [&R] (1,2)E;
//	end;
func ReadNexus(r io.Reader) (*tree.Tree, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimLeft(string(b), " \t\r\n")
	if len(text) < 6 || !strings.EqualFold(text[:6], "#nexus") {
		return nil, fmt.Errorf("expecting #NEXUS header")
	}
	text = text[6:]

	inTrees := false
	translate := make(map[string]string)
	for _, st := range statements(text) {
		words := strings.Fields(stripComments(st))
		if len(words) == 0 {
			continue
		}
		cmd := strings.ToLower(words[0])

		if !inTrees {
			if cmd == "begin" && len(words) > 1 && strings.EqualFold(words[1], "trees") {
				inTrees = true
			}
			continue
		}

		switch cmd {
		case "end", "endblock":
			inTrees = false
		case "translate":
			i := strings.Index(strings.ToLower(st), "translate")
			for _, e := range split(st[i+len("translate"):], ',') {
				tk := split(stripComments(e), ' ', '\t', '\r', '\n')
				if len(tk) != 2 {
					return nil, fmt.Errorf("invalid translate entry %q", strings.TrimSpace(e))
				}
				translate[unquote(tk[0])] = unquote(tk[1])
			}
		case "tree", "utree":
			i := strings.IndexByte(st, '=')
			if i < 0 {
				return nil, fmt.Errorf("tree command without '='")
			}
			t, err := Read(strings.NewReader(st[i+1:] + ";"))
			if err != nil {
				return nil, err
			}
			if head := split(stripComments(st[:i]), ' ', '\t', '\r', '\n'); len(head) > 1 {
				// a star marks the default tree
				name := strings.TrimPrefix(strings.Join(head[1:], " "), "*")
				t.Name = unquote(strings.TrimSpace(name))
			}
			for _, n := range t.Nodes() {
				if v, ok := translate[n.Name]; ok {
					n.Name = v
				}
			}
			return t, nil
		}
	}
	return nil, fmt.Errorf("no tree found")
}

// statements splits a nexus text
// into commands ended by a semicolon.
// Semicolons inside quotes or comments
// are not command terminators.
func statements(text string) []string {
	var sts []string
	var b strings.Builder
	quoted := false
	comment := 0
	for _, r := range text {
		switch {
		case comment > 0:
			if r == ']' {
				comment--
			}
		case quoted:
			if r == '\'' {
				quoted = false
			}
		case r == '[':
			comment++
		case r == '\'':
			quoted = true
		case r == ';':
			sts = append(sts, b.String())
			b.Reset()
			continue
		}
		b.WriteRune(r)
	}
	if s := strings.TrimSpace(b.String()); s != "" {
		sts = append(sts, s)
	}
	return sts
}

// stripComments removes bracket comments
// outside of quotes.
func stripComments(s string) string {
	var b strings.Builder
	quoted := false
	comment := 0
	for _, r := range s {
		switch {
		case comment > 0:
			if r == ']' {
				comment--
			}
			continue
		case quoted:
			if r == '\'' {
				quoted = false
			}
		case r == '[':
			comment++
			continue
		case r == '\'':
			quoted = true
		}
		b.WriteRune(r)
	}
	return b.String()
}

// split splits a text by any of the separators
// outside of quotes,
// dropping empty fields.
func split(s string, sep ...rune) []string {
	var fields []string
	var b strings.Builder
	quoted := false
	add := func() {
		if f := strings.TrimSpace(b.String()); f != "" {
			fields = append(fields, f)
		}
		b.Reset()
	}
	for _, r := range s {
		if r == '\'' {
			quoted = !quoted
		}
		if !quoted && strings.ContainsRune(string(sep), r) {
			add()
			continue
		}
		b.WriteRune(r)
	}
	add()
	return fields
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'' {
		return strings.ReplaceAll(s[1:len(s)-1], "''", "'")
	}
	return s
}
