// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements a reader
// for trees in newick (parenthetical) format.
//
// Labels can be given to any node,
// terminal or internal.
// Labels can be quoted with single quotes,
// and a quote inside a quoted label
// is written as two quotes.
// Branch lengths are given after a colon.
// Comments are enclosed in brackets
// and they are ignored.
// A numeric label of an internal node
// is read as the support value of the node
// and the node is left unnamed.
//
// For example:
//
//	(A:0.1,(B:0.2,'C c':0.3)D:0.4)E;
package newick

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/phyjson/tree"
)

// Read reads the first tree
// from a newick file.
func Read(r io.Reader) (*tree.Tree, error) {
	p := &parser{r: bufio.NewReader(r), line: 1}

	r1, err := p.skip()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("no tree found")
	}
	if err != nil {
		return nil, err
	}
	if r1 == ';' {
		return nil, fmt.Errorf("on line %d: empty tree", p.line)
	}
	p.unread(r1)

	root, err := p.node()
	if err != nil {
		return nil, err
	}

	r1, err = p.skip()
	if errors.Is(err, io.EOF) {
		return &tree.Tree{Root: root}, nil
	}
	if err != nil {
		return nil, err
	}
	if r1 != ';' {
		return nil, fmt.Errorf("on line %d: expecting ';', found %q", p.line, r1)
	}
	return &tree.Tree{Root: root}, nil
}

type parser struct {
	r    *bufio.Reader
	line int
}

func (p *parser) read() (rune, error) {
	r, _, err := p.r.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		p.line++
	}
	return r, nil
}

func (p *parser) unread(r rune) {
	p.r.UnreadRune()
	if r == '\n' {
		p.line--
	}
}

// Skip reads the next rune
// that is not a space
// and is not part of a comment.
func (p *parser) skip() (rune, error) {
	for {
		r, err := p.read()
		if err != nil {
			return 0, err
		}
		if r == '[' {
			if err := p.comment(); err != nil {
				return 0, err
			}
			continue
		}
		if isSpace(r) {
			continue
		}
		return r, nil
	}
}

func (p *parser) comment() error {
	ln := p.line
	for {
		r, err := p.read()
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("on line %d: unclosed comment", ln)
		}
		if err != nil {
			return err
		}
		if r == ']' {
			return nil
		}
	}
}

// Node reads a node,
// its descendants,
// its label,
// and its branch length.
func (p *parser) node() (*tree.Node, error) {
	n := &tree.Node{}

	r, err := p.skip()
	if err != nil {
		return nil, p.eof(err)
	}
	if r == '(' {
		for {
			c, err := p.node()
			if err != nil {
				return nil, err
			}
			n.Children = append(n.Children, c)

			r, err = p.skip()
			if err != nil {
				return nil, p.eof(err)
			}
			if r == ',' {
				continue
			}
			if r == ')' {
				break
			}
			return nil, fmt.Errorf("on line %d: unexpected %q", p.line, r)
		}
	} else {
		p.unread(r)
	}

	n.Name, err = p.label()
	if err != nil {
		return nil, err
	}
	if len(n.Children) > 0 && n.Name != "" {
		// numeric labels of internal nodes
		// are support values
		if v, err := strconv.ParseFloat(n.Name, 64); err == nil {
			n.Support = v
			n.HasSupport = true
			n.Name = ""
		}
	}

	r, err = p.skip()
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	if err != nil {
		return nil, err
	}
	if r != ':' {
		p.unread(r)
		return n, nil
	}
	r, err = p.skip()
	if err != nil {
		return nil, p.eof(err)
	}
	p.unread(r)
	l, err := p.token()
	if err != nil {
		return nil, err
	}
	n.Length, err = strconv.ParseFloat(l, 64)
	if err != nil {
		return nil, fmt.Errorf("on line %d: invalid branch length %q: %v", p.line, l, err)
	}
	n.HasLength = true
	return n, nil
}

func (p *parser) label() (string, error) {
	r, err := p.skip()
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	if r != '\'' {
		p.unread(r)
		return p.token()
	}

	ln := p.line
	var b strings.Builder
	for {
		r, err := p.read()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("on line %d: unclosed quoted label", ln)
		}
		if err != nil {
			return "", err
		}
		if r != '\'' {
			b.WriteRune(r)
			continue
		}
		nx, err := p.read()
		if err == nil && nx == '\'' {
			b.WriteRune('\'')
			continue
		}
		if err == nil {
			p.unread(nx)
		}
		return b.String(), nil
	}
}

// Token reads an unquoted label
// or a number.
func (p *parser) token() (string, error) {
	var b strings.Builder
	for {
		r, err := p.read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		if isSpace(r) || strings.ContainsRune("(),:;[", r) {
			p.unread(r)
			break
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (p *parser) eof(err error) error {
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("on line %d: unexpected end of tree", p.line)
	}
	return err
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r'
}
