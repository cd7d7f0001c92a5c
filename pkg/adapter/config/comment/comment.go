// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package comment keeps the comments of a parsed configuration file,
// so `config show` may print them again after the settings were
// decoded, normalized, and encoded as a fresh YAML node.
//
// Head comments (written on the lines before a key or a sequence item)
// and line comments (written after a value on the same line) are kept.
// Foot comments are dropped.
package comment

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Comment contains the comments of a sequence or mapping yaml node,
// recursively. Exactly one of its fields is set.
type Comment struct {
	m *Map
	s *Seq
}

// text is the comments of one scalar or collection node.
type text struct {
	head, line string
}

func textOf(n *yaml.Node) text {
	return text{head: n.HeadComment, line: n.LineComment}
}

func (t text) saveInto(n *yaml.Node) {
	n.HeadComment = t.head
	if t.line != "" {
		n.LineComment = t.line
	}
}

// Map contains the comments of each key of a mapping node, and of its
// value. Values which are collections themselves have a nested Comment.
type Map struct {
	keys   map[string]text
	values map[string]text
	nested map[string]*Comment
}

// Seq contains the comments of each item of a sequence node by index.
// Items which are not collections have a nil nested Comment.
type Seq struct {
	items  []text
	nested []*Comment
}

// LoadFrom loads the comments of n, which must be a mapping or
// sequence node, and its nested collections.
func LoadFrom(n *yaml.Node) (*Comment, error) {
	switch n.Kind {
	case yaml.SequenceNode:
		return loadSeq(n)
	case yaml.MappingNode:
		return loadMap(n)
	default:
		return nil, errors.New("node must be a mapping or a sequence")
	}
}

func isCollection(n *yaml.Node) bool {
	return n.Kind == yaml.SequenceNode || n.Kind == yaml.MappingNode
}

func loadSeq(n *yaml.Node) (*Comment, error) {
	s := &Seq{
		items:  make([]text, 0, len(n.Content)),
		nested: make([]*Comment, 0, len(n.Content)),
	}
	for i, cn := range n.Content {
		s.items = append(s.items, textOf(cn))
		var nested *Comment
		if isCollection(cn) {
			var err error
			if nested, err = LoadFrom(cn); err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		s.nested = append(s.nested, nested)
	}
	return &Comment{s: s}, nil
}

func loadMap(n *yaml.Node) (*Comment, error) {
	m := &Map{
		keys:   make(map[string]text),
		values: make(map[string]text),
		nested: make(map[string]*Comment),
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		key := kn.Value
		m.keys[key] = textOf(kn)
		m.values[key] = textOf(vn)
		if isCollection(vn) {
			nested, err := LoadFrom(vn)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			m.nested[key] = nested
		}
	}
	return &Comment{m: m}, nil
}

// SaveInto writes the comments of c into n, which must have the same
// kind as the node which c was loaded from. Keys and items which are
// missing from n are skipped, and new keys get no comment.
func (c *Comment) SaveInto(n *yaml.Node) error {
	if c == nil {
		return nil
	}
	switch k := n.Kind; k {
	case yaml.SequenceNode:
		if c.s == nil {
			return errors.New("unexpected sequence node")
		}
		return c.s.saveInto(n)
	case yaml.MappingNode:
		if c.m == nil {
			return errors.New("unexpected mapping node")
		}
		return c.m.saveInto(n)
	default:
		return fmt.Errorf("expected a mapping or sequence (kind=%d)", k)
	}
}

func (s *Seq) saveInto(n *yaml.Node) error {
	for i, cn := range n.Content {
		if i >= len(s.items) {
			break
		}
		s.items[i].saveInto(cn)
		if err := s.nested[i].SaveInto(cn); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}

func (m *Map) saveInto(n *yaml.Node) error {
	for i := 0; i+1 < len(n.Content); i += 2 {
		kn, vn := n.Content[i], n.Content[i+1]
		key := kn.Value
		if t, ok := m.keys[key]; ok {
			t.saveInto(kn)
		}
		if t, ok := m.values[key]; ok {
			t.saveInto(vn)
		}
		if err := m.nested[key].SaveInto(vn); err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
	}
	return nil
}
