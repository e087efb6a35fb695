package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"slices"
)

// Graph is an insertion-ordered mapping from package name to its direct
// dependency names. The zero value is ready to use.
type Graph struct {
	keys []string
	adj  map[string][]string
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[string][]string)}
}

// Set records deps as the dependency list of name. Setting an existing name
// replaces its list without changing its position. A nil deps is stored as
// an empty list so the entry stays distinguishable from "no entry".
func (g *Graph) Set(name string, deps []string) {
	if g.adj == nil {
		g.adj = make(map[string][]string)
	}
	if _, ok := g.adj[name]; !ok {
		g.keys = append(g.keys, name)
	}
	if deps == nil {
		deps = []string{}
	}
	g.adj[name] = deps
}

// Get returns the dependency list recorded for name. ok is false when name
// has no entry.
func (g *Graph) Get(name string) (deps []string, ok bool) {
	deps, ok = g.adj[name]
	return deps, ok
}

// Has reports whether name has an entry.
func (g *Graph) Has(name string) bool {
	_, ok := g.adj[name]
	return ok
}

// Keys returns the names with an entry, in insertion order.
func (g *Graph) Keys() []string {
	return slices.Clone(g.keys)
}

// Len returns the number of entries.
func (g *Graph) Len() int { return len(g.keys) }

// EdgeCount returns the total length of all dependency lists.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, deps := range g.adj {
		n += len(deps)
	}
	return n
}

// All iterates entries in insertion order.
func (g *Graph) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, k := range g.keys {
			if !yield(k, g.adj[k]) {
				return
			}
		}
	}
}

// Nodes returns every name in the graph: entries first in insertion order,
// then dependency names that have no entry, in order of first appearance.
func (g *Graph) Nodes() []string {
	seen := make(map[string]bool, len(g.keys))
	out := make([]string, 0, len(g.keys))
	for _, k := range g.keys {
		seen[k] = true
		out = append(out, k)
	}
	for _, k := range g.keys {
		for _, d := range g.adj[k] {
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	return out
}

// MarshalJSON encodes the graph as a JSON object whose keys follow
// insertion order.
func (g *Graph) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(g.adj[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object produced by MarshalJSON, keeping the key
// order of the input.
func (g *Graph) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if tok, err := dec.Token(); err != nil {
		return fmt.Errorf("decode: %w", err)
	} else if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("decode: expected object, got %v", tok)
	}

	*g = Graph{adj: make(map[string][]string)}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("decode: expected key, got %v", tok)
		}
		var deps []string
		if err := dec.Decode(&deps); err != nil {
			return fmt.Errorf("decode %s: %w", key, err)
		}
		g.Set(key, deps)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// WriteJSON writes g as indented JSON to w.
func WriteJSON(g *Graph, w io.Writer) error {
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// ReadJSON decodes a graph written by [WriteJSON].
func ReadJSON(r io.Reader) (*Graph, error) {
	g := New()
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, err
	}
	return g, nil
}
