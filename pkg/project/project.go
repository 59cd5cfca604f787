// Package project persists framework projects: metadata plus named lists of
// node records, each record serialized through an explicit field schema.
package project

import (
	"sort"
)

// Project is the top-level authored document. It owns its node lists; nodes
// are pointers to the Go types registered in a Schema.
type Project struct {
	Version    string
	MetaName   string
	MetaAuthor string

	lists map[string][]any
}

// New returns an empty project with the given metadata.
func New(name, author, version string) *Project {
	return &Project{
		Version:    version,
		MetaName:   name,
		MetaAuthor: author,
		lists:      map[string][]any{},
	}
}

// Nodes returns the nodes of a list field.
func (p *Project) Nodes(field string) []any {
	return p.lists[field]
}

// SetNodes replaces the nodes of a list field.
func (p *Project) SetNodes(field string, nodes ...any) {
	if p.lists == nil {
		p.lists = map[string][]any{}
	}
	p.lists[field] = append([]any{}, nodes...)
}

// Append adds nodes to the end of a list field.
func (p *Project) Append(field string, nodes ...any) {
	if p.lists == nil {
		p.lists = map[string][]any{}
	}
	p.lists[field] = append(p.lists[field], nodes...)
}

// Fields returns the names of every populated list field, sorted.
func (p *Project) Fields() []string {
	out := make([]string, 0, len(p.lists))
	for f := range p.lists {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// NodesOf returns the nodes of field that are *N.
func NodesOf[N any](p *Project, field string) []*N {
	var out []*N
	for _, node := range p.lists[field] {
		if n, ok := node.(*N); ok {
			out = append(out, n)
		}
	}
	return out
}

// Equal compares metadata and every list declared in schema.
func Equal(a, b *Project, schema *Schema) bool {
	if a.Version != b.Version || a.MetaName != b.MetaName || a.MetaAuthor != b.MetaAuthor {
		return false
	}
	for _, binding := range schema.bindings {
		left, right := a.Nodes(binding.Field), b.Nodes(binding.Field)
		if len(left) != len(right) {
			return false
		}
		for i := range left {
			if !binding.Type.Equal(left[i], right[i]) {
				return false
			}
		}
	}
	return true
}
