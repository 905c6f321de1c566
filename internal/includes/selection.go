package includes

import "github.com/graphql-go/graphql/language/ast"

// node is a field of the query that has a selection set of its own
type node struct {
	name     string
	children []node
}

// FromFields derives a tree from the AST of the field being resolved
// (graphql.ResolveInfo.FieldASTs). Only sub-fields with a selection set are
// relations, so scalars never end up in the tree. The resolved field itself is
// always unwrapped; path names further wrapper fields to descend through, e.g.
// "links" for a Feed whose links carry the relations.
func FromFields(fields []*ast.Field, fragments map[string]ast.Definition, path ...string) Includes {
	inc := Includes{}
	for _, root := range fieldTree(fields, fragments) {
		inc = Merge(inc, build(unwrap(root.children, path)))
	}
	return inc
}

func fieldTree(fields []*ast.Field, fragments map[string]ast.Definition) []node {
	nodes := make([]node, 0, len(fields))
	for _, f := range fields {
		if f == nil || f.Name == nil {
			continue
		}
		nodes = append(nodes, node{name: f.Name.Value, children: children(f.SelectionSet, fragments)})
	}
	return nodes
}

// children collects the relation fields of a selection set; fragments are flattened into it.
func children(set *ast.SelectionSet, fragments map[string]ast.Definition) []node {
	if set == nil {
		return nil
	}
	var nodes []node
	for _, sel := range set.Selections {
		switch s := sel.(type) {
		case *ast.Field:
			if s.SelectionSet == nil || len(s.SelectionSet.Selections) == 0 {
				continue
			}
			nodes = append(nodes, node{name: s.Name.Value, children: children(s.SelectionSet, fragments)})
		case *ast.InlineFragment:
			nodes = append(nodes, children(s.SelectionSet, fragments)...)
		case *ast.FragmentSpread:
			if def, ok := fragments[s.Name.Value].(*ast.FragmentDefinition); ok {
				nodes = append(nodes, children(def.SelectionSet, fragments)...)
			}
		}
	}
	return nodes
}

func unwrap(nodes []node, path []string) []node {
	for _, name := range path {
		var next []node
		for _, n := range nodes {
			if n.name == name {
				next = append(next, n.children...)
			}
		}
		nodes = next
	}
	return nodes
}

func build(nodes []node) Includes {
	inc := Includes{}
	for _, n := range nodes {
		var sub Includes
		if len(n.children) > 0 {
			sub = build(n.children)
		}
		inc = Merge(inc, Includes{n.name: sub})
	}
	return inc
}
