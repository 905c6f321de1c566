// Package includes builds the trees of relations that the repositories preload.
// A tree comes either from explicit boolean flags passed as a GraphQL argument,
// or from the selection set of the field being resolved, so that a relation is
// only fetched when the client asked for it.
package includes

import "slices"

// Includes maps the GraphQL name of a relation to the relations nested under it.
// A nil value means the relation is loaded without any nested relations.
type Includes map[string]Includes

// FromFlags converts a LinkIncludes style input object into a tree. A nil map
// (argument not given) yields nil; otherwise each truthy flag becomes a leaf.
func FromFlags(flags map[string]interface{}) Includes {
	if flags == nil {
		return nil
	}
	inc := Includes{}
	for name, v := range flags {
		if truthy(v) {
			inc[name] = nil
		}
	}
	return inc
}

func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case *bool:
		return t != nil && *t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	return true
}

// Merge returns the union of two trees. Neither argument is modified.
func Merge(a, b Includes) Includes {
	if a == nil && b == nil {
		return nil
	}
	out := make(Includes, len(a)+len(b))
	for name, sub := range a {
		out[name] = sub
	}
	for name, sub := range b {
		if cur, ok := out[name]; ok {
			out[name] = Merge(cur, sub)
		} else {
			out[name] = sub
		}
	}
	return out
}

// Paths flattens the tree into sorted dot separated paths, parents first.
// {postedBy, voters: {links}} gives [postedBy voters voters.links].
func (inc Includes) Paths() []string {
	var paths []string
	for name, sub := range inc {
		paths = append(paths, name)
		for _, p := range sub.Paths() {
			paths = append(paths, name+"."+p)
		}
	}
	slices.Sort(paths)
	return paths
}
