package includes

import (
	"testing"

	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
	"github.com/stretchr/testify/require"
)

// rootFields parses a query and returns its top-level fields plus fragment definitions,
// i.e. what graphql.ResolveInfo hands a root resolver.
func rootFields(t *testing.T, query string) ([]*ast.Field, map[string]ast.Definition) {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	require.NoError(t, err)

	var fields []*ast.Field
	fragments := map[string]ast.Definition{}
	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.OperationDefinition:
			for _, sel := range d.SelectionSet.Selections {
				if f, ok := sel.(*ast.Field); ok {
					fields = append(fields, f)
				}
			}
		case *ast.FragmentDefinition:
			fragments[d.Name.Value] = d
		}
	}
	return fields, fragments
}

func TestFromFlags(t *testing.T) {
	require.Nil(t, FromFlags(nil))
	require.Equal(t, Includes{}, FromFlags(map[string]interface{}{}))
	require.Equal(t, Includes{"postedBy": nil}, FromFlags(map[string]interface{}{
		"postedBy": true,
		"voters":   false,
	}))
	require.Equal(t, Includes{"voters": nil}, FromFlags(map[string]interface{}{
		"postedBy": nil,
		"voters":   true,
	}))
}

func TestMerge(t *testing.T) {
	a := Includes{"postedBy": nil, "voters": Includes{"links": nil}}
	b := Includes{"voters": Includes{"votes": nil}}

	require.Equal(t, Includes{
		"postedBy": nil,
		"voters":   Includes{"links": nil, "votes": nil},
	}, Merge(a, b))
	require.Equal(t, Includes{"links": nil}, a["voters"], "inputs must not be modified")
	require.Nil(t, Merge(nil, nil))
}

func TestPaths(t *testing.T) {
	inc := Includes{
		"voters":   Includes{"links": Includes{"postedBy": nil}},
		"postedBy": nil,
	}
	require.Equal(t, []string{"postedBy", "voters", "voters.links", "voters.links.postedBy"}, inc.Paths())
	require.Empty(t, Includes(nil).Paths())
}

func TestFromFieldsFeed(t *testing.T) {
	fields, fragments := rootFields(t, `{
		feed(take: 10) {
			id
			count
			links {
				id
				url
				postedBy { name }
				voters { email links { id } }
			}
		}
	}`)

	require.Equal(t, Includes{
		"postedBy": nil,
		"voters":   Includes{"links": nil},
	}, FromFields(fields, fragments, "links"))
}

func TestFromFieldsScalarsOnly(t *testing.T) {
	fields, fragments := rootFields(t, `{ link(id: 1) { id description url createdAt } }`)
	require.Empty(t, FromFields(fields, fragments))
}

func TestFromFieldsNestedNameIsNotUnwrapped(t *testing.T) {
	// only the top level "links" of a feed is a wrapper, the one below voters is a relation
	fields, fragments := rootFields(t, `{
		feed { links { voters { links { postedBy { id } } } } }
	}`)

	require.Equal(t, Includes{
		"voters": Includes{"links": Includes{"postedBy": nil}},
	}, FromFields(fields, fragments, "links"))
}

func TestFromFieldsFragments(t *testing.T) {
	fields, fragments := rootFields(t, `
		query {
			link(id: 3) {
				...withAuthor
				... on Link { voters { id } }
			}
		}
		fragment withAuthor on Link { postedBy { name votes { id } } }
	`)

	require.Equal(t, Includes{
		"postedBy": Includes{"votes": nil},
		"voters":   nil,
	}, FromFields(fields, fragments))
}

func TestFromFieldsMergesRepeatedSelections(t *testing.T) {
	fields, fragments := rootFields(t, `{
		link(id: 1) {
			postedBy { id }
			author: postedBy { links { id } }
		}
	}`)

	require.Equal(t, Includes{"postedBy": Includes{"links": nil}}, FromFields(fields, fragments))
}
