package graph

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestOperation(t *testing.T) {
	tests := []struct {
		req  Request
		want string
	}{
		{Request{Query: `{ feed { count } }`}, "query"},
		{Request{Query: `query { feed { count } }`}, "query"},
		{Request{Query: `mutation { delete(id: 1) { id } }`}, "mutation"},
		{Request{Query: `query a { feed { count } } mutation b { delete(id: 1) { id } }`, OperationName: "b"}, "mutation"},
		{Request{Query: `query a { feed { count } } mutation b { delete(id: 1) { id } }`, OperationName: "a"}, "query"},
		// ambiguous or unknown operations and syntax errors are left to the executor
		{Request{Query: `query a { feed { count } } mutation b { delete(id: 1) { id } }`}, ""},
		{Request{Query: `query a { feed { count } }`, OperationName: "c"}, ""},
		{Request{Query: `mutation {`}, ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.req.Operation(), tt.req.Query)
	}
}
