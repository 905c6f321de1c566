package graph

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"
)

// Request is a GraphQL request as sent over HTTP
type Request struct {
	Query         string                 `json:"query" query:"query" validate:"required"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
	OperationName string                 `json:"operationName,omitempty" query:"operationName"`
}

// Operation returns the type ("query", "mutation" or "subscription") of the
// operation req would execute. It returns "" when the document does not parse
// or names no such operation; Do reports those errors.
func (req Request) Operation() string {
	doc, err := parser.Parse(parser.ParseParams{Source: req.Query})
	if err != nil {
		return ""
	}
	var ops []*ast.OperationDefinition
	for _, def := range doc.Definitions {
		if op, ok := def.(*ast.OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	for _, op := range ops {
		if req.OperationName == "" && len(ops) == 1 {
			return op.Operation
		}
		if op.Name != nil && op.Name.Value == req.OperationName {
			return op.Operation
		}
	}
	return ""
}

// Do executes req against schema. ctx must carry a Context (see WithContext).
func Do(ctx context.Context, schema graphql.Schema, req Request) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}
