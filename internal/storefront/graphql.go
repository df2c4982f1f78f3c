package storefront

import (
	"fmt"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
	"strings"
)

// Operation is a parsed GraphQL document with exactly one named operation.
type Operation struct {
	Name     string
	Document string
}

func NewOperation(document string) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Input: document})
	if err != nil {
		return Operation{}, fmt.Errorf("parser.ParseQuery: %w", err)
	}

	if len(doc.Operations) != 1 {
		return Operation{}, fmt.Errorf("document must define exactly one operation, got %d", len(doc.Operations))
	}

	name := doc.Operations[0].Name
	if name == "" {
		return Operation{}, fmt.Errorf("operation is anonymous")
	}

	return Operation{
		Name:     name,
		Document: strings.TrimSpace(document),
	}, nil
}

// MustOperation is NewOperation for package-level documents.
func MustOperation(document string) Operation {
	op, err := NewOperation(document)
	if err != nil {
		panic(fmt.Sprintf("storefront: %v", err))
	}
	return op
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type GraphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []GraphQLError `json:"errors,omitempty"`
}

type GraphQLError struct {
	Message    string                 `json:"message"`
	Path       []any                  `json:"path,omitempty"`
	Extensions map[string]any         `json:"extensions,omitempty"`
	Locations  []GraphQLErrorLocation `json:"locations,omitempty"`
}

type GraphQLErrorLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func formatGraphQLErrors(errs []GraphQLError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		if len(e.Path) > 0 {
			msg = fmt.Sprintf("%s (path: %v)", msg, e.Path)
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "unknown graphql error"
	}
	return strings.Join(parts, "; ")
}
