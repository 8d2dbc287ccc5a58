// Package graphql exposes the blog over GraphQL: the schema, its resolvers
// and the HTTP server that carries them.
package graphql

import (
	_ "embed"

	"github.com/dmitrijs2005/blogql/internal/logging"
	"github.com/graph-gophers/graphql-go"
)

//go:embed schema.graphql
var schemaSDL string

// maxQueryDepth bounds how deeply clients may nest user/post/profile
// selections.
const maxQueryDepth = 10

// NewSchema parses the schema and binds it to resolvers backed by us and ps.
func NewSchema(l logging.Logger, us userService, ps postService) (*graphql.Schema, error) {
	r := &Resolver{users: us, posts: ps, logger: l}
	return graphql.ParseSchema(schemaSDL, r,
		graphql.MaxDepth(maxQueryDepth),
		graphql.Logger(panicLogger{logger: l}),
	)
}
