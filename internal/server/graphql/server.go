package graphql

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/blogql/internal/logging"
	"github.com/dmitrijs2005/blogql/internal/server/config"
	"github.com/gorilla/mux"
	"github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

type GraphQLServer struct {
	address         string
	logger          logging.Logger
	schema          *graphql.Schema
	jwtSecret       []byte
	shutdownTimeout time.Duration
}

func NewGraphQLServer(cfg *config.Config, l logging.Logger, us userService, ps postService) (*GraphQLServer, error) {
	logger := l.With("module", "graphql_server")

	schema, err := NewSchema(logger, us, ps)
	if err != nil {
		return nil, err
	}

	return &GraphQLServer{
		address:         cfg.EndpointAddrHTTP,
		logger:          logger,
		schema:          schema,
		jwtSecret:       []byte(cfg.SecretKey),
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// Handler returns the HTTP routes of the server:
//
//	POST /graphql  GraphQL queries and mutations
//	GET  /health   liveness probe
func (s *GraphQLServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(requestLogMiddleware(s.logger))

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	gql := identityMiddleware(s.jwtSecret)(&relay.Handler{Schema: s.schema})
	r.Handle("/graphql", gql).Methods(http.MethodPost)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "OK"})
}

// Run serves HTTP until ctx is cancelled, then gives in-flight requests up
// to the shutdown timeout to finish.
func (s *GraphQLServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping GraphQL server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "graceful shutdown failed", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting GraphQL server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-stopped
	return nil
}
