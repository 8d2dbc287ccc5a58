// Command server runs the blog GraphQL API.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/blogql/internal/server"
	"github.com/dmitrijs2005/blogql/internal/server/config"
)

func main() {
	cfg := config.LoadConfig()

	app, err := server.NewApp(cfg)
	if err != nil {
		log.Fatalf("server init: %v", err)
	}

	app.Run(context.Background())
}
