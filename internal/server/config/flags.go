package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/blogql/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token validity, seconds
//	-w int      bcrypt work factor
//	-l string   log level
//	-g int      graceful shutdown timeout, seconds
//
// os.Args is filtered down to these flags first, so the -c/-config flag
// handled by parseJson does not make parsing fail.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-w", "-l", "-g"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	tokenValidity := fs.Int64("t", int64(config.TokenValidityDuration.Seconds()), "token_validity_duration (in seconds)")

	fs.IntVar(&config.PasswordHashCost, "w", config.PasswordHashCost, "password hash work factor")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	shutdownTimeout := fs.Int64("g", int64(config.ShutdownTimeout.Seconds()), "graceful shutdown timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Second
	config.ShutdownTimeout = time.Duration(*shutdownTimeout) * time.Second
}
