package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/nutriscan/internal/flagx"
)

// serverFlags lists every flag parseFlags understands.
var serverFlags = []string{
	"-a", "-g", "-d", "-s", "-l",
	"-u", "-p", "-b", "-region", "-e", "-public-url",
	"-redis", "-signup-limit", "-login-limit", "-bind",
}

// parseFlags overlays values from command-line flags.
//
//	-a string        HTTP bind address (":8080")
//	-g string        gRPC bind address (":50051")
//	-d string        PostgreSQL DSN
//	-s string        session token HMAC secret
//	-l string        log level
//	-u / -p string   S3 user / password
//	-b string        S3 bucket
//	-region string   S3 region
//	-e string        S3 base endpoint
//	-public-url      public base URL for avatar links
//	-redis string    Redis address for rate limiting
//	-signup-limit n  signups per window and IP (0 disables)
//	-login-limit n   logins per window and IP (0 disables)
//	-bind=bool       require session token on catalog calls
//
// os.Args is filtered through flagx.FilterArgs first so flags owned by other
// components (-c) do not break parsing. Invalid values panic.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "region", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3PublicBaseURL, "public-url", config.S3PublicBaseURL, "public base URL for avatars")
	fs.StringVar(&config.RedisAddr, "redis", config.RedisAddr, "Redis address")
	fs.IntVar(&config.SignupRateLimit, "signup-limit", config.SignupRateLimit, "signups per window")
	fs.IntVar(&config.LoginRateLimit, "login-limit", config.LoginRateLimit, "logins per window")
	fs.BoolVar(&config.RequireTokenBinding, "bind", config.RequireTokenBinding, "require session token on catalog calls")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
