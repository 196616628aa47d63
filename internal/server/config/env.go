package config

import (
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment, e.g. NUTRISCAN_DATABASE_DSN.
const envPrefix = "NUTRISCAN"

// parseEnv overlays values from NUTRISCAN_* environment variables. Keys match
// the JSON field names.
func parseEnv(config *Config) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	str := func(key string, dst *string) {
		if v.IsSet(key) {
			*dst = v.GetString(key)
		}
	}

	str("endpoint_addr_http", &config.EndpointAddrHTTP)
	str("endpoint_addr_grpc", &config.EndpointAddrGRPC)
	str("database_dsn", &config.DatabaseDSN)
	str("secret_key", &config.SecretKey)
	str("log_level", &config.LogLevel)
	str("s3_root_user", &config.S3RootUser)
	str("s3_root_password", &config.S3RootPassword)
	str("s3_bucket", &config.S3Bucket)
	str("s3_region", &config.S3Region)
	str("s3_base_endpoint", &config.S3BaseEndpoint)
	str("s3_public_base_url", &config.S3PublicBaseURL)
	str("redis_addr", &config.RedisAddr)
	str("redis_password", &config.RedisPassword)

	if v.IsSet("redis_db") {
		config.RedisDB = v.GetInt("redis_db")
	}
	if v.IsSet("signup_rate_limit") {
		config.SignupRateLimit = v.GetInt("signup_rate_limit")
	}
	if v.IsSet("login_rate_limit") {
		config.LoginRateLimit = v.GetInt("login_rate_limit")
	}
	if v.IsSet("rate_limit_window") {
		config.RateLimitWindow = v.GetDuration("rate_limit_window")
	}
	if v.IsSet("require_token_binding") {
		config.RequireTokenBinding = v.GetBool("require_token_binding")
	}
	if v.IsSet("avatar_url_ttl") {
		config.AvatarURLTTL = v.GetDuration("avatar_url_ttl")
	}
	if v.IsSet("shutdown_timeout") {
		config.ShutdownTimeout = v.GetDuration("shutdown_timeout")
	}
}
