package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/nutriscan/internal/flagx"
	"github.com/dmitrijs2005/nutriscan/internal/timex"
)

// JsonConfig mirrors Config for JSON decoding. Pointer fields distinguish
// "absent" from zero values so a partial file only overrides what it names.
type JsonConfig struct {
	EndpointAddrHTTP    *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC    *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN         *string         `json:"database_dsn"`
	SecretKey           *string         `json:"secret_key"`
	LogLevel            *string         `json:"log_level"`
	S3RootUser          *string         `json:"s3_root_user"`
	S3RootPassword      *string         `json:"s3_root_password"`
	S3Bucket            *string         `json:"s3_bucket"`
	S3Region            *string         `json:"s3_region"`
	S3BaseEndpoint      *string         `json:"s3_base_endpoint"`
	S3PublicBaseURL     *string         `json:"s3_public_base_url"`
	AvatarURLTTL        *timex.Duration `json:"avatar_url_ttl"`
	RedisAddr           *string         `json:"redis_addr"`
	RedisPassword       *string         `json:"redis_password"`
	RedisDB             *int            `json:"redis_db"`
	SignupRateLimit     *int            `json:"signup_rate_limit"`
	LoginRateLimit      *int            `json:"login_rate_limit"`
	RateLimitWindow     *timex.Duration `json:"rate_limit_window"`
	RequireTokenBinding *bool           `json:"require_token_binding"`
	ShutdownTimeout     *timex.Duration `json:"shutdown_timeout"`
}

// parseJson overlays values from the file named by -c / -config, if any.
// An unreadable or malformed file panics: the server must not start with a
// configuration the operator did not intend.
func parseJson(config *Config) {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		panic(err)
	}
	c.apply(config)
}

func (c *JsonConfig) apply(config *Config) {
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3PublicBaseURL, c.S3PublicBaseURL)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.SignupRateLimit != nil {
		config.SignupRateLimit = *c.SignupRateLimit
	}
	if c.LoginRateLimit != nil {
		config.LoginRateLimit = *c.LoginRateLimit
	}
	if c.RateLimitWindow != nil {
		config.RateLimitWindow = c.RateLimitWindow.Duration
	}
	if c.RequireTokenBinding != nil {
		config.RequireTokenBinding = *c.RequireTokenBinding
	}
	if c.AvatarURLTTL != nil {
		config.AvatarURLTTL = c.AvatarURLTTL.Duration
	}
	if c.ShutdownTimeout != nil {
		config.ShutdownTimeout = c.ShutdownTimeout.Duration
	}
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
