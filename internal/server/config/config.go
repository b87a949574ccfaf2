// Package config handles configuration for the server component:
// defaults, environment (optionally seeded from a .env file), a JSON
// overlay and finally command-line flags. Later sources win.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/resumekeeper/internal/logging"
)

// Storage backends for resume binaries.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds runtime settings for the resumekeeper server.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the public HTTP API.
//   - EndpointAddrGRPC: bind address of the gRPC health endpoint; empty disables it.
//   - DatabaseDSN: PostgreSQL DSN (pgx); empty selects in-memory stores.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use the default in prod.
//   - AccessTokenValidityDuration: lifetime of issued tokens.
//   - OTPValidityDuration: lifetime of a signup one-time code.
//   - StorageBackend: "local" or "s3" for uploaded resume files.
//   - LogLevel: minimum level logged (debug, info, warn or error).
//   - SMTPHost: mail relay for OTP delivery.
//   - DevLogOTP: with no SMTPHost, write signup codes to the log instead of
//     refusing signups. Development only.
type Config struct {
	EndpointAddrHTTP            string
	EndpointAddrGRPC            string
	DatabaseDSN                 string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	OTPValidityDuration         time.Duration
	BcryptCost                  int
	LogFormat                   string
	LogLevel                    string
	StorageBackend              string
	LocalStorageDir             string
	S3RootUser                  string
	S3RootPassword              string
	S3Bucket                    string
	S3Region                    string
	S3BaseEndpoint              string
	SMTPHost                    string
	SMTPPort                    int
	SMTPUser                    string
	SMTPPassword                string
	SMTPTimeout                 time.Duration
	DevLogOTP                   bool
	MailFrom                    string
	MaxUploadBytes              int64
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is insecure and must be overridden outside development.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.EndpointAddrGRPC = ""
	c.DatabaseDSN = ""
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 60 * time.Minute
	c.OTPValidityDuration = 10 * time.Minute
	c.BcryptCost = 10
	c.LogFormat = "json"
	c.LogLevel = "info"
	c.StorageBackend = StorageLocal
	c.LocalStorageDir = "uploads"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "resumes"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.SMTPPort = 587
	c.SMTPTimeout = 10 * time.Second
	c.DevLogOTP = false
	c.MailFrom = "no-reply@resumekeeper.local"
	c.MaxUploadBytes = 10 << 20
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key must not be empty"))
	}
	if c.AccessTokenValidityDuration <= 0 {
		errs = append(errs, errors.New("access token validity must be positive"))
	}
	if c.OTPValidityDuration <= 0 {
		errs = append(errs, errors.New("OTP validity must be positive"))
	}
	if c.StorageBackend != StorageLocal && c.StorageBackend != StorageS3 {
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.SMTPTimeout <= 0 {
		errs = append(errs, errors.New("SMTP timeout must be positive"))
	}
	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("max upload size must be positive"))
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config from defaults, the environment, an optional
// JSON file and command-line flags, in that order.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
