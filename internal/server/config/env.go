package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// dotenvFile is loaded into the process environment when present.
// Variables already set in the environment are not overridden.
var dotenvFile = ".env"

// parseEnv overlays RK_* environment variables onto config.
// Malformed numeric, boolean or duration values are ignored.
func parseEnv(config *Config) {
	if _, err := os.Stat(dotenvFile); err == nil {
		_ = godotenv.Load(dotenvFile)
	}

	setString(&config.EndpointAddrHTTP, "RK_HTTP_ADDR")
	setString(&config.EndpointAddrGRPC, "RK_GRPC_ADDR")
	setString(&config.DatabaseDSN, "RK_DATABASE_DSN")
	setString(&config.SecretKey, "RK_SECRET_KEY")
	setDuration(&config.AccessTokenValidityDuration, "RK_ACCESS_TOKEN_TTL")
	setDuration(&config.OTPValidityDuration, "RK_OTP_TTL")
	setInt(&config.BcryptCost, "RK_BCRYPT_COST")
	setString(&config.LogFormat, "RK_LOG_FORMAT")
	setString(&config.LogLevel, "RK_LOG_LEVEL")
	setString(&config.StorageBackend, "RK_STORAGE_BACKEND")
	setString(&config.LocalStorageDir, "RK_STORAGE_DIR")
	setString(&config.S3RootUser, "RK_S3_ROOT_USER")
	setString(&config.S3RootPassword, "RK_S3_ROOT_PASSWORD")
	setString(&config.S3Bucket, "RK_S3_BUCKET")
	setString(&config.S3Region, "RK_S3_REGION")
	setString(&config.S3BaseEndpoint, "RK_S3_BASE_ENDPOINT")
	setString(&config.SMTPHost, "RK_SMTP_HOST")
	setInt(&config.SMTPPort, "RK_SMTP_PORT")
	setString(&config.SMTPUser, "RK_SMTP_USER")
	setString(&config.SMTPPassword, "RK_SMTP_PASSWORD")
	setDuration(&config.SMTPTimeout, "RK_SMTP_TIMEOUT")
	setBool(&config.DevLogOTP, "RK_DEV_LOG_OTP")
	setString(&config.MailFrom, "RK_MAIL_FROM")

	if v, ok := os.LookupEnv("RK_MAX_UPLOAD_BYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}
