package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/resumekeeper/internal/flagx"
	"github.com/dmitrijs2005/resumekeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the optional JSON config file.
// Durations accept both "10m" strings and integer nanoseconds.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	OTPValidityDuration         timex.Duration `json:"otp_validity_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	LogFormat                   string         `json:"log_format"`
	LogLevel                    string         `json:"log_level"`
	StorageBackend              string         `json:"storage_backend"`
	LocalStorageDir             string         `json:"local_storage_dir"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	SMTPHost                    string         `json:"smtp_host"`
	SMTPPort                    int            `json:"smtp_port"`
	SMTPUser                    string         `json:"smtp_user"`
	SMTPPassword                string         `json:"smtp_password"`
	SMTPTimeout                 timex.Duration `json:"smtp_timeout"`
	DevLogOTP                   bool           `json:"dev_log_otp"`
	MailFrom                    string         `json:"mail_from"`
	MaxUploadBytes              int64          `json:"max_upload_bytes"`
}

// parseJson overlays values from the file named by -c / -config onto
// config. Keys absent from the file (zero values) leave config untouched.
// An unreadable file or invalid JSON panics: the server must not start
// with a half-applied configuration.
func parseJson(config *Config, args []string) {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return
	}

	file, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	overlay(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	overlay(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	overlay(&config.DatabaseDSN, c.DatabaseDSN)
	overlay(&config.SecretKey, c.SecretKey)
	overlay(&config.AccessTokenValidityDuration, c.AccessTokenValidityDuration.Duration)
	overlay(&config.OTPValidityDuration, c.OTPValidityDuration.Duration)
	overlay(&config.BcryptCost, c.BcryptCost)
	overlay(&config.LogFormat, c.LogFormat)
	overlay(&config.LogLevel, c.LogLevel)
	overlay(&config.StorageBackend, c.StorageBackend)
	overlay(&config.LocalStorageDir, c.LocalStorageDir)
	overlay(&config.S3RootUser, c.S3RootUser)
	overlay(&config.S3RootPassword, c.S3RootPassword)
	overlay(&config.S3Bucket, c.S3Bucket)
	overlay(&config.S3Region, c.S3Region)
	overlay(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlay(&config.SMTPHost, c.SMTPHost)
	overlay(&config.SMTPPort, c.SMTPPort)
	overlay(&config.SMTPUser, c.SMTPUser)
	overlay(&config.SMTPPassword, c.SMTPPassword)
	overlay(&config.SMTPTimeout, c.SMTPTimeout.Duration)
	overlay(&config.DevLogOTP, c.DevLogOTP)
	overlay(&config.MailFrom, c.MailFrom)
	overlay(&config.MaxUploadBytes, c.MaxUploadBytes)
}

func overlay[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
