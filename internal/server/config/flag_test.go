package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:9090", "-g", ":50051", "-d", "db", "-s", "secret",
				"-t", "1", "-o", "3", "-l", "zap", "-v", "debug", "-f", "s3",
				"-u", "user", "-p", "password", "-b", "bucket", "-r", "us-west-1", "-e", "http://endpoint",
			},
			expected: &Config{
				EndpointAddrHTTP:            "127.0.0.1:9090",
				EndpointAddrGRPC:            ":50051",
				DatabaseDSN:                 "db",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 1 * time.Minute,
				OTPValidityDuration:         3 * time.Minute,
				LogFormat:                   "zap",
				LogLevel:                    "debug",
				StorageBackend:              "s3",
				S3RootUser:                  "user",
				S3RootPassword:              "password",
				S3Bucket:                    "bucket",
				S3Region:                    "us-west-1",
				S3BaseEndpoint:              "http://endpoint",
			},
		},
		{
			name: "unrelated flags ignored",
			args: []string{"-c", "cfg.json", "-x", "1", "-s", "k"},
			expected: &Config{
				SecretKey: "k",
			},
		},
		{
			name:        "bad minutes value",
			args:        []string{"-t", "ten"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}

func TestParseFlags_KeepsSubMinuteDurationsWhenUnset(t *testing.T) {
	config := &Config{AccessTokenValidityDuration: 30 * time.Second}
	parseFlags(config, []string{"-s", "k"})
	assert.Equal(t, 30*time.Second, config.AccessTokenValidityDuration)
}
