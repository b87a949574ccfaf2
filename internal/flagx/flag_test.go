package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{"separate value", []string{"-a", ":8080", "-x", "1"}, []string{"-a"}, []string{"-a", ":8080"}},
		{"equals form", []string{"-s=secret", "-x=1"}, []string{"-s"}, []string{"-s=secret"}},
		{"unknown flags dropped", []string{"-x", "1", "positional"}, []string{"-a"}, []string{}},
		{"flag at end without value", []string{"-a"}, []string{"-a"}, []string{"-a"}},
		{"next token is a flag", []string{"-a", "-d", "dsn"}, []string{"-a", "-d"}, []string{"-a", "-d", "dsn"}},
		{"order preserved", []string{"-d", "dsn", "-a", ":1"}, []string{"-a", "-d"}, []string{"-d", "dsn", "-a", ":1"}},
		{"empty", nil, []string{"-a"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "a.json", ConfigFilePath([]string{"-c", "a.json", "-a", ":1"}))
	assert.Equal(t, "b.json", ConfigFilePath([]string{"-config", "b.json"}))
	assert.Equal(t, "c.json", ConfigFilePath([]string{"-config=c.json"}))
	assert.Equal(t, "", ConfigFilePath([]string{"-a", ":1"}))
	assert.Equal(t, "", ConfigFilePath(nil))
}
