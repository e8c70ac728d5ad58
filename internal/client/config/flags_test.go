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
			args: []string{"-d", "postgres", "-p", "x.db", "-dsn", "postgres://h/db", "-o", "acme",
				"-otp", "000000", "-cooldown", "5s", "-l", "debug"},
			expected: &Config{
				StorageDriver:     "postgres",
				DatabasePath:      "x.db",
				DatabaseDSN:       "postgres://h/db",
				Origin:            "acme",
				OTPCode:           "000000",
				OTPResendCooldown: 5 * time.Second,
				LogLevel:          "debug",
			},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-o=acme"},
			expected: &Config{Origin: "acme"},
		},
		{name: "incorrect cooldown", args: []string{"-cooldown", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setArgs(t, tt.args...)

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
