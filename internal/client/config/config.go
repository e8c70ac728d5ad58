package config

import (
	"time"

	"github.com/dmitrijs2005/adminpanel/internal/common"
)

// Config holds runtime settings for the admin console.
//
// Fields:
//   - StorageDriver: "sqlite", "postgres" or "memory".
//   - DatabasePath: SQLite file, used by the sqlite driver.
//   - DatabaseDSN: connection string, used by the postgres driver.
//   - Origin: namespace scope; two origins never see each other's records.
//   - OTPCode: the one-time code the recovery flow accepts.
//   - OTPResendCooldown: minimum delay between two OTP sends.
//   - ResetSecret: HMAC key for password-reset grants.
//   - LogLevel: debug, info, warn or error.
type Config struct {
	StorageDriver     string        `env:"PANEL_STORAGE_DRIVER"`
	DatabasePath      string        `env:"PANEL_DB_PATH"`
	DatabaseDSN       string        `env:"PANEL_DATABASE_DSN"`
	Origin            string        `env:"PANEL_ORIGIN"`
	OTPCode           string        `env:"PANEL_OTP_CODE"`
	OTPResendCooldown time.Duration `env:"PANEL_OTP_COOLDOWN"`
	ResetSecret       string        `env:"PANEL_RESET_SECRET"`
	LogLevel          string        `env:"PANEL_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageDriver = "sqlite"
	c.DatabasePath = "data/panel.db"
	c.DatabaseDSN = ""
	c.Origin = "localhost"
	c.OTPCode = "123456"
	c.OTPResendCooldown = 60 * time.Second
	c.ResetSecret = ""
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones. A random reset secret is generated when
// none was configured.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	cfg.ensureResetSecret()
	return cfg
}

func (c *Config) ensureResetSecret() {
	if c.ResetSecret != "" {
		return
	}
	s, err := common.MakeRandHexString(32)
	if err != nil {
		panic(err)
	}
	c.ResetSecret = s
}
