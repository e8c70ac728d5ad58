package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/adminpanel/internal/flagx"
	"github.com/dmitrijs2005/adminpanel/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// OTPResendCooldown accepts "60s" or integer nanoseconds.
type JsonConfig struct {
	StorageDriver     string         `json:"storage_driver"`
	DatabasePath      string         `json:"database_path"`
	DatabaseDSN       string         `json:"database_dsn"`
	Origin            string         `json:"origin"`
	OTPCode           string         `json:"otp_code"`
	OTPResendCooldown timex.Duration `json:"otp_resend_cooldown"`
	ResetSecret       string         `json:"reset_secret"`
	LogLevel          string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Fields missing from
// the file keep their current value. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFilePath(os.Args[1:])
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorageDriver, jc.StorageDriver)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.Origin, jc.Origin)
	setString(&cfg.OTPCode, jc.OTPCode)
	setString(&cfg.ResetSecret, jc.ResetSecret)
	setString(&cfg.LogLevel, jc.LogLevel)
	if jc.OTPResendCooldown.Duration != 0 {
		cfg.OTPResendCooldown = jc.OTPResendCooldown.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
