// Package config loads runtime configuration for the admin console.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. PANEL_* environment variables.
//  4. Command-line flags, which override earlier values.
//
// # JSON schema
//
// Intervals use timex.Duration, so values can be either strings like "60s"
// or integer nanoseconds:
//
//	{
//	  "storage_driver": "sqlite",
//	  "database_path": "data/panel.db",
//	  "origin": "localhost",
//	  "otp_code": "123456",
//	  "otp_resend_cooldown": "60s",
//	  "log_level": "info"
//	}
//
// # Environment
//
//	PANEL_STORAGE_DRIVER  PANEL_DB_PATH       PANEL_DATABASE_DSN
//	PANEL_ORIGIN          PANEL_OTP_CODE      PANEL_OTP_COOLDOWN
//	PANEL_RESET_SECRET    PANEL_LOG_LEVEL
package config
