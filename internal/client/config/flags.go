package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/adminpanel/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string     storage driver: sqlite, postgres or memory
//	-p string     SQLite database file
//	-dsn string   Postgres connection string
//	-o string     namespace origin
//	-otp string   accepted OTP code
//	-cooldown d   OTP resend cooldown (e.g. 30s)
//	-l string     log level
//
// os.Args is filtered with flagx.FilterArgs first so -c/-config and flags of
// other components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], "-d", "-p", "-dsn", "-o", "-otp", "-cooldown", "-l")

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageDriver, "d", cfg.StorageDriver, "storage driver (sqlite, postgres, memory)")
	fs.StringVar(&cfg.DatabasePath, "p", cfg.DatabasePath, "sqlite database file")
	fs.StringVar(&cfg.DatabaseDSN, "dsn", cfg.DatabaseDSN, "postgres connection string")
	fs.StringVar(&cfg.Origin, "o", cfg.Origin, "namespace origin")
	fs.StringVar(&cfg.OTPCode, "otp", cfg.OTPCode, "accepted OTP code")
	fs.DurationVar(&cfg.OTPResendCooldown, "cooldown", cfg.OTPResendCooldown, "OTP resend cooldown")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
