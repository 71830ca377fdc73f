package config

import (
	"flag"
	"os"
	"time"

	"github.com/hardbank/hardbank/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   session store backend: "memory" or "redis"
//	-r string   redis address (host:port)
//	-t int      session TTL, minutes
//	-k int      lockout threshold, failed attempts (0 disables)
//	-l int      lockout duration, minutes
//	-m int      minimum login latency, milliseconds
//	-w int      login throttle window, milliseconds (0 disables)
//	-x int      per-transfer cap in minor units (0 disables)
//	-i          mark session cookies insecure (local development only)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-r", "-t", "-k", "-l", "-m", "-w", "-x", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SessionStore, "s", config.SessionStore, "session store backend (memory|redis)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")

	sessionTTL := fs.Int("t", int(config.SessionTTL.Minutes()), "session TTL (in minutes)")
	fs.IntVar(&config.LockoutThreshold, "k", config.LockoutThreshold, "failed attempts before lockout (0 disables)")
	lockoutDuration := fs.Int("l", int(config.LockoutDuration.Minutes()), "lockout duration (in minutes)")
	loginMinDuration := fs.Int("m", int(config.LoginMinDuration.Milliseconds()), "minimum login latency (in milliseconds)")
	throttleWindow := fs.Int("w", int(config.LoginThrottleWindow.Milliseconds()), "login throttle window (in milliseconds, 0 disables)")
	fs.Int64Var(&config.TransferLimit, "x", config.TransferLimit, "per-transfer cap in minor units (0 disables)")

	insecure := fs.Bool("i", !config.CookieSecure, "allow session cookies over plain http")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionTTL = time.Duration(*sessionTTL) * time.Minute
	config.LockoutDuration = time.Duration(*lockoutDuration) * time.Minute
	config.LoginMinDuration = time.Duration(*loginMinDuration) * time.Millisecond
	config.LoginThrottleWindow = time.Duration(*throttleWindow) * time.Millisecond
	config.CookieSecure = !*insecure
}
