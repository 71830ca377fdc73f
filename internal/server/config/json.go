package config

import (
	"encoding/json"
	"os"

	"github.com/hardbank/hardbank/internal/flagx"
	"github.com/hardbank/hardbank/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It uses timex.Duration for interval fields, which allows parsing
// both string values such as "15m" and integer nanoseconds. After
// unmarshalling, its fields are copied into the runtime Config struct.
type JsonConfig struct {
	EndpointAddr        string         `json:"endpoint_addr"`
	DatabaseDSN         string         `json:"database_dsn"`
	SessionStore        string         `json:"session_store"`
	RedisAddr           string         `json:"redis_addr"`
	RedisPassword       string         `json:"redis_password"`
	SessionTTL          timex.Duration `json:"session_ttl"`
	LockoutThreshold    int            `json:"lockout_threshold"`
	LockoutDuration     timex.Duration `json:"lockout_duration"`
	LoginMinDuration    timex.Duration `json:"login_min_duration"`
	LoginThrottleWindow timex.Duration `json:"login_throttle_window"`
	TransferLimit       int64          `json:"transfer_limit"`
	CookieSecure        bool           `json:"cookie_secure"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags. If
// neither is set, no JSON file is loaded. If the path is set but the file
// cannot be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.SessionStore = c.SessionStore
	config.RedisAddr = c.RedisAddr
	config.RedisPassword = c.RedisPassword
	config.SessionTTL = c.SessionTTL.Duration
	config.LockoutThreshold = c.LockoutThreshold
	config.LockoutDuration = c.LockoutDuration.Duration
	config.LoginMinDuration = c.LoginMinDuration.Duration
	config.LoginThrottleWindow = c.LoginThrottleWindow.Duration
	config.TransferLimit = c.TransferLimit
	config.CookieSecure = c.CookieSecure
}
