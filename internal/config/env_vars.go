package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

const (
	apiURLEnvVar       = "SWIFTSEND_API_URL"
	timeoutEnvVar      = "SWIFTSEND_TIMEOUT"
	logLevelEnvVar     = "SWIFTSEND_LOG_LEVEL"
	googleIDEnvVar     = "SWIFTSEND_GOOGLE_CLIENT_ID"
	googleSecretEnvVar = "SWIFTSEND_GOOGLE_CLIENT_SECRET"
	googleRedirectVar  = "SWIFTSEND_GOOGLE_REDIRECT_URL"
	tokenFileEnvVar    = "SWIFTSEND_TOKEN_FILE"
	passphraseEnvVar   = "SWIFTSEND_TOKEN_PASSPHRASE"
)

const (
	defaultAPIBaseURL        = "http://localhost:5000/api"
	defaultRequestTimeout    = 30 * time.Second
	defaultLogLevel          = "warn"
	defaultGoogleRedirectURL = "http://127.0.0.1:8765/callback"
)

// LoadDotEnv pulls a local .env file into the process environment. A missing
// file is fine.
func LoadDotEnv() {
	_ = godotenv.Load()
}

type EnvVars struct{}

func (EnvVars) APIBaseURL() string {
	return GetEnv(apiURLEnvVar, "")
}

func (EnvVars) RequestTimeout() time.Duration {
	raw := GetEnv(timeoutEnvVar, "")
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return d
}

func (EnvVars) LogLevel() string {
	return GetEnv(logLevelEnvVar, "")
}

func (EnvVars) GoogleClientID() string {
	return GetEnv(googleIDEnvVar, "")
}

func (EnvVars) GoogleClientSecret() string {
	return GetEnv(googleSecretEnvVar, "")
}

func (EnvVars) GoogleRedirectURL() string {
	return GetEnv(googleRedirectVar, "")
}

func (EnvVars) TokenFile() string {
	return GetEnv(tokenFileEnvVar, "")
}

func (EnvVars) TokenPassphrase() string {
	return GetEnv(passphraseEnvVar, "")
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swiftsend/tokens.json"
	}
	return filepath.Join(home, ".swiftsend", "tokens.json")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
