// Package config layers SwiftSend client settings: defaults, then the YAML
// config file, then environment variables. Environment always wins, so a
// deployed CLI can be repointed without touching the file.
package config

import "time"

type Config interface {
	ClientConfig
	GoogleConfig
	StorageConfig
}

type ClientConfig interface {
	GetAPIBaseURL() string
	GetRequestTimeout() time.Duration
	GetLogLevel() string
}

type GoogleConfig interface {
	GetGoogleClientID() string
	GetGoogleClientSecret() string
	GetGoogleRedirectURL() string
}

type StorageConfig interface {
	GetTokenFile() string
	GetTokenPassphrase() string
}

type mainConfig struct {
	env  EnvVars
	file FileConfig
}

var _ Config = mainConfig{}

// New builds the layered configuration. A missing config file is not an
// error; the env and defaults still apply.
func New(configPath string) (Config, error) {
	file, err := LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	return mainConfig{file: file}, nil
}

func (c mainConfig) GetAPIBaseURL() string {
	return firstOf(c.env.APIBaseURL(), c.file.APIBaseURL, defaultAPIBaseURL)
}

func (c mainConfig) GetRequestTimeout() time.Duration {
	if d := c.env.RequestTimeout(); d > 0 {
		return d
	}
	if c.file.Timeout != "" {
		if d, err := time.ParseDuration(c.file.Timeout); err == nil && d > 0 {
			return d
		}
	}
	return defaultRequestTimeout
}

func (c mainConfig) GetLogLevel() string {
	return firstOf(c.env.LogLevel(), c.file.LogLevel, defaultLogLevel)
}

func (c mainConfig) GetGoogleClientID() string {
	return firstOf(c.env.GoogleClientID(), c.file.Google.ClientID, "")
}

func (c mainConfig) GetGoogleClientSecret() string {
	return firstOf(c.env.GoogleClientSecret(), c.file.Google.ClientSecret, "")
}

func (c mainConfig) GetGoogleRedirectURL() string {
	return firstOf(c.env.GoogleRedirectURL(), c.file.Google.RedirectURL, defaultGoogleRedirectURL)
}

func (c mainConfig) GetTokenFile() string {
	return firstOf(c.env.TokenFile(), c.file.TokenFile, defaultTokenFile())
}

func (c mainConfig) GetTokenPassphrase() string {
	return firstOf(c.env.TokenPassphrase(), c.file.TokenPassphrase, "")
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
