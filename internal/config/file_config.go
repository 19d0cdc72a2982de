package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileConfig is the YAML config file layout, typically
// ~/.swiftsend/config.yaml.
type FileConfig struct {
	APIBaseURL      string           `yaml:"api_url"`
	Timeout         string           `yaml:"timeout"`
	LogLevel        string           `yaml:"log_level"`
	TokenFile       string           `yaml:"token_file"`
	TokenPassphrase string           `yaml:"token_passphrase"`
	Google          GoogleFileConfig `yaml:"google"`
}

type GoogleFileConfig struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

// DefaultFilePath is where New looks when no explicit path is given.
func DefaultFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".swiftsend/config.yaml"
	}
	return filepath.Join(home, ".swiftsend", "config.yaml")
}

// LoadFile parses the YAML config at path. A missing file yields the zero
// config; a malformed one is an error.
func LoadFile(path string) (FileConfig, error) {
	if path == "" {
		path = DefaultFilePath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, errors.Wrapf(err, "[config.LoadFile] read %s", path)
	}

	var file FileConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return FileConfig{}, errors.Wrapf(err, "[config.LoadFile] parse %s", path)
	}
	return file, nil
}
