// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/H0llyW00dzZ/tls-cert-verifier/src/internal/helper/gc"
)

// ConfigEnv names the environment variable consulted when no --config flag is given.
const ConfigEnv = "TLS_CERT_VERIFIER_CONFIG"

// maxConfigSize bounds configuration file reads.
const maxConfigSize = 1 << 20

// configFormat represents supported configuration file formats.
type configFormat int

const (
	// configFormatJSON represents JSON configuration format (.json)
	configFormatJSON configFormat = iota
	// configFormatYAML represents YAML configuration format (.yaml, .yml)
	configFormatYAML
)

// Config holds the settings shared by every subcommand.
//
// Values from the file are merged with command-line flags: list flags append
// to the file's lists and scalar flags override them.
type Config struct {
	// Trust: Certificate authorities and revocation lists to load
	Trust struct {
		// CAFiles: PEM bundles of trusted CA certificates
		CAFiles []string `json:"caFiles" yaml:"caFiles"`
		// CRLFiles: PEM or DER certificate revocation lists
		CRLFiles []string `json:"crlFiles" yaml:"crlFiles"`
	} `json:"trust" yaml:"trust"`

	// Verify: Chain verification settings
	Verify struct {
		// Flags: Verification flag names, e.g. allow-x509-v1-ca-crt
		Flags []string `json:"flags" yaml:"flags"`
		// Hostname: Expected identity of the leaf certificate (optional)
		Hostname string `json:"hostname,omitempty" yaml:"hostname,omitempty"`
	} `json:"verify" yaml:"verify"`

	// Output: Presentation settings
	Output struct {
		// Format: One of text, json, tree, table, pem or der
		Format string `json:"format" yaml:"format"`
	} `json:"output" yaml:"output"`
}

// detectConfigFormat determines the configuration file format based on file extension.
func detectConfigFormat(configPath string) configFormat {
	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".yaml", ".yml":
		return configFormatYAML
	default:
		return configFormatJSON
	}
}

// unmarshalConfig unmarshals configuration data based on the specified format.
func unmarshalConfig(data []byte, config *Config, format configFormat) error {
	switch format {
	case configFormatYAML:
		if err := yaml.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse YAML config file: %w", err)
		}
	default:
		if err := json.Unmarshal(data, config); err != nil {
			return fmt.Errorf("failed to parse JSON config file: %w", err)
		}
	}
	return nil
}

// LoadConfig loads the CLI configuration from a JSON or YAML file or applies defaults.
//
// Parameters:
//   - configPath: Path to the configuration file (optional, can be empty)
//     Supported formats: .json, .yaml, .yml
//
// Returns:
//   - *Config: Loaded configuration with defaults applied
//   - error: Read or parse error for the configuration file
//
// Configuration Priority:
//  1. Default values are set
//  2. TLS_CERT_VERIFIER_CONFIG environment variable is checked if configPath is empty
//  3. Config file values override defaults (if a path was found)
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	config.Output.Format = FormatText

	if configPath == "" {
		configPath = os.Getenv(ConfigEnv)
	}

	if configPath != "" {
		data, err := gc.ReadFile(configPath, maxConfigSize)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := unmarshalConfig(data, config, detectConfigFormat(configPath)); err != nil {
			return nil, err
		}

		if config.Output.Format == "" {
			config.Output.Format = FormatText
		}
	}

	return config, nil
}
