package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// ScanConfig is the on-disk configuration. JSON and JSONC files may carry
// comments (stripped via tidwall/jsonc); YAML is accepted as an alternative.
type ScanConfig struct {
	ConfigVersion            string   `json:"configVersion" yaml:"configVersion"`
	RemoveCommentsWithPrefix []string `json:"removeCommentsWithPrefix" yaml:"removeCommentsWithPrefix"`
	NotableCommentsPrefix    []string `json:"notableCommentsPrefix" yaml:"notableCommentsPrefix"`
	Exclude                  []string `json:"exclude" yaml:"exclude"`
}

var configFileNames = []string{
	"srcscan.config.json",
	"srcscan.config.jsonc",
	"srcscan.config.yaml",
	"srcscan.config.yml",
}

// supportedConfigVersions gates configVersion so a future schema bump fails
// loudly instead of being half-applied.
const supportedConfigVersions = ">=1.0, <2.0"

// LoadConfig loads configuration from a specific file or from the first
// recognized config file inside a directory. A directory without any config
// file yields (nil, nil): configuration is optional.
func LoadConfig(configPath string) (*ScanConfig, error) {
	fileInfo, err := os.Stat(configPath)
	if err != nil {
		return nil, err
	}

	actualPath := configPath
	if fileInfo.IsDir() {
		actualPath = ""
		for _, name := range configFileNames {
			candidate := filepath.Join(configPath, name)
			if _, statErr := os.Stat(candidate); statErr == nil {
				actualPath = candidate
				break
			}
		}
		if actualPath == "" {
			return nil, nil
		}
	}

	content, err := os.ReadFile(actualPath)
	if err != nil {
		return nil, err
	}

	var config ScanConfig
	if strings.HasSuffix(actualPath, ".yaml") || strings.HasSuffix(actualPath, ".yml") {
		if err := yaml.Unmarshal(content, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", actualPath, err)
		}
	} else {
		if err := json.Unmarshal(jsonc.ToJSON(content), &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", actualPath, err)
		}
	}

	if err := validateConfigVersion(config.ConfigVersion); err != nil {
		return nil, err
	}
	return &config, nil
}

func validateConfigVersion(version string) error {
	if version == "" {
		return nil
	}
	constraint, err := semver.NewConstraint(supportedConfigVersions)
	if err != nil {
		return err
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("invalid configVersion %q: %w", version, err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("unsupported configVersion %s, this build supports %s", version, supportedConfigVersions)
	}
	return nil
}
