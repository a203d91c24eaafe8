package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadMerge loads the merge ball configuration.
// Search order: customPath -> ~/.arcade/configs/merge.yaml -> ./configs/merge.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides the keys it sets.
func LoadMerge(customPath string) (MergeConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return MergeConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parseMerge(data)
		if err != nil {
			return MergeConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("merge.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseMerge(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "merge.yaml")); err == nil {
		if cfg, err := parseMerge(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := parseMerge(defaultMergeYAML)
	if err != nil {
		return DefaultMergeConfig(), nil
	}
	return cfg, nil
}

// parseMerge decodes YAML over the built-in defaults and validates the result.
func parseMerge(data []byte) (MergeConfig, error) {
	cfg := DefaultMergeConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return MergeConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return MergeConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}
