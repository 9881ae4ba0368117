package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileName is the file looked up in the user and local config directories.
const configFileName = "platformer.yaml"

// LoadPlatformer loads the platformer configuration.
// Search order: customPath -> ~/.platformer/configs/platformer.yaml ->
// ./configs/platformer.yaml -> embedded default.
func LoadPlatformer(customPath string) (PlatformerConfig, error) {
	// Start from defaults so partial files only override what they mention
	cfg := embeddedDefault()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = embeddedDefault()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFileName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
	}

	return embeddedDefault(), nil
}

// embeddedDefault parses the embedded default YAML on top of the hardcoded
// defaults, falling back to the hardcoded values if the embed is unreadable.
func embeddedDefault() PlatformerConfig {
	cfg := DefaultPlatformerConfig()
	if err := yaml.Unmarshal(defaultPlatformerYAML, &cfg); err != nil {
		return DefaultPlatformerConfig()
	}
	return cfg
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".platformer", "configs", filename)
}

// ApplyPlatformerPreset modifies the config based on a difficulty preset.
func ApplyPlatformerPreset(cfg *PlatformerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Base = 0.5
		cfg.Difficulty.PerLevel = 0.5
		cfg.Session.Levels = 3
	case DifficultyNormal:
		cfg.Difficulty.Base = 1
		cfg.Difficulty.PerLevel = 1
	case DifficultyHard:
		cfg.Difficulty.Base = 2
		cfg.Difficulty.PerLevel = 1.25
		cfg.Session.Levels = 7
		cfg.Session.InvulnerableTime = 0.8
	case DifficultyFixed:
		cfg.Difficulty.PerLevel = 0
	}
}
