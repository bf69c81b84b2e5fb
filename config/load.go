package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// envPrefix is the prefix of environment variables that override file settings.
const envPrefix = "FUZZY_"

// Load reads a YAML or TOML settings file (chosen by extension, if a path is provided),
// applies FUZZY_* environment overrides and then defaults.
func Load(path string) (SearchSettings, error) {
	var settings SearchSettings
	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path is supplied by the operator
		if err != nil {
			return SearchSettings{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			if _, err := toml.Decode(string(data), &settings); err != nil {
				return SearchSettings{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		case ".yaml", ".yml", "":
			if err := yaml.Unmarshal(data, &settings); err != nil {
				return SearchSettings{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		default:
			return SearchSettings{}, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
		}
	}
	if err := applyEnvOverrides(&settings); err != nil {
		return SearchSettings{}, err
	}
	settings.ApplyDefaults()
	return settings, nil
}

// applyEnvOverrides reads FUZZY_* environment variables and overrides the
// corresponding settings fields.
func applyEnvOverrides(s *SearchSettings) error {
	if v := os.Getenv(envPrefix + "ALGORITHMS"); v != "" {
		var names []string
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				names = append(names, name)
			}
		}
		s.Algorithms = names
	}
	if err := envFloat("THRESHOLD", &s.Threshold); err != nil {
		return err
	}
	if err := envFloat("SUGGESTION_THRESHOLD", &s.SuggestionThreshold); err != nil {
		return err
	}
	if v := os.Getenv(envPrefix + "SUGGEST_ON_NO_MATCH"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %sSUGGEST_ON_NO_MATCH: %w", envPrefix, err)
		}
		s.SuggestOnNoMatch = &b
	}
	if err := envDuration("DEBOUNCE_DELAY", &s.DebounceDelay); err != nil {
		return err
	}
	if err := envDuration("CACHE_TTL", &s.CacheTTL); err != nil {
		return err
	}
	if err := envDuration("TIMEOUT", &s.Timeout); err != nil {
		return err
	}
	if err := envInt("CACHE_SIZE", &s.CacheSize); err != nil {
		return err
	}
	if err := envInt("WORKERS", &s.Workers); err != nil {
		return err
	}
	if v := os.Getenv(envPrefix + "LANGUAGE"); v != "" {
		s.Language = v
	}
	if v := os.Getenv(envPrefix + "INDEX_MODE"); v != "" {
		s.IndexMode = v
	}
	return nil
}

func envFloat(name string, dst *float64) error {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("parsing %s%s: %w", envPrefix, name, err)
	}
	*dst = f
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("parsing %s%s: %w", envPrefix, name, err)
	}
	*dst = n
	return nil
}

func envDuration(name string, dst *time.Duration) error {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("parsing %s%s: %w", envPrefix, name, err)
	}
	*dst = d
	return nil
}
