// Package loader reads record datasets (records, synonyms and usage weights)
// from YAML, JSON or TOML files.
package loader

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	internalErrors "github.com/gcbaptista/go-fuzzy-search/internal/errors"
	"github.com/gcbaptista/go-fuzzy-search/model"
)

// Supported formats
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Dataset is everything an engine is built from besides its settings.
type Dataset struct {
	Records  []model.Record       `json:"records" yaml:"records" toml:"records"`
	Synonyms model.SynonymTable   `json:"synonyms,omitempty" yaml:"synonyms" toml:"synonyms"`
	Usage    model.UsageFrequency `json:"usage,omitempty" yaml:"usage" toml:"usage"`
}

// Load reads the dataset at path, choosing the decoder by file extension.
func Load(path string) (*Dataset, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path) // #nosec G304 -- path is supplied by the operator
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	ds, err := Decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading dataset %s: %w", path, err)
	}
	return ds, nil
}

// FormatOf maps a file extension onto a dataset format.
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported dataset format %q", filepath.Ext(path))
	}
}

// Decode reads a dataset in the given format, normalizes its synonym and usage
// keys, and validates it.
func Decode(r io.Reader, format string) (*Dataset, error) {
	var ds Dataset
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&ds); err != nil && err != io.EOF {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&ds); err != nil {
			return nil, fmt.Errorf("decoding json: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&ds); err != nil {
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q", format)
	}

	ds.normalize()
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks the parts of a dataset the index does not: usage weights must be positive.
// Record IDs are checked when the index is built.
func (d *Dataset) Validate() error {
	for word, weight := range d.Usage {
		if weight <= 0 {
			return internalErrors.NewValidationError("usage", fmt.Sprintf("weight for '%s' must be positive, got %v", word, weight))
		}
	}
	return nil
}

// normalize trims and lower-cases synonym and usage words so they line up with
// normalized record fields. Duplicate synonyms keep their first position.
func (d *Dataset) normalize() {
	if len(d.Synonyms) > 0 {
		table := make(model.SynonymTable, len(d.Synonyms))
		for word, synonyms := range d.Synonyms {
			key := normalizeWord(word)
			seen := make(map[string]struct{}, len(table[key])+len(synonyms))
			for _, s := range table[key] {
				seen[s] = struct{}{}
			}
			for _, s := range synonyms {
				s = normalizeWord(s)
				if _, dup := seen[s]; dup || s == "" {
					continue
				}
				seen[s] = struct{}{}
				table[key] = append(table[key], s)
			}
		}
		d.Synonyms = table
	}

	if len(d.Usage) > 0 {
		usage := make(model.UsageFrequency, len(d.Usage))
		for word, weight := range d.Usage {
			usage[normalizeWord(word)] = weight
		}
		d.Usage = usage
	}
}

func normalizeWord(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
