package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/xxformat/digester"
)

// Default values for the run configuration.
const (
	DefaultOverallTemplate = "{records}\n"
	DefaultSpacing         = ",\n"
)

// Config holds all settings for one run.
type Config struct {
	// Algorithm names the hash variant and encoding,
	// e.g. "xxh64", "32s" or "uuid".
	Algorithm string `json:"algorithm" yaml:"algorithm"`

	// Seed is passed to the hash function.
	Seed uint64 `json:"seed" yaml:"seed"`

	// Strings are free input strings.
	Strings []string `json:"strings" yaml:"strings"`

	// ReadPath is a line, CSV or JSON source file.
	ReadPath string `json:"read" yaml:"read"`

	// WritePath is the output file; empty means stdout.
	WritePath string `json:"write" yaml:"write"`

	// InputTemplate renders the hash input of a record.
	// Empty selects the source's default.
	InputTemplate string `json:"input" yaml:"input"`

	// OutputTemplate renders one record. Empty selects
	// the source's default.
	OutputTemplate string `json:"output" yaml:"output"`

	// OverallTemplate wraps the joined records through
	// its {records} placeholder.
	OverallTemplate string `json:"template" yaml:"template"`

	// Spacing separates rendered records.
	Spacing string `json:"spacing" yaml:"spacing"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Algorithm:       digester.DefaultName,
		OverallTemplate: DefaultOverallTemplate,
		Spacing:         DefaultSpacing,
	}
}

// LoadFile decodes the YAML (".yaml", ".yml") or JSON
// (".json") file at path over cfg. Keys absent from the
// file keep their current value.
func LoadFile(path string, cfg *Config) error {
	const errCtx = "loading config file"

	content, err := os.ReadFile(path) //nolint:gosec // path from CLI flag
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, cfg)
	case ".json":
		err = json.Unmarshal(content, cfg)
	default:
		err = fmt.Errorf("unsupported extension %q", ext)
	}

	if err != nil {
		return fmt.Errorf("%s: %s: %w", errCtx, path, err)
	}

	return nil
}

// Validate checks that the configuration can run.
func (cfg Config) Validate() error {
	const errCtx = "validating config"

	if _, err := digester.Parse(cfg.Algorithm); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}

// SplitAlgorithm removes a leading algorithm name from
// args. It returns "" and args unchanged when the first
// token is not an algorithm name.
func SplitAlgorithm(args []string) (string, []string) {
	if len(args) == 0 || !digester.IsName(args[0]) {
		return "", args
	}

	return args[0], args[1:]
}

// NormalizeInputTemplate wraps a bare field reference
// such as "name" in braces.
func NormalizeInputTemplate(tpl string) string {
	if tpl == "" || strings.Contains(tpl, "{") {
		return tpl
	}

	return "{" + tpl + "}"
}

var escapes = strings.NewReplacer(
	`\\`, `\`,
	`\n`, "\n",
	`\t`, "\t",
	`\r`, "\r",
)

// Unescape expands \n, \t, \r and \\ in a flag value.
func Unescape(s string) string {
	return escapes.Replace(s)
}
