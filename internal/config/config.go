// Package config loads the HCL configuration of the hhconv command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"

	"github.com/lox/hhconv/internal/split"
)

const (
	defaultWorkers    = 4
	defaultLogLevel   = "info"
	defaultExcerptLen = 200
	defaultExport     = ExportNone
	defaultOutputDir  = "exports"
	defaultFilename   = "{site}-{batch}.phhs"
	maxWorkers        = 256
)

// Export formats.
const (
	ExportNone = "none"
	ExportPHH  = "phh"
)

// Config is the complete configuration file.
type Config struct {
	Parser  *ParserSettings `hcl:"parser,block"`
	Formats []FormatConfig  `hcl:"format,block"`
	Export  *ExportSettings `hcl:"export,block"`
}

// ParserSettings control the batch runner.
type ParserSettings struct {
	Workers              int    `hcl:"workers,optional"`
	LogLevel             string `hcl:"log_level,optional"`
	InlineTourneyResults bool   `hcl:"inline_tourney_results,optional"`
	ExcerptLen           int    `hcl:"excerpt_len,optional"`
}

// FormatConfig overrides settings of one registered format.
type FormatConfig struct {
	Name      string   `hcl:"name,label"`
	Codepages []string `hcl:"codepages,optional"`
	Enabled   *bool    `hcl:"enabled,optional"`
}

// ExportSettings choose where converted hands are written.
type ExportSettings struct {
	Format    string `hcl:"format,optional"`
	OutputDir string `hcl:"output_dir,optional"`
	// Filename may use the {site} and {batch} placeholders.
	Filename string `hcl:"filename,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads an HCL configuration file. A missing file yields the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	diags = gohcl.DecodeBody(file.Body, nil, &c)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Parser == nil {
		c.Parser = &ParserSettings{}
	}
	if c.Parser.Workers == 0 {
		c.Parser.Workers = defaultWorkers
	}
	if c.Parser.LogLevel == "" {
		c.Parser.LogLevel = defaultLogLevel
	}
	if c.Parser.ExcerptLen == 0 {
		c.Parser.ExcerptLen = defaultExcerptLen
	}

	if c.Export == nil {
		c.Export = &ExportSettings{}
	}
	if c.Export.Format == "" {
		c.Export.Format = defaultExport
	}
	if c.Export.OutputDir == "" {
		c.Export.OutputDir = defaultOutputDir
	}
	if c.Export.Filename == "" {
		c.Export.Filename = defaultFilename
	}
}

// Validate checks ranges and known names.
func (c *Config) Validate() error {
	if c.Parser.Workers < 1 || c.Parser.Workers > maxWorkers {
		return fmt.Errorf("parser: workers must be between 1 and %d", maxWorkers)
	}
	if c.Parser.ExcerptLen < 1 {
		return fmt.Errorf("parser: excerpt_len must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Parser.LogLevel); err != nil {
		return fmt.Errorf("parser: invalid log level %q", c.Parser.LogLevel)
	}

	seen := make(map[string]bool)
	for _, f := range c.Formats {
		key := strings.ToLower(f.Name)
		if seen[key] {
			return fmt.Errorf("format %s: configured more than once", f.Name)
		}
		seen[key] = true
		for _, cp := range f.Codepages {
			if _, ok := split.Canonical(cp); !ok {
				return fmt.Errorf("format %s: unknown codepage %s", f.Name, cp)
			}
		}
	}

	switch c.Export.Format {
	case ExportNone, ExportPHH:
	default:
		return fmt.Errorf("export: invalid format %s", c.Export.Format)
	}
	if strings.ContainsAny(c.Export.Filename, `/\`) {
		return fmt.Errorf("export: filename must not contain a path separator")
	}
	return nil
}

// GetFormat returns the overrides for a format, matched case-insensitively.
func (c *Config) GetFormat(name string) *FormatConfig {
	for i := range c.Formats {
		if strings.EqualFold(c.Formats[i].Name, name) {
			return &c.Formats[i]
		}
	}
	return nil
}

// FormatEnabled reports whether a format may be used. Formats are enabled
// unless configured otherwise.
func (c *Config) FormatEnabled(name string) bool {
	f := c.GetFormat(name)
	return f == nil || f.Enabled == nil || *f.Enabled
}

// Codepages returns the codepage overrides keyed by format name.
func (c *Config) Codepages() map[string][]string {
	out := make(map[string][]string)
	for _, f := range c.Formats {
		if len(f.Codepages) > 0 {
			out[f.Name] = f.Codepages
		}
	}
	return out
}

// ExportPath returns the output path for one batch.
func (c *Config) ExportPath(site, batchID string) string {
	name := strings.NewReplacer("{site}", strings.ToLower(site), "{batch}", batchID).Replace(c.Export.Filename)
	return filepath.Join(c.Export.OutputDir, name)
}
