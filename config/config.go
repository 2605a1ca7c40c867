// Package config loads and writes the querydesk HCL configuration file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"

	"github.com/nao1215/querydesk/engine"
)

// DefaultColumnWidth is the width of every result grid column.
const DefaultColumnWidth = 100

// MaxColumnWidth is the widest column the grid accepts.
const MaxColumnWidth = 1000

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("querydesk config: invalid configuration")

// Log levels accepted by the log block.
var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds the configuration for querydesk
type Config struct {
	// Engine is the embedded SQL engine: "sqlite" or "duckdb".
	Engine string `hcl:"engine,optional"`
	// ColumnWidth is the fixed width of result grid columns.
	ColumnWidth int `hcl:"column_width,optional"`
	// QueryTimeout is a Go duration string. "0s" or empty disables the deadline.
	QueryTimeout string `hcl:"query_timeout,optional"`
	// MetricsFile receives Prometheus text exposition on exit when set.
	MetricsFile string `hcl:"metrics_file,optional"`
	// Log configures the application logger.
	Log *LogConfig `hcl:"log,block"`
}

// LogConfig is the log block
type LogConfig struct {
	File   string `hcl:"file,optional"`
	Level  string `hcl:"level,optional"`
	JSON   bool   `hcl:"json,optional"`
	SeqURL string `hcl:"seq_url,optional"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Engine:       engine.NameSQLite,
		ColumnWidth:  DefaultColumnWidth,
		QueryTimeout: "0s",
		Log:          &LogConfig{Level: "info"},
	}
}

// Load reads configuration from an HCL file. Attributes absent from the
// file keep their default values.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}

	cfg := DefaultConfig()
	diags = gohcl.DecodeBody(file.Body, nil, cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads path, or returns DefaultConfig when path is empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// applyDefaults fills fields a partial log block leaves empty.
func (c *Config) applyDefaults() {
	if c.Log == nil {
		c.Log = &LogConfig{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Engine == "" {
		c.Engine = engine.NameSQLite
	}
	if strings.TrimSpace(c.QueryTimeout) == "" {
		c.QueryTimeout = "0s"
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error
	if !slices.Contains(engine.Names(), c.Engine) {
		errs = append(errs, fmt.Errorf("engine %q: must be one of %s", c.Engine, strings.Join(engine.Names(), ", ")))
	}
	if c.ColumnWidth <= 0 || c.ColumnWidth > MaxColumnWidth {
		errs = append(errs, fmt.Errorf("column_width %d: must be between 1 and %d", c.ColumnWidth, MaxColumnWidth))
	}
	if _, err := c.Timeout(); err != nil {
		errs = append(errs, err)
	}
	if c.Log != nil {
		if !slices.Contains(logLevels, strings.ToLower(c.Log.Level)) {
			errs = append(errs, fmt.Errorf("log level %q: must be one of %s", c.Log.Level, strings.Join(logLevels, ", ")))
		}
		if c.Log.SeqURL != "" {
			u, err := url.Parse(c.Log.SeqURL)
			if err != nil || u.Scheme == "" || u.Host == "" {
				errs = append(errs, fmt.Errorf("log seq_url %q: must be an absolute URL", c.Log.SeqURL))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Timeout parses QueryTimeout. An empty value means no deadline.
func (c *Config) Timeout() (time.Duration, error) {
	if strings.TrimSpace(c.QueryTimeout) == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.QueryTimeout)
	if err != nil {
		return 0, fmt.Errorf("query_timeout %q: %w", c.QueryTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("query_timeout %q: must not be negative", c.QueryTimeout)
	}
	return d, nil
}

// Export writes the configuration to an HCL file
func Export(path string, cfg *Config) error {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	root.SetAttributeValue("engine", cty.StringVal(cfg.Engine))
	root.SetAttributeValue("column_width", cty.NumberIntVal(int64(cfg.ColumnWidth)))
	root.SetAttributeValue("query_timeout", cty.StringVal(cfg.QueryTimeout))
	if cfg.MetricsFile != "" {
		root.SetAttributeValue("metrics_file", cty.StringVal(cfg.MetricsFile))
	}

	if cfg.Log != nil {
		root.AppendNewline()
		block := root.AppendNewBlock("log", nil).Body()
		if cfg.Log.File != "" {
			block.SetAttributeValue("file", cty.StringVal(cfg.Log.File))
		}
		block.SetAttributeValue("level", cty.StringVal(cfg.Log.Level))
		block.SetAttributeValue("json", cty.BoolVal(cfg.Log.JSON))
		if cfg.Log.SeqURL != "" {
			block.SetAttributeValue("seq_url", cty.StringVal(cfg.Log.SeqURL))
		}
	}

	return os.WriteFile(path, f.Bytes(), 0o600)
}
