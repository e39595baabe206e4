package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

// Output formats accepted by [output] format.
const (
	FormatYAML  = "yaml"
	FormatJSON  = "json"
	FormatForth = "forth"
)

// REPL modes accepted by [repl] mode.
const (
	ModeWords   = "words"
	ModeProgram = "program"
)

// Config holds the forthparse tool configuration
type Config struct {
	Output      OutputConfig      `toml:"output"`
	Diagnostics DiagnosticsConfig `toml:"diagnostics"`
	Check       CheckConfig       `toml:"check"`
	REPL        REPLConfig        `toml:"repl"`
}

// OutputConfig controls how parsed trees are printed
type OutputConfig struct {
	Format string `toml:"format"`
	Indent int    `toml:"indent"`
}

// DiagnosticsConfig controls how parse errors are shown
type DiagnosticsConfig struct {
	Color   bool `toml:"color"`
	Context bool `toml:"context"`
}

// CheckConfig controls batch checking of many files
type CheckConfig struct {
	Jobs    int      `toml:"jobs"`
	Timeout Duration `toml:"timeout"`
}

// REPLConfig controls the interactive loop
type REPLConfig struct {
	Prompt      string `toml:"prompt"`
	HistoryFile string `toml:"history_file"`
	Mode        string `toml:"mode"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{
		Diagnostics: DiagnosticsConfig{Color: true, Context: true},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file. An empty path yields Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}

	cfg.applyDefaults()
	cfg.REPL.HistoryFile = os.ExpandEnv(cfg.REPL.HistoryFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromEnv loads configuration from the FORTHPARSE_CONFIG environment
// variable, falling back to ./forthparse.toml and then to defaults.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv("FORTHPARSE_CONFIG"); path != "" {
		return Load(path)
	}
	if _, err := os.Stat("forthparse.toml"); err == nil {
		return Load("forthparse.toml")
	}
	return Default(), nil
}

func (c *Config) applyDefaults() {
	if c.Output.Format == "" {
		c.Output.Format = FormatYAML
	}
	if c.Output.Indent == 0 {
		c.Output.Indent = 2
	}
	if c.Check.Jobs <= 0 {
		c.Check.Jobs = runtime.NumCPU()
	}
	if c.Check.Timeout.Duration == 0 {
		c.Check.Timeout.Duration = time.Minute
	}
	if c.REPL.Prompt == "" {
		c.REPL.Prompt = "forth> "
	}
	if c.REPL.Mode == "" {
		c.REPL.Mode = ModeWords
	}
	if c.REPL.HistoryFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.REPL.HistoryFile = filepath.Join(home, ".forthparse_history")
		}
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatYAML, FormatJSON, FormatForth:
	default:
		return fmt.Errorf("invalid output format %q: want %s, %s or %s",
			c.Output.Format, FormatYAML, FormatJSON, FormatForth)
	}
	switch c.REPL.Mode {
	case ModeWords, ModeProgram:
	default:
		return fmt.Errorf("invalid repl mode %q: want %s or %s", c.REPL.Mode, ModeWords, ModeProgram)
	}
	if c.Output.Indent < 0 || c.Output.Indent > 8 {
		return fmt.Errorf("invalid output indent %d: want 1-8", c.Output.Indent)
	}
	return nil
}
