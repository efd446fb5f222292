package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio = "stdio"
	ModeCheck = "check"

	// Default values
	DefaultLogLevel     = "info"
	DefaultReportFormat = "text"
	DefaultMaxFileSize  = 100 * 1024 * 1024 // 100MB
)

// Config holds all configuration for the thesis check server
type Config struct {
	// Run configuration
	Mode           string // "stdio" for the MCP server, "check" for a one-shot scan
	ManuscriptPath string // file to scan in check mode
	ReportFormat   string // "text" or "json"

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // Maximum manuscript file size in bytes
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Mode:         ModeStdio, // Default to stdio mode for MCP compatibility
		ReportFormat: DefaultReportFormat,
		Version:      "1.0.0",
		ServerName:   "tezlint",
		LogLevel:     DefaultLogLevel,
		MaxFileSize:  DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	// Check for version flag before parsing
	if err := checkVersionFlag(); err != nil {
		return nil, err
	}

	pflag.Parse()

	populateConfigFromViper(cfg)

	// A bare file argument implies check mode
	if cfg.ManuscriptPath == "" && pflag.NArg() > 0 {
		cfg.ManuscriptPath = pflag.Arg(0)
	}
	if cfg.ManuscriptPath != "" && cfg.Mode == ModeStdio && !viper.IsSet("mode") {
		cfg.Mode = ModeCheck
	}

	// Expand paths if needed
	if cfg.ManuscriptPath != "" {
		if expandedPath, err := filepath.Abs(cfg.ManuscriptPath); err == nil {
			cfg.ManuscriptPath = expandedPath
		}
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults
func setupViperEnvironment(cfg *Config) {
	// Set environment variable prefix
	viper.SetEnvPrefix("TEZLINT")
	viper.AutomaticEnv()

	// Define flags with Viper
	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("file", cfg.ManuscriptPath)
	viper.SetDefault("format", cfg.ReportFormat)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Run mode: 'stdio' for the MCP server, 'check' for a one-shot scan")
	pflag.String("file", cfg.ManuscriptPath, "Manuscript file to scan (.docx or .pdf, check mode only)")
	pflag.String("format", cfg.ReportFormat, "Report format: 'text' or 'json' (check mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum manuscript file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("file", pflag.Lookup("file"))
	_ = viper.BindPFlag("format", pflag.Lookup("format"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\ntezlint - Thesis manuscript format checker and MCP server\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                   # MCP server on stdio (default)\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s thesis.docx                       # one-shot check, text report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --file=thesis.pdf --format=json   # one-shot check, JSON report\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  TEZLINT_MODE        Run mode\n")
		fmt.Fprintf(os.Stderr, "  TEZLINT_FILE        Manuscript file\n")
		fmt.Fprintf(os.Stderr, "  TEZLINT_FORMAT      Report format\n")
		fmt.Fprintf(os.Stderr, "  TEZLINT_LOGLEVEL    Log level\n")
		fmt.Fprintf(os.Stderr, "  TEZLINT_MAXFILESIZE Maximum file size\n")
	}
}

// checkVersionFlag checks if version flag was requested
func checkVersionFlag() error {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" || arg == "-v" {
			return fmt.Errorf("version requested")
		}
	}
	return nil
}

// populateConfigFromViper fills the config struct with values from viper
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.ManuscriptPath = viper.GetString("file")
	cfg.ReportFormat = viper.GetString("format")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Validate mode
	if c.Mode != ModeStdio && c.Mode != ModeCheck {
		return errors.New("mode must be either 'stdio' or 'check'")
	}

	// Check mode needs a manuscript to scan
	if c.Mode == ModeCheck && c.ManuscriptPath == "" {
		return errors.New("check mode requires a manuscript file (--file or positional argument)")
	}

	// Validate report format
	if c.ReportFormat != "text" && c.ReportFormat != "json" {
		return fmt.Errorf("invalid report format: %s (must be 'text' or 'json')", c.ReportFormat)
	}

	// Validate max file size
	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	// Validate log level
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, ManuscriptPath: %s, ReportFormat: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.ManuscriptPath, c.ReportFormat, c.LogLevel, c.MaxFileSize)
}

// IsCheckMode returns true when running a one-shot scan
func (c *Config) IsCheckMode() bool {
	return c.Mode == ModeCheck
}

// IsStdioMode returns true when serving MCP over stdio
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
