package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultPort          = 8080
	DefaultHost          = "127.0.0.1"
	DefaultLogLevel      = "info"
	DefaultMaxFileSize   = 10 * 1024 * 1024 // 10MB upload limit
	DefaultMinTextLength = 50               // below this, acquisition is insufficient
	DefaultMinRawLength  = 10               // below this, the specialized tier gives up
)

// Config holds all configuration for the rental application extractor.
type Config struct {
	// Server configuration
	Mode string // "server" or "stdio"
	Host string
	Port int

	// Extraction configuration
	MaxFileSize   int64 // Maximum PDF file size in bytes
	MinTextLength int   // Acquired-text threshold for the generic tier
	MinRawLength  int   // Recoverable-text threshold for the specialized tier

	// Application configuration
	Version    string
	ServerName string
	LogLevel   string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Mode:          ModeStdio,
		Host:          DefaultHost,
		Port:          DefaultPort,
		MaxFileSize:   DefaultMaxFileSize,
		MinTextLength: DefaultMinTextLength,
		MinRawLength:  DefaultMinRawLength,
		Version:       "1.0.0",
		ServerName:    "rental-extract",
		LogLevel:      DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("RENTAL_EXTRACT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
	viper.SetDefault("mintextlength", cfg.MinTextLength)
	viper.SetDefault("minrawlength", cfg.MinRawLength)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("host", cfg.Host, "Server host address (server mode only)")
	pflag.Int("port", cfg.Port, "Server port (server mode only)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
	pflag.Int("mintextlength", cfg.MinTextLength, "Minimum acquired text length before falling back to specialized extraction")
	pflag.Int("minrawlength", cfg.MinRawLength, "Minimum recoverable raw text length before extraction fails")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
	_ = viper.BindPFlag("mintextlength", pflag.Lookup("mintextlength"))
	_ = viper.BindPFlag("minrawlength", pflag.Lookup("minrawlength"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nRental Extract - structured field extraction from rental application PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_MODE           Server mode\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_HOST           Server host\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_PORT           Server port\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_LOGLEVEL       Log level\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_MAXFILESIZE    Maximum file size\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_MINTEXTLENGTH  Generic tier text threshold\n")
		fmt.Fprintf(os.Stderr, "  RENTAL_EXTRACT_MINRAWLENGTH   Specialized tier text threshold\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
	cfg.MinTextLength = viper.GetInt("mintextlength")
	cfg.MinRawLength = viper.GetInt("minrawlength")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.Mode == ModeServer && (c.Port < 1 || c.Port > 65535) {
		return errors.New("port must be between 1 and 65535")
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	if c.MinTextLength <= 0 {
		return errors.New("minimum text length must be positive")
	}

	if c.MinRawLength <= 0 {
		return errors.New("minimum raw length must be positive")
	}

	if c.MinRawLength > c.MinTextLength {
		return errors.New("minimum raw length cannot exceed minimum text length")
	}

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

// Address returns the server address as host:port.
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// IsServerMode returns true if running in HTTP server mode.
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if running in stdio mode.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Host: %s, Port: %d, LogLevel: %s, MaxFileSize: %d, MinTextLength: %d, MinRawLength: %d}",
		c.Mode, c.Host, c.Port, c.LogLevel, c.MaxFileSize, c.MinTextLength, c.MinRawLength)
}
