package logger

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds logging configuration. It is the `logging:` section of the
// generator config file.
type Config struct {
	Level          string `yaml:"level"`
	ConsoleEnabled bool   `yaml:"console_enabled"`
	ConsoleFormat  string `yaml:"console_format"`
	FileEnabled    bool   `yaml:"file_enabled"`
	FilePath       string `yaml:"file_path"`
	FileFormat     string `yaml:"file_format"`
	FileMaxSizeMB  int    `yaml:"file_max_size_mb"`
	FileMaxBackups int    `yaml:"file_max_backups"`
	FileMaxAgeDays int    `yaml:"file_max_age_days"`
}

// DefaultConfig logs INFO and above to the console as text.
func DefaultConfig() Config {
	return Config{
		Level:          "INFO",
		ConsoleEnabled: true,
		ConsoleFormat:  "text",
		FileEnabled:    false,
		FilePath:       "logs/procgen.log",
		FileFormat:     "text",
		FileMaxSizeMB:  10,
		FileMaxBackups: 5,
		FileMaxAgeDays: 30,
	}
}

// Validate rejects unknown levels and formats.
func (c Config) Validate() error {
	if _, ok := levelNames[strings.ToUpper(c.Level)]; !ok {
		return fmt.Errorf("logging: unknown level %q", c.Level)
	}
	for _, format := range []string{c.ConsoleFormat, c.FileFormat} {
		if format != "text" && format != "json" {
			return fmt.Errorf("logging: unknown format %q", format)
		}
	}
	if c.FileEnabled && c.FilePath == "" {
		return fmt.Errorf("logging: file output enabled without a file path")
	}
	return nil
}

// section wraps Config for decoding the whole config document.
type section struct {
	Logging Config `yaml:"logging"`
}

// Parse decodes the logging section of a YAML document over the defaults.
// Keys absent from the document keep their default values.
func Parse(data []byte) (Config, error) {
	doc := section{Logging: DefaultConfig()}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return DefaultConfig(), fmt.Errorf("parse logging config: %w", err)
	}
	return doc.Logging, nil
}

// LoadConfig loads the logging section from a YAML file and applies
// environment variable overrides. A missing file yields the defaults.
func LoadConfig(configPath string) (Config, error) {
	config := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case err == nil:
			if config, err = Parse(data); err != nil {
				return config, err
			}
		case !os.IsNotExist(err):
			return config, fmt.Errorf("read logging config: %w", err)
		}
	}

	applyEnv(&config)
	return config, nil
}

func applyEnv(config *Config) {
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		config.Level = logLevel
	}

	if consoleFormat := os.Getenv("LOG_CONSOLE_FORMAT"); consoleFormat != "" {
		config.ConsoleFormat = consoleFormat
	}

	if fileEnabled := os.Getenv("LOG_FILE_ENABLED"); fileEnabled != "" {
		if enabled, err := strconv.ParseBool(fileEnabled); err == nil {
			config.FileEnabled = enabled
		}
	}

	if filePath := os.Getenv("LOG_FILE_PATH"); filePath != "" {
		config.FilePath = filePath
	}
}
