package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "anki.timeout")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// maxRequestTimeout bounds anki.timeout; a single local RPC never needs more.
const maxRequestTimeout = 5 * time.Minute

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateAnki()...)
	errors = append(errors, c.validateTUI()...)
	errors = append(errors, c.validateLogging()...)
	errors = append(errors, c.validatePaths()...)

	return errors
}

// validateAnki validates the AnkiConfig
func (c *Config) validateAnki() []ValidationError {
	var errors []ValidationError

	u, err := url.Parse(c.Anki.URL)
	switch {
	case c.Anki.URL == "":
		errors = append(errors, ValidationError{
			Field:   "anki.url",
			Value:   c.Anki.URL,
			Message: "must not be empty",
		})
	case err != nil:
		errors = append(errors, ValidationError{
			Field:   "anki.url",
			Value:   c.Anki.URL,
			Message: fmt.Sprintf("is not a valid URL: %v", err),
		})
	case u.Scheme != "http" && u.Scheme != "https":
		errors = append(errors, ValidationError{
			Field:   "anki.url",
			Value:   c.Anki.URL,
			Message: "scheme must be http or https",
		})
	case u.Host == "":
		errors = append(errors, ValidationError{
			Field:   "anki.url",
			Value:   c.Anki.URL,
			Message: "must include a host",
		})
	}

	if c.Anki.Timeout <= 0 {
		errors = append(errors, ValidationError{
			Field:   "anki.timeout",
			Value:   c.Anki.Timeout,
			Message: "must be positive",
		})
	} else if c.Anki.Timeout > maxRequestTimeout {
		errors = append(errors, ValidationError{
			Field:   "anki.timeout",
			Value:   c.Anki.Timeout,
			Message: fmt.Sprintf("exceeds maximum of %s", maxRequestTimeout),
		})
	}

	if c.Anki.DiscoveryCacheTTL < 0 {
		errors = append(errors, ValidationError{
			Field:   "anki.discovery_cache_ttl",
			Value:   c.Anki.DiscoveryCacheTTL,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validateTUI validates the TUIConfig
func (c *Config) validateTUI() []ValidationError {
	return validatePath("tui.theme_file", c.TUI.ThemeFile)
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), c.Logging.Level) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.MaxSizeMB <= 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: "must be positive",
		})
	}

	const maxLogSizeMB = 1000
	if c.Logging.MaxSizeMB > maxLogSizeMB {
		errors = append(errors, ValidationError{
			Field:   "logging.max_size_mb",
			Value:   c.Logging.MaxSizeMB,
			Message: fmt.Sprintf("exceeds maximum of %dMB", maxLogSizeMB),
		})
	}

	if c.Logging.MaxBackups < 0 {
		errors = append(errors, ValidationError{
			Field:   "logging.max_backups",
			Value:   c.Logging.MaxBackups,
			Message: "must be non-negative",
		})
	}

	return errors
}

// validatePaths validates the PathsConfig
func (c *Config) validatePaths() []ValidationError {
	return validatePath("paths.data_dir", c.Paths.DataDir)
}

// validatePath checks an optional filesystem path for characters and
// lengths no filesystem accepts.
func validatePath(field, path string) []ValidationError {
	if path == "" {
		return nil
	}

	var errors []ValidationError
	if strings.ContainsRune(path, '\x00') {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: "path contains invalid null character",
		})
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		errors = append(errors, ValidationError{
			Field:   field,
			Value:   path,
			Message: fmt.Sprintf("path exceeds maximum length of %d characters", maxPathLength),
		})
	}
	return errors
}
