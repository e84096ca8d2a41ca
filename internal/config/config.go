// Package config holds the settings of a collage run: defaults, validation and
// the optional HCL configuration file.
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	DefaultInput        = "images.txt"
	DefaultOutput       = "collage.jpg"
	DefaultImagesPerRow = 4
	DefaultWorkers      = 1
	DefaultTimeout      = 10 * time.Second
	DefaultMaxBodyBytes = 64 << 20
	// DefaultMaxDimension keeps the canvas under the single-axis limit of
	// common image encoders (JPEG stops at 65535).
	DefaultMaxDimension = 65500
	DefaultJPEGQuality  = 90
	DefaultLayout       = "cells"
)

var (
	ErrInvalidImagesPerRow = errors.New("images per row must be a positive integer")
	ErrInvalidLayout       = errors.New("layout must be 'cells' or 'packed'")
	ErrInvalidLogFormat    = errors.New("log format must be 'text' or 'json'")
	ErrInvalidLogLevel     = errors.New("log level must be 'debug', 'info', 'warn' or 'error'")
)

type Config struct {
	Input        string
	Output       string
	ImagesPerRow int
	Workers      int
	Timeout      time.Duration
	MaxBodyBytes int64
	MaxDimension int
	JPEGQuality  int
	Layout       string
	QRText       string
	Show         bool
	LogLevel     string
	LogFormat    string
}

func Default() Config {
	return Config{
		Input:        DefaultInput,
		Output:       DefaultOutput,
		ImagesPerRow: DefaultImagesPerRow,
		Workers:      DefaultWorkers,
		Timeout:      DefaultTimeout,
		MaxBodyBytes: DefaultMaxBodyBytes,
		MaxDimension: DefaultMaxDimension,
		JPEGQuality:  DefaultJPEGQuality,
		Layout:       DefaultLayout,
		Show:         true,
		LogLevel:     "info",
		LogFormat:    "text",
	}
}

// ParseImagesPerRow converts the positional images-per-row argument. On any
// malformed or non-positive input it returns the default together with an
// error wrapping ErrInvalidImagesPerRow, so callers can warn and carry on.
func ParseImagesPerRow(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return DefaultImagesPerRow, errors.Wrapf(ErrInvalidImagesPerRow, "%q", arg)
	}
	if n <= 0 {
		return DefaultImagesPerRow, errors.Wrapf(ErrInvalidImagesPerRow, "%d", n)
	}
	return n, nil
}

// Normalize replaces out-of-range numeric settings with their defaults and
// returns one warning per substitution. It never fails.
func (c *Config) Normalize() []string {
	var warnings []string
	if c.ImagesPerRow <= 0 {
		warnings = append(warnings, fmt.Sprintf("invalid images per row %d, using default of %d", c.ImagesPerRow, DefaultImagesPerRow))
		c.ImagesPerRow = DefaultImagesPerRow
	}
	if c.Workers <= 0 {
		warnings = append(warnings, fmt.Sprintf("invalid worker count %d, using %d", c.Workers, DefaultWorkers))
		c.Workers = DefaultWorkers
	}
	if c.Timeout <= 0 {
		warnings = append(warnings, fmt.Sprintf("invalid timeout %s, using %s", c.Timeout, DefaultTimeout))
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.MaxDimension <= 0 {
		warnings = append(warnings, fmt.Sprintf("invalid max dimension %d, using %d", c.MaxDimension, DefaultMaxDimension))
		c.MaxDimension = DefaultMaxDimension
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		warnings = append(warnings, fmt.Sprintf("invalid jpeg quality %d, using %d", c.JPEGQuality, DefaultJPEGQuality))
		c.JPEGQuality = DefaultJPEGQuality
	}
	if c.Input == "" {
		c.Input = DefaultInput
	}
	if c.Output == "" {
		c.Output = DefaultOutput
	}
	return warnings
}

// Validate reports settings that have no sensible fallback.
func (c Config) Validate() error {
	switch c.Layout {
	case "cells", "packed":
	default:
		return errors.Wrapf(ErrInvalidLayout, "got %q", c.Layout)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalidLogFormat, "got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Wrapf(ErrInvalidLogLevel, "got %q", c.LogLevel)
	}
	return nil
}
