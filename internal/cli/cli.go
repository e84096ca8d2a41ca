// Package cli turns command-line arguments into a collage run.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/youruser/collageapp/internal/collage"
	"github.com/youruser/collageapp/internal/config"
	"github.com/youruser/collageapp/internal/ctxlog"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parsed is the outcome of Parse: the effective configuration and the
// warnings produced while falling back to defaults.
type Parsed struct {
	Config   config.Config
	Warnings []string
}

// Parse processes command-line arguments. Settings are layered: defaults,
// then the -config file, then flags that were set explicitly, then the
// positional images-per-row argument. It returns the parsed result, a
// boolean indicating the program should exit cleanly (-h), or an ExitError.
func Parse(args []string, output io.Writer) (*Parsed, bool, error) {
	def := config.Default()
	flagSet := flag.NewFlagSet("collage", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
collage - download images and paste them into a single grid collage.

Usage:
  collage [options] [IMAGES_PER_ROW]

Arguments:
  IMAGES_PER_ROW
    Number of images per grid row (default 4). Invalid values fall back to the default.
    Options must come before it.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Optional HCL file with collage settings.")
	inputFlag := flagSet.String("input", def.Input, "File with one image URL per line.")
	outputFlag := flagSet.String("output", def.Output, "Path of the JPEG collage to write.")
	workersFlag := flagSet.Int("workers", def.Workers, "Number of concurrent downloads. Placement order never changes.")
	timeoutFlag := flagSet.Duration("timeout", def.Timeout, "Timeout for each image request.")
	maxDimFlag := flagSet.Int("max-dimension", def.MaxDimension, "Largest allowed canvas side in pixels; larger canvases are downscaled.")
	qualityFlag := flagSet.Int("quality", def.JPEGQuality, "JPEG quality, 1-100.")
	layoutFlag := flagSet.String("layout", def.Layout, "Grid layout. Options: 'cells' or 'packed'.")
	qrFlag := flagSet.String("qr-text", "", "If set, append a QR code encoding this text as the last tile.")
	noShowFlag := flagSet.Bool("no-show", false, "Do not open the collage in the default image viewer.")
	logFormatFlag := flagSet.String("log-format", def.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", def.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(negativesAsPositional(flagSet, args)); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	cfg := def
	if *configFlag != "" {
		var err error
		cfg, err = config.LoadFile(*configFlag, def)
		if err != nil {
			return nil, false, &ExitError{Code: 2, Message: err.Error()}
		}
	}

	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input":
			cfg.Input = *inputFlag
		case "output":
			cfg.Output = *outputFlag
		case "workers":
			cfg.Workers = *workersFlag
		case "timeout":
			cfg.Timeout = *timeoutFlag
		case "max-dimension":
			cfg.MaxDimension = *maxDimFlag
		case "quality":
			cfg.JPEGQuality = *qualityFlag
		case "layout":
			cfg.Layout = strings.ToLower(*layoutFlag)
		case "qr-text":
			cfg.QRText = *qrFlag
		case "no-show":
			cfg.Show = !*noShowFlag
		case "log-format":
			cfg.LogFormat = strings.ToLower(*logFormatFlag)
		case "log-level":
			cfg.LogLevel = strings.ToLower(*logLevelFlag)
		}
	})

	var warnings []string
	if flagSet.NArg() > 0 {
		n, err := config.ParseImagesPerRow(flagSet.Arg(0))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("Invalid input for the number of images per row (%v). Using default value of %d.", err, n))
		}
		cfg.ImagesPerRow = n
	}
	if flagSet.NArg() > 1 {
		extra := flagSet.Args()[1:]
		for _, a := range extra {
			if strings.HasPrefix(a, "-") && !isNegativeNumber(a) {
				return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("flag %s must come before IMAGES_PER_ROW", a)}
			}
		}
		warnings = append(warnings, fmt.Sprintf("ignoring extra arguments: %s", strings.Join(extra, " ")))
	}

	warnings = append(warnings, cfg.Normalize()...)
	if err := cfg.Validate(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return &Parsed{Config: cfg, Warnings: warnings}, false, nil
}

func isNegativeNumber(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9'
}

// negativesAsPositional inserts "--" before the first argument that looks
// like a negative number and is not the value of the preceding flag, so that
// "collage -3" reaches the images-per-row fallback instead of failing as an
// unknown flag.
func negativesAsPositional(fs *flag.FlagSet, args []string) []string {
	for i, a := range args {
		if a == "--" {
			return args
		}
		if !isNegativeNumber(a) || (i > 0 && takesValue(fs, args[i-1])) {
			continue
		}
		out := make([]string, 0, len(args)+1)
		out = append(out, args[:i]...)
		out = append(out, "--")
		return append(out, args[i:]...)
	}
	return args
}

// takesValue reports whether arg is a flag that consumes the next argument.
func takesValue(fs *flag.FlagSet, arg string) bool {
	if !strings.HasPrefix(arg, "-") || strings.Contains(arg, "=") {
		return false
	}
	f := fs.Lookup(strings.TrimLeft(arg, "-"))
	if f == nil {
		return false
	}
	if bf, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && bf.IsBoolFlag() {
		return false
	}
	return true
}

// Execute runs the collage command and returns the process exit code.
// Logs go to stdout; usage errors go to stderr.
func Execute(args []string, stdout, stderr io.Writer) int {
	parsed, exit, err := Parse(args, stderr)
	if exit {
		return 0
	}
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(stderr, "Error:", exitErr.Message)
			return exitErr.Code
		}
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}

	cfg := parsed.Config
	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, stdout)
	for _, w := range parsed.Warnings {
		logger.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = ctxlog.WithLogger(ctx, logger)

	res, err := collage.Run(ctx, cfg)
	if err != nil {
		logger.Error("collage failed", "error", err)
		return 1
	}
	if res.Empty() {
		logger.Info("nothing written", "total", res.Total)
	}
	return 0
}
