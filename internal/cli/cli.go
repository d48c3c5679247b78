// Package cli turns command-line arguments into an app.Config.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"datamix-tools/internal/app"
	"datamix-tools/internal/quantize"
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

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
// getenv supplies defaults for options not given on the command line.
func Parse(args []string, output io.Writer, getenv func(string) string) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("datamix", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
datamix - compile a nested data mixture into weighted dataset paths.

Usage:
  datamix [options] MIXTURE PATHS

Arguments:
  MIXTURE
    JSON (or YAML) document describing the mixture tree.
  PATHS
    JSON (or YAML) document mapping data IDs to dataset paths.

Without --output, one "<proportion> <path>" line per dataset is printed.
With --output, all pairs are written to FILE on a single line.

Options:
`)
		flagSet.PrintDefaults()
	}

	defaultPrecision, err := envInt(getenv, envPrecision, quantize.DefaultPrecision)
	if err != nil {
		return nil, false, usageError("%v", err)
	}

	outputFlag := flagSet.String("output", "", "Write the data path line to `FILE` instead of printing rows.")
	oFlag := flagSet.String("o", "", "Write the data path line to `FILE` (shorthand).")
	precisionFlag := flagSet.Int("precision", defaultPrecision, "Number of decimal places in proportions.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", envOr(getenv, envLogLevel, "warn"),
		"Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}

	if flagSet.NArg() != 2 {
		return nil, false, usageError("expected MIXTURE and PATHS arguments, got %d argument(s)", flagSet.NArg())
	}

	outputPath := *outputFlag
	if outputPath == "" {
		outputPath = *oFlag
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	config, err := app.NewConfig(app.Config{
		MixturePath: flagSet.Arg(0),
		PathsPath:   flagSet.Arg(1),
		OutputPath:  outputPath,
		Precision:   *precisionFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	return config, false, nil
}
