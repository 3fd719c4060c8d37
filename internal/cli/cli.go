// Package cli parses the thinc-config command line.
package cli

import (
	"flag"
	"fmt"
	"io"
)

// Config holds the parsed command-line options.
type Config struct {
	ConfigPath string
	Resolve    bool
	LogLevel   string
	LogFormat  string
}

// ExitError is an error carrying a specific process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns the populated Config, a
// boolean indicating the program should exit cleanly (e.g. after -help), or
// an ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	flagSet := flag.NewFlagSet("thinc-config", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
thinc-config - fill, validate and resolve registry-driven configuration.

Usage:
  thinc-config [options] CONFIG_PATH

Arguments:
  CONFIG_PATH
    Path to a single .hcl/.json file or a directory containing them.

Options:
`)
		flagSet.PrintDefaults()
	}

	resolveFlag := flagSet.Bool("resolve", false, "Construct the object graph and dump it after filling.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return nil, false, &ExitError{Code: 2, Message: "exactly one CONFIG_PATH argument is required"}
	}

	return &Config{
		ConfigPath: flagSet.Arg(0),
		Resolve:    *resolveFlag,
		LogLevel:   *logLevelFlag,
		LogFormat:  *logFormatFlag,
	}, false, nil
}
