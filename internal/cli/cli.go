package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/knd/schedrec/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("schedrec", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
schedrec - reconcile pension schedule files against a master report.

Usage:
  schedrec [options] COMMAND FOLDER

Commands:
  lookup        Generate the per-employer lookup table from the master report.
  duplicates    Find duplicate identifiers, names, and account numbers.
  search        Find a membership number across lookup and schedule files.
  validate      Annotate schedule files and compute contribution tiers.
  append-total  Rename schedule files to carry the tier2 sum.

Arguments:
  FOLDER
    The employer folder holding the schedule files. Its base name is taken
    as the employer name unless -employer is given.

Options:
`)
		flagSet.PrintDefaults()
	}

	masterFlag := flagSet.String("master", "", "Path to the master report .xlsx (lookup, validate).")
	profileFlag := flagSet.String("profile", "", "Path to a schema profile .hcl file.")
	employerFlag := flagSet.String("employer", "", "Employer name override.")
	idFlag := flagSet.String("id", "", "Membership number to search for (search).")
	recursiveFlag := flagSet.Bool("recursive", true, "Walk the whole folder tree for schedule files.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}
	if flagSet.NArg() < 2 {
		return nil, false, &ExitError{Code: 2, Message: "both COMMAND and FOLDER are required"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Command:     flagSet.Arg(0),
		Folder:      flagSet.Arg(1),
		MasterPath:  *masterFlag,
		ProfilePath: *profileFlag,
		Employer:    *employerFlag,
		Identifier:  *idFlag,
		Recursive:   *recursiveFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	return config, false, nil
}
