// Package detector selects the report format from the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode is the format used to report reconciliation results.
type OutputMode int

const (
	// ModeAuto picks a format from the environment.
	ModeAuto OutputMode = iota
	// ModePretty uses the terminal's full color profile.
	ModePretty
	// ModePlain uses basic ANSI colors, suited to CI logs and pipes.
	ModePlain
	// ModeJSON writes machine-readable JSON.
	ModeJSON
)

// String returns the flag value selecting the mode.
func (m OutputMode) String() string {
	switch m {
	case ModePretty:
		return "pretty"
	case ModePlain:
		return "plain"
	case ModeJSON:
		return "json"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	return detect(term.IsTerminal(int(os.Stdout.Fd())), os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies the user's --output flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "plain", "ci", "json", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "plain", "ci":
		return ModePlain
	case "json":
		return ModeJSON
	default:
		return autoDetected
	}
}
