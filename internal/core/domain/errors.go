package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

var (
	// ErrConflictingRequirements is returned when two sources pin the same package differently.
	ErrConflictingRequirements = zerr.New("conflicting requirements")

	// ErrInvalidSpecifier is returned when a version constraint cannot be parsed.
	ErrInvalidSpecifier = zerr.New("invalid version specifier")

	// ErrInvalidVersion is returned when a version cannot be mapped onto a comparable form.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrMalformedRequirement is returned when a requirement line cannot be parsed.
	ErrMalformedRequirement = zerr.New("malformed requirement")

	// ErrUnsupportedOption is returned when a requirements file uses an option that is not supported.
	ErrUnsupportedOption = zerr.New("unsupported requirements file option")

	// ErrMissingPackageName is returned when a source requirement does not reveal its package name.
	ErrMissingPackageName = zerr.New("cannot determine package name, add #egg=<name> or use 'name @ url'")

	// ErrInvalidRequirements is returned when the requirement files cannot be used.
	ErrInvalidRequirements = zerr.New("invalid requirements")

	// ErrRequirementsFileNotFound is returned when a requirements file does not exist.
	ErrRequirementsFileNotFound = zerr.New("requirements file not found")

	// ErrRequirementsFileReadFailed is returned when a requirements file cannot be read.
	ErrRequirementsFileReadFailed = zerr.New("failed to read requirements file")

	// ErrRequirementsIncludeCycle is returned when requirement files include each other.
	ErrRequirementsIncludeCycle = zerr.New("requirements files include each other")

	// ErrNoRequirementsFiles is returned when no files were given and no default file exists.
	ErrNoRequirementsFiles = zerr.New("no requirement files given and no " + DefaultRequirementsFile + " found in the current directory")

	// ErrInputFileExtension is returned when an input (.in) file is passed instead of a compiled one.
	ErrInputFileExtension = zerr.New(
		"some input files have the .in extension, which is most likely an error and can cause weird behaviour; " +
			"you probably meant to use the corresponding *.txt file?",
	)

	// ErrInspectFailed is returned when the installed distributions cannot be listed.
	ErrInspectFailed = zerr.New("failed to inspect installed distributions")

	// ErrInspectParseFailed is returned when the installer's package listing cannot be parsed.
	ErrInspectParseFailed = zerr.New("failed to parse installed distributions")

	// ErrInstallFailed is returned when installing requirements fails.
	ErrInstallFailed = zerr.New("failed to install requirements")

	// ErrUninstallFailed is returned when removing a distribution fails.
	ErrUninstallFailed = zerr.New("failed to uninstall distribution")

	// ErrSyncFailed is returned when at least one install or uninstall failed.
	ErrSyncFailed = zerr.New("environment sync failed")

	// ErrCommandStartFailed is returned when an external command cannot be started.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCommandFailed is returned when an external command exits unsuccessfully.
	ErrCommandFailed = zerr.New("command failed")

	// ErrConfigLoadFailed is returned when the project configuration cannot be loaded.
	ErrConfigLoadFailed = zerr.New("failed to load configuration")

	// ErrUnknownLogFormat is returned when the log format is neither text nor json.
	ErrUnknownLogFormat = zerr.New("unknown log format, expected text or json")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrUnknownConfigKeys is returned when the config file holds keys outside the schema.
	ErrUnknownConfigKeys = zerr.New("unknown config keys")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when the sync record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read sync record")

	// ErrStoreDecodeFailed is returned when the sync record cannot be decoded.
	ErrStoreDecodeFailed = zerr.New("failed to decode sync record")

	// ErrStoreEncodeFailed is returned when the sync record cannot be encoded.
	ErrStoreEncodeFailed = zerr.New("failed to encode sync record")

	// ErrStoreWriteFailed is returned when the sync record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write sync record")
)

// ConflictError reports two requirements for the same package whose specifiers disagree.
type ConflictError struct {
	// Key is the package both requirements refer to.
	Key Key
	// Existing is the requirement seen first.
	Existing Requirement
	// Incoming is the requirement that disagreed with it.
	Incoming Requirement
}

// Error implements error.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s requires %s but %s requires %s",
		ErrConflictingRequirements.Error(),
		originOrUnknown(e.Existing), describe(e.Existing),
		originOrUnknown(e.Incoming), describe(e.Incoming),
	)
}

// Unwrap lets errors.Is match ErrConflictingRequirements.
func (e *ConflictError) Unwrap() error {
	return ErrConflictingRequirements
}

func describe(r Requirement) string {
	return r.Key.String() + " " + r.SpecifierString()
}

func originOrUnknown(r Requirement) string {
	if r.Origin == "" {
		return "<input>"
	}
	return r.Origin
}
