package domain

import "path/filepath"

const (
	// StateDirName is the name of the per-project state directory.
	StateDirName = ".reqsync"

	// StateFileName is the name of the sync record file.
	StateFileName = "state.msgpack"

	// ConfigFileName is the name of the YAML project configuration file.
	ConfigFileName = ".reqsync.yaml"

	// TOMLConfigFileName is the name of the TOML project configuration file.
	TOMLConfigFileName = "reqsync.toml"

	// DefaultRequirementsFile is read when no requirement files are given.
	DefaultRequirementsFile = "requirements.txt"

	// InputFileExtension marks uncompiled requirement inputs.
	InputFileExtension = ".in"

	// DefaultPython is the interpreter used to run pip.
	DefaultPython = "python"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStatePath returns the sync record path relative to the project root.
func DefaultStatePath() string {
	return filepath.Join(StateDirName, StateFileName)
}
