package domain

// Config is the project configuration read from .reqsync.yaml or reqsync.toml.
type Config struct {
	// Path is the file the configuration was read from. Empty when none was found.
	Path string
	// Requirements are the default requirement files, relative to the config file.
	Requirements []string
	// Python is the interpreter whose pip manages the environment.
	Python string
	// Protected extends the packages that are never uninstalled.
	Protected []string
	// Install holds default installer options.
	Install InstallOptions
}
