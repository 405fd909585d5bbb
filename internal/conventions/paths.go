package conventions

import "path/filepath"

const (
	// DefaultDataDir is the default janosik data directory name (relative to home).
	DefaultDataDir = ".janosik"
	// DBFile is the protip database filename.
	DBFile = "janosik.db"
	// SettingsFile is the optional YAML settings filename.
	SettingsFile = "janosik.yaml"
	// BinDir is the default directory, relative to the working directory, where
	// runnable programs are installed.
	BinDir = "bin"
	// StagedInputPattern is the os.CreateTemp pattern of a staged run input,
	// the placeholder is replaced by the run ID.
	StagedInputPattern = "janosik-%s-*.in"
)

// DBPath returns the protip database path inside a data directory.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, DBFile)
}

// SettingsPath returns the settings file path inside a data directory.
func SettingsPath(dataDir string) string {
	return filepath.Join(dataDir, SettingsFile)
}
