package paths

import (
	"os"
	"path/filepath"
)

// ConfigDir returns the directory holding logview's config.yaml.
//
// Without a home directory it falls back to the system temporary directory.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".logview-config")
	}
	return filepath.Join(home, ".config", "logview")
}

// DataDir returns the directory logview writes its debug logs to.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".logview")
	}
	return filepath.Join(home, ".logview")
}

// DebugLogFile is the default --log-file.
func DebugLogFile() string {
	return filepath.Join(DataDir(), "logview.debug.log")
}
