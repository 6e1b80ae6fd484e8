package logging

import (
	"fmt"
	"os"
	"path/filepath"
)

// DefaultLogDir returns the log directory (~/.feedlens/logs/).
// Falls back to the temp directory if the home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".feedlens", "logs")
	}
	return filepath.Join(home, ".feedlens", "logs")
}

// DefaultLogPath returns the log file path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "feedlens.log")
}

// FindLogFile returns explicit when set, else the default log path, failing
// when the chosen file does not exist.
func FindLogFile(explicit string) (string, error) {
	path := explicit
	if path == "" {
		path = DefaultLogPath()
	}
	if _, err := os.Stat(path); err != nil {
		if explicit != "" {
			return "", fmt.Errorf("log file not found: %s", explicit)
		}
		return "", fmt.Errorf("no log file found at %s; run a command with --debug first", path)
	}
	return path, nil
}
