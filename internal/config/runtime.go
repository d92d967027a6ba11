package config

import (
	"os"
	"path/filepath"
)

// GetRuntimePath returns the runtime directory before any config struct
// is parsed, so the .env file can be loaded from the same place the
// rest of the app writes to.
func GetRuntimePath() string {
	path := os.Getenv("JARVIS_RUNTIME_PATH")
	if path == "" {
		path = ".jarvis"
	}
	return resolveRuntimePath(path)
}

// resolveRuntimePath anchors relative runtime paths under the user's
// home directory. Absolute paths pass through unchanged.
func resolveRuntimePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, path)
}
