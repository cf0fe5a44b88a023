// FILE: lixenwraith/localconfig/discovery.go
package localconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultLastSource returns the per-user override file for programName:
// $XDG_CONFIG_HOME/<name>, or ~/.config/<name> when XDG_CONFIG_HOME is unset.
// Only the base name of programName is used, so os.Args[0] can be passed directly.
// Returns "" when programName is empty or no home directory is known.
func DefaultLastSource(programName string) string {
	if programName == "" {
		return ""
	}
	name := filepath.Base(programName)

	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, name)
	}
	if home := homeDir(); home != "" {
		return filepath.Join(home, ".config", name)
	}
	return ""
}

// expandHome replaces a leading "~" with the home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home := homeDir()
	if home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home
}

// fileExists reports whether path exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
