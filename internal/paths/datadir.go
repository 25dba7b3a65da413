// Package paths resolves where the ledger keeps its files.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DataDirName is the directory created inside a project to hold ledger state.
	DataDirName = ".qnet"
	// DatabaseFile is the SQLite file inside the data directory.
	DatabaseFile = "qnet.db"
	// ConfigFile is the config file name inside the data directory.
	ConfigFile = "config.yaml"
	// TracesFile is the JSONL trace output inside the data directory.
	TracesFile = "traces/traces.jsonl"
)

// ResolveDataDir resolves the ledger data directory from user input.
//
// Input normalization:
//   - "/path/to/project" -> "/path/to/project/.qnet"
//   - "/path/to/project/.qnet" -> "/path/to/project/.qnet"
//   - "/path/to/ledger-data" (containing qnet.db) -> "/path/to/ledger-data"
//   - "" -> "./.qnet"
//
// If the resolved directory holds a redirect file, its contents name the
// real directory relative to it. Several checkouts can share one ledger this way.
func ResolveDataDir(path string) string {
	if path == "" {
		path = "."
	}
	path = filepath.Clean(path)

	if filepath.Base(path) == DataDirName {
		return followRedirect(path)
	}

	if _, err := os.Stat(filepath.Join(path, DatabaseFile)); err == nil {
		return followRedirect(path)
	}

	return followRedirect(filepath.Join(path, DataDirName))
}

// DatabasePath returns the SQLite path inside dataDir.
func DatabasePath(dataDir string) string {
	return filepath.Join(dataDir, DatabaseFile)
}

// TracesPath returns the trace file path inside dataDir.
func TracesPath(dataDir string) string {
	return filepath.Join(dataDir, filepath.FromSlash(TracesFile))
}

// UserConfigPath returns ~/.config/qnet/config.yaml, or "" when the home
// directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "qnet", ConfigFile)
}

func followRedirect(dataDir string) string {
	content, err := os.ReadFile(filepath.Join(dataDir, "redirect")) //nolint:gosec // redirect path is within the data dir
	if err != nil {
		return dataDir
	}

	target := strings.TrimSpace(string(content))
	if target == "" {
		return dataDir
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}
	return filepath.Clean(filepath.Join(dataDir, target))
}
