// Package paths resolves where animename keeps its config, database and logs.
//
// When running with sudo, paths resolve to the original user's directories
// (via SUDO_USER) instead of root's. ANIMENAME_HOME overrides the base
// directory entirely.
package paths

import (
	"os"
	"os/user"
	"path/filepath"
)

// HomeEnv names the environment variable overriding the base directory.
const HomeEnv = "ANIMENAME_HOME"

// UserHomeDir returns the home directory of the actual user.
// If running with sudo, returns the SUDO_USER's home directory, not root's.
func UserHomeDir() (string, error) {
	if sudoUser := os.Getenv("SUDO_USER"); sudoUser != "" && sudoUser != "root" {
		u, err := user.Lookup(sudoUser)
		if err == nil {
			return u.HomeDir, nil
		}
	}
	return os.UserHomeDir()
}

// AnimenameDir returns the base directory, ~/.config/animename unless
// ANIMENAME_HOME is set.
func AnimenameDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	home, err := UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "animename"), nil
}

// ConfigPath returns the path to config.toml.
func ConfigPath() (string, error) {
	return inDir("config.toml")
}

// DatabasePath returns the path to the torrent database.
func DatabasePath() (string, error) {
	return inDir("torrents.db")
}

// LogPath returns the default log file path.
func LogPath() (string, error) {
	return inDir(filepath.Join("logs", "animename.log"))
}

func inDir(name string) (string, error) {
	dir, err := AnimenameDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name), nil
}
