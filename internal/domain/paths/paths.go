// Package paths resolves mash's config and data locations.
package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"mash/internal/domain/consts"

	"github.com/mitchellh/go-homedir"
)

// ConfigDir returns the config directory, honoring XDG_CONFIG_HOME.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, consts.AppName)
	}

	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, consts.AppName)
		}
		return filepath.Join(home, consts.AppName)
	}
	return filepath.Join(home, ".config", consts.AppName)
}

// DataDir returns the data directory for archives, the history database
// and resume checkpoints, honoring XDG_DATA_HOME.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, consts.AppName)
	}

	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			return filepath.Join(appData, consts.AppName)
		}
		return filepath.Join(home, consts.AppName)
	}
	return filepath.Join(home, ".local", "share", consts.AppName)
}

// ConfigPath returns the path of the main config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), consts.ConfigFileName)
}

// DefaultArchivePath returns the default download-archive location.
func DefaultArchivePath() string {
	return filepath.Join(DataDir(), consts.ArchiveFileName)
}

// DBPath returns the history database location.
func DBPath() string {
	return filepath.Join(DataDir(), consts.DBFileName)
}

// ResumePath returns the default resume-checkpoint location.
func ResumePath() string {
	return filepath.Join(DataDir(), consts.ResumeFileName)
}
