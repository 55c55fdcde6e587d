package config

import (
	"os"
	"path/filepath"

	"github.com/a1s/gridview/internal/config/data"
)

const AppName = "gridview"

var (
	// AppConfigDir is ~/.config/gridview
	AppConfigDir string

	// AppDataDir is ~/.local/share/gridview
	AppDataDir string

	// AppStateDir is ~/.local/state/gridview
	AppStateDir string

	// AppConfigFile is ~/.config/gridview/gridview.yaml
	AppConfigFile string

	// AppHotkeysFile is ~/.config/gridview/hotkeys.yaml
	AppHotkeysFile string

	// AppLogFile is ~/.local/state/gridview/gridview.log
	AppLogFile string
)

// InitLocs initializes all application directory paths.
// It respects XDG environment variables if set.
func InitLocs() error {
	home := userHomeDir()

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		stateHome = filepath.Join(home, ".local", "state")
	}

	AppConfigDir = filepath.Join(configHome, AppName)
	AppDataDir = filepath.Join(dataHome, AppName)
	AppStateDir = filepath.Join(stateHome, AppName)

	AppConfigFile = filepath.Join(AppConfigDir, "gridview.yaml")
	AppHotkeysFile = filepath.Join(AppConfigDir, "hotkeys.yaml")
	AppLogFile = filepath.Join(AppStateDir, "gridview.log")

	// Persisted grid state lives under the data dir
	data.SetDefaultStateDir(AppDataDir)

	for _, dir := range []string{AppConfigDir, AppDataDir, AppStateDir} {
		if _, err := data.EnsureDirPath(dir, 0700); err != nil {
			return err
		}
	}

	return nil
}

// InitLogLoc ensures the log directory exists
func InitLogLoc() error {
	return data.EnsureFullPath(AppLogFile, 0700)
}

// userHomeDir returns the user's home directory
func userHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return home
}
