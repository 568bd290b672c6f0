package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/kilm/pkg/errors"
)

// Environment variable names
const (
	// EnvKilmConfigDir overrides the XDG config directory for kilm
	EnvKilmConfigDir = "KILM_CONFIG_DIR"

	// EnvKilmStateDir overrides the XDG state directory for kilm
	EnvKilmStateDir = "KILM_STATE_DIR"

	// EnvKiCadConfigHome is KiCad's own configuration root override
	EnvKiCadConfigHome = "KICAD_CONFIG_HOME"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These are not user-configurable; user-facing paths live in
// pkg/config.
const (
	// AppDirName is the directory name for kilm-specific files
	AppDirName = "kilm"

	// ConfigFileName is the default user config file
	ConfigFileName = "config.toml"

	// LogFileName is the name of the log file
	LogFileName = "kilm.log"

	// KiCadDirName is the directory KiCad keeps its profiles under
	KiCadDirName = "kicad"

	// FlatpakAppID is the Flathub id of KiCad
	FlatpakAppID = "org.kicad.KiCad"
)

// Paths provides kilm's own directories
type Paths interface {
	ConfigDir() string
	StateDir() string
	ConfigFilePath() string
	LogFilePath() string
}

type paths struct {
	configDir string
	stateDir  string
}

// New resolves kilm's directories from the environment
func New() Paths {
	p := &paths{}

	if dir := os.Getenv(EnvKilmConfigDir); dir != "" {
		p.configDir = ExpandHome(dir)
	} else if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		p.configDir = filepath.Join(dir, AppDirName)
	} else {
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvKilmStateDir); dir != "" {
		p.stateDir = ExpandHome(dir)
	} else if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		p.stateDir = filepath.Join(dir, AppDirName)
	} else {
		p.stateDir = filepath.Join(xdg.StateHome, AppDirName)
	}

	return p
}

func (p *paths) ConfigDir() string {
	return p.configDir
}

func (p *paths) StateDir() string {
	return p.stateDir
}

// ConfigFilePath returns the default location of the user config file
func (p *paths) ConfigFilePath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// LogFilePath returns the path to the kilm log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.stateDir, LogFileName)
}

// KiCadRoots returns the OS-conventional KiCad configuration roots for
// goos, most specific first. Each root holds either the library tables
// directly or one directory per KiCad version.
func KiCadRoots(goos string) []string {
	home := GetHomeDirectoryWithDefault("")
	var roots []string

	switch goos {
	case "darwin":
		if home != "" {
			roots = append(roots, filepath.Join(home, "Library", "Preferences", KiCadDirName))
		}
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData == "" && home != "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		if appData != "" {
			roots = append(roots, filepath.Join(appData, KiCadDirName))
		}
	default:
		configHome := os.Getenv("XDG_CONFIG_HOME")
		if configHome == "" {
			configHome = xdg.ConfigHome
		}
		roots = append(roots, filepath.Join(configHome, KiCadDirName))
	}

	return roots
}

// FlatpakRoot returns the sandboxed KiCad root used by the Flathub build,
// or an empty string when it does not apply to goos
func FlatpakRoot(goos string) string {
	if goos != "linux" {
		return ""
	}
	home := GetHomeDirectoryWithDefault("")
	if home == "" {
		return ""
	}
	return filepath.Join(home, ".var", "app", FlatpakAppID, "config", KiCadDirName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user forms are left alone
	return path
}

// Normalize expands ~ and makes path absolute and clean
func Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New(errors.ErrInvalidInput, "path cannot be empty")
	}
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// GetHomeDirectoryWithDefault returns the home directory or a default value
func GetHomeDirectoryWithDefault(defaultDir string) string {
	homeDir, err := GetHomeDirectory()
	if err != nil {
		return defaultDir
	}
	return homeDir
}
