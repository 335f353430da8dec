package utils

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/charmbracelet/log"
)

// PathResolver finds dictionaries and config files relative to the running binary
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a resolver anchored at the executable location
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  filepath.Dir(execPath),
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, configDir=%s", pr.executablePath, pr.configDir)
	return pr, nil
}

// getConfigDir returns the platform config directory for ninekey
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "ninekey")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "ninekey")
		}
		return filepath.Join(homeDir, ".config", "ninekey")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "ninekey")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "ninekey")
	default:
		return filepath.Join(homeDir, ".ninekey")
	}
}

// GetDictPath resolves a dictionary file or data directory. It tries, in order:
// the path itself when absolute, the path relative to the executable, relative to the working dir,
// and finally the data dirs next to the executable and in the config dir.
// When nothing exists the working-dir candidate is returned, so the loader reports a useful path.
func (pr *PathResolver) GetDictPath(userSpecifiedPath string) string {
	candidates := pr.dictCandidates(userSpecifiedPath)
	for _, path := range candidates {
		if IsValidDictPath(path) {
			log.Debugf("Found dictionary at: %s", path)
			return path
		}
		log.Debugf("Dictionary candidate not valid: %s", path)
	}
	if cwd, err := os.Getwd(); err == nil && !filepath.IsAbs(userSpecifiedPath) {
		return filepath.Join(cwd, userSpecifiedPath)
	}
	return userSpecifiedPath
}

func (pr *PathResolver) dictCandidates(userSpecifiedPath string) []string {
	if filepath.IsAbs(userSpecifiedPath) {
		return []string{userSpecifiedPath}
	}

	candidates := []string{filepath.Join(pr.executableDir, userSpecifiedPath)}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}
	return append(candidates,
		filepath.Join(pr.executableDir, "data"),
		filepath.Join(filepath.Dir(pr.executableDir), "data"),
		filepath.Join(pr.configDir, "data"),
	)
}

// IsValidDictPath accepts a regular file, or a directory holding at least one dict_* file
func IsValidDictPath(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	if !stat.IsDir() {
		return true
	}
	for _, pattern := range []string{"dict_*.txt", "dict_*.bin"} {
		if matches, err := filepath.Glob(filepath.Join(path, pattern)); err == nil && len(matches) > 0 {
			return true
		}
	}
	return false
}

// GetConfigDir returns the config directory
func (pr *PathResolver) GetConfigDir() string {
	return pr.configDir
}

// GetRuntimeInfo returns debug information about the current runtime environment
func (pr *PathResolver) GetRuntimeInfo() map[string]string {
	cwd, _ := os.Getwd()

	info := map[string]string{
		"executable_path": pr.executablePath,
		"executable_dir":  pr.executableDir,
		"current_dir":     cwd,
		"home_dir":        pr.homeDir,
		"config_dir":      pr.configDir,
		"os":              runtime.GOOS,
		"arch":            runtime.GOARCH,
	}
	for _, envVar := range []string{"HOME", "XDG_CONFIG_HOME", "APPDATA"} {
		if value := os.Getenv(envVar); value != "" {
			info["env_"+strings.ToLower(envVar)] = value
		}
	}
	return info
}
