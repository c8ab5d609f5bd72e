package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "mdxor"

// ConfigPaths records which configuration files exist for each layer.
// Empty fields mean the layer has no file.
type ConfigPaths struct {
	System   string // /etc/mdxor/config.yaml, or %ProgramData%\mdxor on Windows
	User     string // $XDG_CONFIG_HOME/mdxor/config.yaml
	Project  string // nearest .mdxor.yml at or above the working directory
	Explicit string // --config
}

// ProjectConfigFiles are the project config names, most preferred first.
//
//nolint:gochecknoglobals // read-only
var ProjectConfigFiles = []string{".mdxor.yml", ".mdxor.yaml", "mdxor.yml", "mdxor.yaml"}

// layerConfigFiles are the names looked up in system and user config dirs.
//
//nolint:gochecknoglobals // read-only
var layerConfigFiles = []string{"config.yaml", "config.yml"}

// DiscoverPaths locates the system, user and project configuration files.
// A layer without a file is left empty rather than reported as an error.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	paths := &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		Project: project,
	}
	if dir, err := UserConfigDir(); err == nil {
		paths.User = firstFile(dir, layerConfigFiles)
	}
	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS != "windows" {
		return filepath.Join("/etc", appName)
	}
	base := os.Getenv("ProgramData")
	if base == "" {
		base = `C:\ProgramData`
	}
	return filepath.Join(base, appName)
}

// UserConfigDir returns $XDG_CONFIG_HOME/mdxor, defaulting XDG_CONFIG_HOME
// to ~/.config.
func UserConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// FindProjectConfig walks from startDir toward the root and returns the first
// project config file found. The search stops after a directory containing a
// VCS marker, after the home directory, or at the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}
		if found := firstFile(dir, ProjectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || hasVCSMarker(dir) {
			return "", nil
		}
		dir = parent
	}
}

func hasVCSMarker(dir string) bool {
	for _, marker := range []string{".git", ".hg", ".svn"} {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that is a regular file in dir.
func firstFile(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
