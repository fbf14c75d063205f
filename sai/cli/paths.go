package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// AppPaths is an interface to determine application specific paths for configuration
// and logging/tracing.
type AppPaths interface {
	ConfigDir() string
	LogDir() string
}

// DefaultAppPaths returns an AppPaths instance with platform-dependent defaults
// set, given appTag. appTag is a string specific to a client's application to identify it.
func DefaultAppPaths(appTag string) (AppPaths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return appPaths{tag: appTag}, err
	}
	return appPaths{tag: appTag, home: home}, nil
}

type appPaths struct {
	tag  string
	home string
}

var _ AppPaths = appPaths{}

// ConfigDir is the user's configuration directory, with a sub-directory for
// the application.
func (a appPaths) ConfigDir() string {
	c, err := os.UserConfigDir()
	if err != nil {
		c = filepath.Join(a.home, fallbackConfigDir)
	}
	return filepath.Join(c, a.dirname())
}

// LogDir is the directory for trace output.
func (a appPaths) LogDir() string {
	if a.home == "" {
		return ""
	}
	return filepath.Join(logBase(a.home), a.dirname())
}

func (a appPaths) dirname() string {
	if lowercaseDirs {
		return strings.ToLower(a.tag)
	}
	return a.tag
}
