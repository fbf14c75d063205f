//go:build !darwin && !windows
// +build !darwin,!windows

package cli

import (
	"os"
	"path/filepath"
)

const fallbackConfigDir = ".config"

const lowercaseDirs = true

func logBase(home string) string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = home
	}
	return filepath.Join(c, "logs")
}
