package cli

import (
	"os"
	"path/filepath"
)

const fallbackConfigDir = "AppData"

const lowercaseDirs = false

func logBase(home string) string {
	c, err := os.UserCacheDir()
	if err != nil {
		c = home
	}
	return filepath.Join(c, "Logs")
}
