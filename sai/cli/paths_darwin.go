package cli

import "path/filepath"

const fallbackConfigDir = "Library/Application Support"

const lowercaseDirs = false

func logBase(home string) string {
	return filepath.Join(home, "Library", "Logs")
}
