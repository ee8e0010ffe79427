package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// ConfigFileName is the name of the optional store configuration file.
const ConfigFileName = "pasty.yaml"

// FindRoot looks upwards from startDir for a store root.
// Indicators are a pasty.yaml file or a user_keys directory.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, ConfigFileName) || hasFile(dir, DefaultKeysDir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("root not found")
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
