package util

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// FileExists reports whether path names an existing file or directory.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// CreateFileIfNotExist creates an empty file at filePath, along with any
// missing parent directories. An existing file is left untouched.
func CreateFileIfNotExist(filePath string) error {
	if _, err := os.Stat(filePath); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrap(err, fmt.Sprintf("error in checking if file exists: %s", filePath))
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in creating directory for: %s", filePath))
	}

	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrap(err, fmt.Sprintf("error in creating: %s", filePath))
	}
	return f.Close()
}
