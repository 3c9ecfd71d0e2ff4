package helpers

import (
	"path/filepath"
	"runtime"
)

// RootDir is the repository root, resolved from this source file.
func RootDir() string {
	_, b, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(b), "..", "..")
}
