// Package validation runs local preflight checks on documents before they
// are uploaded for evaluation.
package validation

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AllowedExtensions are the document types the evaluation service reads.
var AllowedExtensions = []string{".pdf", ".docx", ".txt"}

// CheckFileExists verifies a regular file exists at the given path.
func CheckFileExists(path string) error {
	if path == "" {
		return fmt.Errorf("path is required")
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("path %s does not exist", path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

// CheckExtension verifies the file carries a supported document extension.
func CheckExtension(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	if ext == "" {
		return fmt.Errorf("%s has no extension; expected one of %s", filepath.Base(path), strings.Join(AllowedExtensions, ", "))
	}
	return fmt.Errorf("%s has unsupported type %s; expected one of %s", filepath.Base(path), ext, strings.Join(AllowedExtensions, ", "))
}

// CheckNotEmpty verifies the file has content.
func CheckNotEmpty(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("%s is empty", filepath.Base(path))
	}
	return nil
}

// TotalSize sums the sizes of the given files. Unreadable files count as 0.
func TotalSize(paths []string) int64 {
	var total int64
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil {
			total += info.Size()
		}
	}
	return total
}
