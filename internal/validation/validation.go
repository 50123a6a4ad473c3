// Package validation checks command line input before any file is touched.
package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"
)

// IsValidPath checks if a given path exists and is accessible.
func IsValidPath(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking path %s: %w", path, err)
	}

	// Ensure it's an absolute path
	if !filepath.IsAbs(path) {
		return fmt.Errorf("path must be absolute: %s", path)
	}

	if !info.IsDir() && !info.Mode().IsRegular() {
		return fmt.Errorf("path %s is neither a file nor a directory", path)
	}

	return nil
}

// IsValidInputFile resolves path and checks that it names a regular file.
// It returns the absolute path.
func IsValidInputFile(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("input file is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("error resolving path %s: %w", path, err)
	}
	if err := IsValidPath(abs); err != nil {
		return "", err
	}
	if info, _ := os.Stat(abs); info.IsDir() {
		return "", fmt.Errorf("path %s is a directory, expected a file", path)
	}
	return abs, nil
}

// IsValidOutputFormat checks if the given format is supported.
func IsValidOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml", "xml":
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s. Supported formats are 'text', 'json', 'yaml', 'xml'", format)
	}
}

// IsValidCSVDelimiter checks that delimiter is a single character usable as
// a CSV separator and returns it.
func IsValidCSVDelimiter(delimiter string) (rune, error) {
	if utf8.RuneCountInString(delimiter) != 1 {
		return 0, fmt.Errorf("CSV delimiter must be a single character, got %q", delimiter)
	}
	r, _ := utf8.DecodeRuneInString(delimiter)
	switch r {
	case '"', '\r', '\n', utf8.RuneError:
		return 0, fmt.Errorf("invalid CSV delimiter %q", delimiter)
	}
	return r, nil
}

// IsValidDateFormat checks the CSV date format name.
func IsValidDateFormat(format string) error {
	switch format {
	case "YYYY-MM-DD", "DD.MM.YYYY":
		return nil
	default:
		return fmt.Errorf("unsupported date format: %s. Supported formats are 'YYYY-MM-DD', 'DD.MM.YYYY'", format)
	}
}

// IsValidFilePermissions checks if the given file mode is valid for sensitive files.
func IsValidFilePermissions(mode os.FileMode) error {
	if mode&0002 != 0 {
		return fmt.Errorf("file permissions are too permissive: %s. Recommended 0600 or 0644", mode.String())
	}
	return nil
}
