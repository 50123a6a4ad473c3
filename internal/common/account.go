package common

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rayslava/camt053/internal/models"
)

// Account identifier sources
const (
	SourceContent  = "content"
	SourceFilename = "filename"
	SourceDefault  = "default"
)

// AccountIdentifier represents an extracted account identifier with its source
type AccountIdentifier struct {
	ID     string // The account identifier, e.g. an IBAN
	Source string // One of SourceContent, SourceFilename, SourceDefault
}

// Bank export naming: CAMT.053_{account}_{start_date}_{end_date}_{sequence}.{ext}
// Example: CAMT.053_54293249_2025-04-01_2025-04-30_1.xml
var camtFilenamePattern = regexp.MustCompile(`(?i)^CAMT\.053_([0-9A-Z]+)_\d{4}-\d{2}-\d{2}_\d{4}-\d{2}-\d{2}_\d+\.(xml|csv)$`)

// ExtractAccountFromCAMTFilename extracts the account number from bank export
// file names, falling back to the sanitized base name.
func ExtractAccountFromCAMTFilename(filename string) AccountIdentifier {
	baseName := filepath.Base(filename)

	matches := camtFilenamePattern.FindStringSubmatch(baseName)
	if len(matches) >= 2 {
		return AccountIdentifier{
			ID:     matches[1],
			Source: SourceFilename,
		}
	}

	baseWithoutExt := strings.TrimSuffix(baseName, filepath.Ext(baseName))
	return AccountIdentifier{
		ID:     SanitizeAccountID(baseWithoutExt),
		Source: SourceDefault,
	}
}

// ExtractAccountFromStatement returns the statement account identifier.
// Statements without an account fall back to the file name.
func ExtractAccountFromStatement(stmt models.Statement, filename string) AccountIdentifier {
	if stmt.Account.ID.IsSet() && strings.TrimSpace(stmt.Account.ID.Value()) != "" {
		return AccountIdentifier{
			ID:     SanitizeAccountID(strings.ReplaceAll(stmt.Account.ID.Value(), " ", "")),
			Source: SourceContent,
		}
	}
	return ExtractAccountFromCAMTFilename(filename)
}

// SanitizeAccountID sanitizes an account identifier to be filesystem-safe
// Removes or replaces characters that are not safe for filenames
// Also removes path traversal sequences like ".." for security
func SanitizeAccountID(accountID string) string {
	sanitized := strings.TrimSpace(accountID)
	sanitized = strings.ReplaceAll(sanitized, " ", "_")

	// Keep alphanumeric, underscores, hyphens, and dots
	var result strings.Builder
	for _, r := range sanitized {
		if (r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') ||
			r == '_' || r == '-' || r == '.' {
			result.WriteRune(r)
		} else {
			result.WriteRune('_')
		}
	}

	sanitized = result.String()

	for strings.Contains(sanitized, "..") {
		sanitized = strings.ReplaceAll(sanitized, "..", "_")
	}

	for strings.Contains(sanitized, "__") {
		sanitized = strings.ReplaceAll(sanitized, "__", "_")
	}

	sanitized = strings.Trim(sanitized, "_.")

	if sanitized == "" {
		sanitized = "UNKNOWN"
	}

	return sanitized
}
