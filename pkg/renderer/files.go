package renderer

import (
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/pkg/errors"
)

// WriteFile writes exported content to outputPath, creating its directory.
func WriteFile(content []byte, outputPath string) (err error) {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	err = os.WriteFile(outputPath, content, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write export file: %s", outputPath)
		return err
	}

	return err
}

// DefaultFilename builds an export filename from the person's name.
func DefaultFilename(fullName string, format Format) (name string) {
	base := sanitizeFilename(fullName)
	if base == "" {
		base = "resume"
	}
	name = base + format.Extension()
	return name
}

// sanitizeFilename lowercases name and collapses everything but letters and
// digits into single hyphens.
func sanitizeFilename(name string) (sanitized string) {
	sanitized = strings.ToLower(strings.TrimSpace(name))

	sanitized = strings.Map(func(r rune) (result rune) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}
