package export

import (
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/arthur-debert/toran/types"
)

var dashes = regexp.MustCompile("-+")

// ArchiveFilename returns the default bundle name for an export taken at t
func ArchiveFilename(t time.Time) string {
	return "toran-export-" + t.UTC().Format("20060102-150405") + ".zip"
}

// categoryFilename names the per-category CSV inside the bundle
func categoryFilename(c types.Category) string {
	return "categories/" + sanitize(string(c)) + ".csv"
}

// sanitize lower-cases name and keeps only letters, digits, dash and underscore
func sanitize(name string) string {
	result := strings.ToLower(strings.ReplaceAll(name, " ", "-"))

	var builder strings.Builder
	for _, r := range result {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			builder.WriteRune(r)
		}
	}
	result = strings.Trim(dashes.ReplaceAllString(builder.String(), "-"), "-")

	if len(result) > 40 {
		result = result[:40]
	}
	if result == "" {
		result = "uncategorized"
	}
	return result
}
