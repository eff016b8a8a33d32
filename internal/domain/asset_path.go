package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9.\-]`)
	repeatedUnderscores = regexp.MustCompile(`_+`)
)

// defaultFilename is used when sanitization leaves nothing behind.
const defaultFilename = "file"

// SanitizeFilename replaces every character outside letters, digits, '-' and
// '.' with '_' and collapses runs of '_'.
func SanitizeFilename(name string) string {
	cleaned := unsafeFilenameChars.ReplaceAllString(name, "_")
	cleaned = repeatedUnderscores.ReplaceAllString(cleaned, "_")
	if strings.Trim(cleaned, "_.") == "" {
		return defaultFilename
	}
	return cleaned
}

// AssetPath builds the globally unique blob path for an uploaded asset:
// {equipment_id}/{random_uuid}-{sanitized_filename}.
func AssetPath(equipmentID uuid.UUID, filename string) string {
	return equipmentID.String() + "/" + uuid.NewString() + "-" + SanitizeFilename(filename)
}
