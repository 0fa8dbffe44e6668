package services

import (
	"strings"

	"tentamenbank-api/models"
)

// ParseObjectKeys collapses a listing into unique <root>/<study>/<subject> directories.
// Keys whose directory has fewer than three segments are skipped; the count is returned.
func ParseObjectKeys(keys []string) ([]models.Directory, int) {
	seen := make(map[string]struct{}, len(keys))
	dirs := make([]models.Directory, 0)
	skipped := 0

	for _, key := range keys {
		prefix := directoryOf(key)
		if _, ok := seen[prefix]; ok {
			continue
		}
		seen[prefix] = struct{}{}

		parts := strings.Split(strings.Trim(prefix, "/"), "/")
		if len(parts) < 3 {
			skipped++
			continue
		}
		dirs = append(dirs, models.Directory{
			Study:   parts[1],
			Subject: parts[2],
		})
	}

	return dirs, skipped
}

// directoryOf strips the final path segment
func directoryOf(key string) string {
	idx := strings.LastIndex(key, "/")
	if idx < 0 {
		return ""
	}
	return key[:idx]
}

func extractFileName(path string) string {
	parts := strings.Split(path, "/")
	return parts[len(parts)-1]
}
