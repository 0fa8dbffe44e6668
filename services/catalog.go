package services

import (
	"fmt"

	"tentamenbank-api/models"
)

// BuildCatalog merges directories with admin overrides, keeping listing order.
func BuildCatalog(root string, dirs []models.Directory, mapping models.Mapping) []models.CatalogEntry {
	entries := make([]models.CatalogEntry, 0, len(dirs))
	for _, dir := range dirs {
		entry := models.CatalogEntry{
			Study:   dir.Study,
			Subject: dir.Subject,
			URL:     fmt.Sprintf("/%s/%s/%s", root, dir.Study, dir.Subject),
		}

		if override, ok := mapping.Lookup(dir.Subject); ok {
			entry.CourseID = override.ID
			if override.Name != "" {
				entry.Subject = override.Name
			}
		}

		entries = append(entries, entry)
	}
	return entries
}
