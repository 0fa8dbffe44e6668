package services

import "tentamenbank-api/models"

// MatchCourses keeps the entries whose course ID is in the enrolment set.
func MatchCourses(entries []models.CatalogEntry, enrolled models.EnrolmentSet) []models.CatalogEntry {
	matched := make([]models.CatalogEntry, 0)
	for _, entry := range entries {
		if enrolled.Has(entry.CourseID) {
			matched = append(matched, entry)
		}
	}
	return matched
}
