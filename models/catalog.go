package models

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Directory is one unique <study>/<subject> folder found in a listing
type Directory struct {
	Study   string `json:"study"`
	Subject string `json:"subject"`
}

// CatalogEntry is a subject shown on the overview page
type CatalogEntry struct {
	Study    string `json:"study"`
	Subject  string `json:"subject"`
	CourseID string `json:"courseId"`
	URL      string `json:"url"`
}

// ExamRecord groups the questions and answers of one exam date
type ExamRecord struct {
	SortKey        string `json:"sortKey"`
	DisplayDate    string `json:"displayDate"`
	Type           string `json:"type"`
	QuestionsKey   string `json:"questionsKey"`
	QuestionsLabel string `json:"questionsLabel"`
	AnswersKey     string `json:"answersKey"`
}

// MappingEntry is an administrator override for a subject folder
type MappingEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Mapping is keyed by the raw subject folder name
type Mapping map[string]MappingEntry

// Lookup tries the HTML-entity-decoded subject first, then the raw one.
func (m Mapping) Lookup(subject string) (MappingEntry, bool) {
	if entry, ok := m[html.UnescapeString(subject)]; ok {
		return entry, true
	}
	entry, ok := m[subject]
	return entry, ok
}

// MappingRow is one line of the admin mapping table
type MappingRow struct {
	Study   string `json:"study"`
	Subject string `json:"subject"`
	ID      string `json:"id"`
	Name    string `json:"name"`
}

// EnrolmentSet holds normalized course codes
type EnrolmentSet map[string]struct{}

// NewEnrolmentSet normalizes codes and drops empty ones and duplicates.
func NewEnrolmentSet(codes ...string) EnrolmentSet {
	set := make(EnrolmentSet, len(codes))
	for _, code := range codes {
		set.Add(code)
	}
	return set
}

func (s EnrolmentSet) Add(code string) {
	if code = NormalizeCourseCode(code); code != "" {
		s[code] = struct{}{}
	}
}

func (s EnrolmentSet) Has(code string) bool {
	code = NormalizeCourseCode(code)
	if code == "" {
		return false
	}
	_, ok := s[code]
	return ok
}

// NormalizeCourseCode trims and uppercases a catalog number.
func NormalizeCourseCode(code string) string {
	// cases.Caser keeps state, so one per call
	return cases.Upper(language.Und).String(strings.TrimSpace(code))
}

// Overview is the payload of the main page
type Overview struct {
	Subjects  []CatalogEntry `json:"subjects"`
	MyCourses []CatalogEntry `json:"myCourses"`
	StudentID string         `json:"studentId"`
}
