package services

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"tentamenbank-api/models"
)

const (
	answersType       = "Answers"
	questionsLabel    = "Questions"
	questionsZipLabel = "Questions (zip)"
	examSortLayout    = "2006-01-02"
	examDisplayLayout = "02 Jan 2006"
)

// <date>_<type>_<suffix>.<pdf|zip>; the type group is greedy
var examFilePattern = regexp.MustCompile(`(?i)^(\d{4}-\d{2}-\d{2})_(.*)_(.*)\.(pdf|zip)$`)

// BuildExamRecords turns the files of one subject into exam records, newest first.
// Files sharing a display date are merged into one record; later files overwrite earlier fields.
func BuildExamRecords(keys []string) []models.ExamRecord {
	byDate := make(map[string]*models.ExamRecord)
	order := make([]string, 0)

	for _, key := range keys {
		matches := examFilePattern.FindStringSubmatch(extractFileName(key))
		if matches == nil {
			continue
		}

		// strict parse: overflow dates like 2023-02-30 are skipped, not rolled over
		date, err := time.Parse(examSortLayout, matches[1])
		if err != nil {
			continue
		}
		displayDate := date.Format(examDisplayLayout)
		examType := matches[2]
		extension := strings.ToLower(matches[4])

		record, ok := byDate[displayDate]
		if !ok {
			record = &models.ExamRecord{
				SortKey:        date.Format(examSortLayout),
				DisplayDate:    displayDate,
				QuestionsLabel: questionsLabel,
			}
			byDate[displayDate] = record
			order = append(order, displayDate)
		}

		if examType == answersType {
			record.AnswersKey = key
			continue
		}
		record.QuestionsKey = key
		record.Type = examType
		if extension == "zip" {
			record.QuestionsLabel = questionsZipLabel
		}
	}

	records := make([]models.ExamRecord, 0, len(order))
	for _, displayDate := range order {
		records = append(records, *byDate[displayDate])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortKey > records[j].SortKey
	})
	return records
}
