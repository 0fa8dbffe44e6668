package services

import (
	"testing"

	"tentamenbank-api/models"
)

const subjectPrefix = "tentamenbank/Psychology/Statistics/"

func TestBuildExamRecords_Questions(t *testing.T) {
	got := BuildExamRecords([]string{subjectPrefix + "2023-05-10_Exam_A.pdf"})

	want := models.ExamRecord{
		SortKey:        "2023-05-10",
		DisplayDate:    "10 May 2023",
		Type:           "Exam",
		QuestionsKey:   subjectPrefix + "2023-05-10_Exam_A.pdf",
		QuestionsLabel: "Questions",
		AnswersKey:     "",
	}
	if len(got) != 1 {
		t.Fatalf("BuildExamRecords() returned %d records, want 1", len(got))
	}
	if got[0] != want {
		t.Errorf("record = %+v, want %+v", got[0], want)
	}
}

func TestBuildExamRecords_AnswersJoinQuestions(t *testing.T) {
	got := BuildExamRecords([]string{
		subjectPrefix + "2023-05-10_Exam_A.pdf",
		subjectPrefix + "2023-05-10_Answers_A.pdf",
	})

	if len(got) != 1 {
		t.Fatalf("BuildExamRecords() returned %d records, want 1", len(got))
	}
	if got[0].AnswersKey != subjectPrefix+"2023-05-10_Answers_A.pdf" {
		t.Errorf("AnswersKey = %q, want answers file", got[0].AnswersKey)
	}
	if got[0].Type != "Exam" {
		t.Errorf("Type = %q, want Exam", got[0].Type)
	}
	if got[0].QuestionsKey != subjectPrefix+"2023-05-10_Exam_A.pdf" {
		t.Errorf("QuestionsKey = %q, want exam file", got[0].QuestionsKey)
	}
}

func TestBuildExamRecords_AnswersOnly(t *testing.T) {
	got := BuildExamRecords([]string{subjectPrefix + "2020-02-01_Answers_final.pdf"})

	if len(got) != 1 {
		t.Fatalf("BuildExamRecords() returned %d records, want 1", len(got))
	}
	if got[0].Type != "" || got[0].QuestionsKey != "" || got[0].QuestionsLabel != "Questions" {
		t.Errorf("record = %+v, want empty questions side", got[0])
	}
}

func TestBuildExamRecords_Zip(t *testing.T) {
	got := BuildExamRecords([]string{subjectPrefix + "2023-05-10_Exam_A.ZIP"})

	if len(got) != 1 {
		t.Fatalf("BuildExamRecords() returned %d records, want 1", len(got))
	}
	if got[0].QuestionsLabel != "Questions (zip)" {
		t.Errorf("QuestionsLabel = %q, want Questions (zip)", got[0].QuestionsLabel)
	}
}

func TestBuildExamRecords_SortedNewestFirst(t *testing.T) {
	got := BuildExamRecords([]string{
		subjectPrefix + "2021-01-01_Exam_A.pdf",
		subjectPrefix + "2022-06-15_Resit_A.pdf",
		subjectPrefix + "2019-12-31_Midterm_A.pdf",
	})

	want := []string{"2022-06-15", "2021-01-01", "2019-12-31"}
	if len(got) != len(want) {
		t.Fatalf("BuildExamRecords() returned %d records, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].SortKey != want[i] {
			t.Errorf("record %d SortKey = %q, want %q", i, got[i].SortKey, want[i])
		}
	}
}

func TestBuildExamRecords_Ignored(t *testing.T) {
	keys := []string{
		subjectPrefix + "notes.pdf",
		subjectPrefix + "2023-05-10_Exam.pdf",
		subjectPrefix + "2023-05-10_Exam_A.docx",
		subjectPrefix + "23-05-10_Exam_A.pdf",
		subjectPrefix + "2023-13-40_Exam_A.pdf",
		subjectPrefix + "2023-02-30_Exam_A.pdf",
		subjectPrefix,
	}
	if got := BuildExamRecords(keys); len(got) != 0 {
		t.Errorf("BuildExamRecords() = %v, want none", got)
	}
}

func TestBuildExamRecords_GreedyType(t *testing.T) {
	got := BuildExamRecords([]string{subjectPrefix + "2023-05-10_Final_Exam_v2.pdf"})

	if len(got) != 1 {
		t.Fatalf("BuildExamRecords() returned %d records, want 1", len(got))
	}
	if got[0].Type != "Final_Exam" {
		t.Errorf("Type = %q, want Final_Exam", got[0].Type)
	}
}

func TestBuildExamRecords_SameDateOverwrites(t *testing.T) {
	got := BuildExamRecords([]string{
		subjectPrefix + "2023-05-10_Exam_A.zip",
		subjectPrefix + "2023-05-10_Resit_B.pdf",
	})

	if len(got) != 1 {
		t.Fatalf("BuildExamRecords() returned %d records, want 1", len(got))
	}
	if got[0].Type != "Resit" || got[0].QuestionsKey != subjectPrefix+"2023-05-10_Resit_B.pdf" {
		t.Errorf("record = %+v, want later file to win", got[0])
	}
	// the zip label set by the first file is not reset
	if got[0].QuestionsLabel != "Questions (zip)" {
		t.Errorf("QuestionsLabel = %q, want Questions (zip)", got[0].QuestionsLabel)
	}
}
