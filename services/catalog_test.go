package services

import (
	"testing"

	"tentamenbank-api/models"
)

func TestBuildCatalog(t *testing.T) {
	dirs := []models.Directory{
		{Study: "Psychology", Subject: "Statistics"},
		{Study: "Psychology", Subject: "R&amp;D"},
		{Study: "Biology", Subject: "Genetics"},
		{Study: "Biology", Subject: "Ecology"},
	}
	mapping := models.Mapping{
		"Statistics": {ID: "5012STAT", Name: "Statistics I"},
		"R&D":        {ID: "RD01"},
		"Genetics":   {Name: "Human Genetics"},
	}

	got := BuildCatalog("tentamenbank", dirs, mapping)

	want := []models.CatalogEntry{
		{Study: "Psychology", Subject: "Statistics I", CourseID: "5012STAT", URL: "/tentamenbank/Psychology/Statistics"},
		{Study: "Psychology", Subject: "R&amp;D", CourseID: "RD01", URL: "/tentamenbank/Psychology/R&amp;D"},
		{Study: "Biology", Subject: "Human Genetics", CourseID: "", URL: "/tentamenbank/Biology/Genetics"},
		{Study: "Biology", Subject: "Ecology", CourseID: "", URL: "/tentamenbank/Biology/Ecology"},
	}

	if len(got) != len(want) {
		t.Fatalf("BuildCatalog() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestBuildCatalog_NoMapping(t *testing.T) {
	got := BuildCatalog("tentamenbank", []models.Directory{{Study: "A", Subject: "X"}}, nil)
	if len(got) != 1 {
		t.Fatalf("BuildCatalog() returned %d entries, want 1", len(got))
	}
	if got[0].Subject != "X" || got[0].CourseID != "" {
		t.Errorf("entry = %+v, want raw subject and empty course id", got[0])
	}
}
