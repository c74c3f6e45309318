package dataset

import (
	"strings"
	"testing"
)

const sampleCSV = `id,assessedvalue,interior_bedrooms,interior_fullbaths,interior_halfbaths,condition_overallcondition,address
1,500000,3,2,1,Good,10 Main St
2,350000,2,1,0,Average,12 Main St
3,,4,2,1,Good,14 Main St
4,725000,4,2.5,1,Very Good,16 Main St
5,410000,3,1,,Good,18 Main St
6,300000,2,1,0,,20 Main St
`

func TestParseCSV(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	if len(records) != 6 {
		t.Fatalf("parsed %d records, want 6", len(records))
	}

	first := records[0]
	if first.AssessedValue == nil || *first.AssessedValue != 500000 {
		t.Errorf("AssessedValue = %v, want 500000", first.AssessedValue)
	}
	if first.Bedrooms == nil || *first.Bedrooms != 3 {
		t.Errorf("Bedrooms = %v, want 3", first.Bedrooms)
	}
	if first.FullBaths == nil || *first.FullBaths != 2 {
		t.Errorf("FullBaths = %v, want 2", first.FullBaths)
	}
	if first.HalfBaths == nil || *first.HalfBaths != 1 {
		t.Errorf("HalfBaths = %v, want 1", first.HalfBaths)
	}
	if first.Condition == nil || *first.Condition != "Good" {
		t.Errorf("Condition = %v, want Good", first.Condition)
	}

	if records[2].AssessedValue != nil {
		t.Error("blank assessedvalue should parse as missing")
	}
	if records[4].HalfBaths != nil {
		t.Error("blank interior_halfbaths should parse as missing")
	}
	if records[5].Condition != nil {
		t.Error("blank condition should parse as missing")
	}

	// Fractional full baths survive as-is.
	if records[3].FullBaths == nil || *records[3].FullBaths != 2.5 {
		t.Errorf("FullBaths = %v, want 2.5", records[3].FullBaths)
	}
	if records[3].Condition == nil || *records[3].Condition != "Very Good" {
		t.Errorf("Condition = %v, want Very Good", records[3].Condition)
	}
}

func TestParseCSVUnparseableNumberIsMissing(t *testing.T) {
	csv := "assessedvalue,interior_bedrooms,interior_fullbaths,interior_halfbaths,condition_overallcondition\n" +
		"n/a,3,2,1,Good\n"

	records, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("parsed %d records, want 1", len(records))
	}
	if records[0].AssessedValue != nil {
		t.Error("unparseable assessedvalue should be missing, not an error")
	}
}

func TestParseCSVMissingColumn(t *testing.T) {
	csv := "assessedvalue,interior_bedrooms,interior_fullbaths,interior_halfbaths\n500000,3,2,1\n"

	_, err := ParseCSV(strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing required column")
	}
	if !strings.Contains(err.Error(), "condition_overallcondition") {
		t.Errorf("error %q should name the missing column", err)
	}
}

func TestParseCSVEmptyBody(t *testing.T) {
	if _, err := ParseCSV(strings.NewReader("")); err == nil {
		t.Error("expected error for empty response body")
	}
}

func TestParseCSVHeaderOnly(t *testing.T) {
	csv := "assessedvalue,interior_bedrooms,interior_fullbaths,interior_halfbaths,condition_overallcondition\n"
	records, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("parsed %d records, want 0", len(records))
	}
}

func TestParseCSVByteOrderMark(t *testing.T) {
	csv := "\uFEFF" + "assessedvalue,interior_bedrooms,interior_fullbaths,interior_halfbaths,condition_overallcondition\n500000,3,2,1,Good\n"
	records, err := ParseCSV(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ParseCSV should tolerate a BOM header, got: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("parsed %d records, want 1", len(records))
	}
	if records[0].AssessedValue == nil || *records[0].AssessedValue != 500000 {
		t.Errorf("AssessedValue = %v, want 500000", records[0].AssessedValue)
	}
}

func TestDropIncomplete(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}

	complete := DropIncomplete(records)
	if len(complete) != 3 {
		t.Fatalf("complete rows = %d, want 3", len(complete))
	}
	for i, r := range complete {
		if !r.Complete() {
			t.Errorf("row %d should be complete", i)
		}
	}
}

func TestToAssessments(t *testing.T) {
	records, err := ParseCSV(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("ParseCSV error: %v", err)
	}

	rows := ToAssessments(DropIncomplete(records))
	if len(rows) != 3 {
		t.Fatalf("assessments = %d, want 3", len(rows))
	}

	first := rows[0]
	if first.AssessedValue != 500000 {
		t.Errorf("AssessedValue = %v, want 500000", first.AssessedValue)
	}
	if first.InteriorBedrooms != 3 {
		t.Errorf("InteriorBedrooms = %d, want 3", first.InteriorBedrooms)
	}
	if first.InteriorFullBaths != 2 {
		t.Errorf("InteriorFullBaths = %v, want 2", first.InteriorFullBaths)
	}
	if first.InteriorHalfBaths != 1 {
		t.Errorf("InteriorHalfBaths = %d, want 1", first.InteriorHalfBaths)
	}
	if first.ConditionOverallCondition != "Good" {
		t.Errorf("Condition = %q, want Good", first.ConditionOverallCondition)
	}

	// Full baths keep their fraction; bedroom and half bath counts truncate.
	last := rows[2]
	if last.InteriorFullBaths != 2.5 {
		t.Errorf("InteriorFullBaths = %v, want 2.5", last.InteriorFullBaths)
	}
}

func TestToAssessmentsSkipsIncomplete(t *testing.T) {
	records := []Record{
		{AssessedValue: nil},
		{},
	}
	if rows := ToAssessments(records); len(rows) != 0 {
		t.Errorf("assessments = %d, want 0", len(rows))
	}
}
