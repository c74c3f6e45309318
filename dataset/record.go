// Package dataset downloads and decodes the Cambridge housing-assessment
// CSV export and computes the per-reload summary statistics.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"assessment-prediction-api/models"
)

// Column names in the Cambridge housing-assessment CSV export.
const (
	ColAssessedValue = "assessedvalue"
	ColBedrooms      = "interior_bedrooms"
	ColFullBaths     = "interior_fullbaths"
	ColHalfBaths     = "interior_halfbaths"
	ColCondition     = "condition_overallcondition"
)

var requiredColumns = []string{
	ColAssessedValue,
	ColBedrooms,
	ColFullBaths,
	ColHalfBaths,
	ColCondition,
}

// Record is one raw CSV row reduced to the modeling columns. A nil field
// was empty or unparseable in the export.
type Record struct {
	AssessedValue *float64
	Bedrooms      *float64
	FullBaths     *float64
	HalfBaths     *float64
	Condition     *string
}

// Complete reports whether every modeling column is present.
func (r Record) Complete() bool {
	return r.AssessedValue != nil &&
		r.Bedrooms != nil &&
		r.FullBaths != nil &&
		r.HalfBaths != nil &&
		r.Condition != nil
}

// ParseCSV decodes the dataset export, keeping only the modeling columns.
// Rows may carry any number of extra columns; only the header names above
// are required.
func ParseCSV(rd io.Reader) ([]Record, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty dataset response")
	}
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		idx[name] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("dataset is missing column %q", col)
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		records = append(records, Record{
			AssessedValue: floatField(row, idx[ColAssessedValue]),
			Bedrooms:      floatField(row, idx[ColBedrooms]),
			FullBaths:     floatField(row, idx[ColFullBaths]),
			HalfBaths:     floatField(row, idx[ColHalfBaths]),
			Condition:     stringField(row, idx[ColCondition]),
		})
	}
	return records, nil
}

// DropIncomplete discards rows with any missing modeling column.
func DropIncomplete(records []Record) []Record {
	complete := make([]Record, 0, len(records))
	for _, r := range records {
		if r.Complete() {
			complete = append(complete, r)
		}
	}
	return complete
}

// ToAssessments converts records into persistable assessments. Incomplete
// records are skipped.
func ToAssessments(records []Record) []models.Assessment {
	rows := make([]models.Assessment, 0, len(records))
	for _, r := range records {
		if !r.Complete() {
			continue
		}
		rows = append(rows, models.Assessment{
			AssessedValue:             *r.AssessedValue,
			InteriorBedrooms:          int(*r.Bedrooms),
			InteriorFullBaths:         *r.FullBaths,
			InteriorHalfBaths:         int(*r.HalfBaths),
			ConditionOverallCondition: *r.Condition,
		})
	}
	return rows
}

func floatField(row []string, i int) *float64 {
	if i >= len(row) {
		return nil
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func stringField(row []string, i int) *string {
	if i >= len(row) {
		return nil
	}
	s := strings.TrimSpace(row[i])
	if s == "" {
		return nil
	}
	return &s
}
