package dataset

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"assessment-prediction-api/models"
)

// topConditionCount limits how many condition labels the summary reports.
const topConditionCount = 5

// Summary describes the dataset snapshot a reload trained on.
type Summary struct {
	TotalAssessments         int            `json:"total_assessments"`
	AverageAssessedValue     float64        `json:"average_assessedvalue"`
	MinAssessedValue         float64        `json:"min_assessedvalue"`
	MaxAssessedValue         float64        `json:"max_assessedvalue"`
	AverageInteriorBedrooms  float64        `json:"average_interior_bedrooms"`
	AverageInteriorFullBaths float64        `json:"average_interior_fullbaths"`
	TopConditions            map[string]int `json:"top_condition_overallconditions"`
}

// Summarize computes dataset statistics over the complete rows of a reload.
func Summarize(rows []models.Assessment) Summary {
	if len(rows) == 0 {
		return Summary{TopConditions: map[string]int{}}
	}

	values := make([]float64, len(rows))
	bedrooms := make([]float64, len(rows))
	fullBaths := make([]float64, len(rows))
	counts := make(map[string]int)
	for i, row := range rows {
		values[i] = row.AssessedValue
		bedrooms[i] = float64(row.InteriorBedrooms)
		fullBaths[i] = row.InteriorFullBaths
		counts[row.ConditionOverallCondition]++
	}

	return Summary{
		TotalAssessments:         len(rows),
		AverageAssessedValue:     stat.Mean(values, nil),
		MinAssessedValue:         floats.Min(values),
		MaxAssessedValue:         floats.Max(values),
		AverageInteriorBedrooms:  stat.Mean(bedrooms, nil),
		AverageInteriorFullBaths: stat.Mean(fullBaths, nil),
		TopConditions:            topConditions(counts, topConditionCount),
	}
}

// topConditions keeps the n most frequent labels. Ties break toward the
// lexicographically smaller label.
func topConditions(counts map[string]int, n int) map[string]int {
	type labelCount struct {
		name  string
		count int
	}
	ranked := make([]labelCount, 0, len(counts))
	for name, count := range counts {
		ranked = append(ranked, labelCount{name, count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].name < ranked[j].name
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	top := make(map[string]int, len(ranked))
	for _, lc := range ranked {
		top[lc.name] = lc.count
	}
	return top
}
