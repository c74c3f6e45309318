package regression

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"assessment-prediction-api/dataset"
)

// Numeric feature names, in design-matrix order. Indicator columns follow.
const (
	FeatureBedrooms  = "interior_bedrooms"
	FeatureFullBaths = "interior_fullbaths"
	FeatureHalfBaths = "interior_halfbaths"
)

// NumericFeatures lists the numeric design-matrix columns in order.
var NumericFeatures = []string{FeatureBedrooms, FeatureFullBaths, FeatureHalfBaths}

// TrainingSet is the assembled design matrix and target vector.
type TrainingSet struct {
	Features *mat.Dense
	Target   []float64
	Columns  []string
}

// Preprocess turns raw records into a training set. Rows without a target
// value are dropped, missing numeric features are imputed with the column
// median, a missing condition is imputed with the column mode, and the
// condition is one-hot encoded after imputation. Rows that still carry a
// non-finite value are dropped before the matrix is assembled.
func Preprocess(records []dataset.Record) (*TrainingSet, *Encoder, error) {
	rows := make([]dataset.Record, 0, len(records))
	for _, r := range records {
		if r.AssessedValue != nil {
			rows = append(rows, r)
		}
	}
	if len(rows) == 0 {
		return nil, nil, errors.New("no rows with an assessed value")
	}

	bedrooms, err := imputedColumn(rows, FeatureBedrooms, func(r dataset.Record) *float64 { return r.Bedrooms })
	if err != nil {
		return nil, nil, err
	}
	fullBaths, err := imputedColumn(rows, FeatureFullBaths, func(r dataset.Record) *float64 { return r.FullBaths })
	if err != nil {
		return nil, nil, err
	}
	halfBaths, err := imputedColumn(rows, FeatureHalfBaths, func(r dataset.Record) *float64 { return r.HalfBaths })
	if err != nil {
		return nil, nil, err
	}
	conditions, err := imputedConditions(rows)
	if err != nil {
		return nil, nil, err
	}

	encoder := FitEncoder(conditions)

	keep := make([]int, 0, len(rows))
	for i, r := range rows {
		if isFinite(*r.AssessedValue) && isFinite(bedrooms[i]) && isFinite(fullBaths[i]) && isFinite(halfBaths[i]) {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, nil, errors.New("no usable rows after preprocessing")
	}

	width := len(NumericFeatures) + encoder.Width()
	features := mat.NewDense(len(keep), width, nil)
	target := make([]float64, len(keep))
	for out, i := range keep {
		features.Set(out, 0, bedrooms[i])
		features.Set(out, 1, fullBaths[i])
		features.Set(out, 2, halfBaths[i])
		indicators, err := encoder.Transform(conditions[i])
		if err != nil {
			return nil, nil, err
		}
		for j, v := range indicators {
			features.Set(out, len(NumericFeatures)+j, v)
		}
		target[out] = *rows[i].AssessedValue
	}

	columns := append(append([]string{}, NumericFeatures...), encoder.FeatureNames()...)
	return &TrainingSet{Features: features, Target: target, Columns: columns}, encoder, nil
}

// FeatureVector assembles a prediction input in the training column order.
func FeatureVector(bedrooms, fullBaths, halfBaths float64, indicators []float64) []float64 {
	out := make([]float64, 0, len(NumericFeatures)+len(indicators))
	out = append(out, bedrooms, fullBaths, halfBaths)
	return append(out, indicators...)
}

// Median returns the middle value for odd-length input and the midpoint of
// the two central values for even-length input.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	n := len(s)
	if n%2 == 1 {
		return s[n/2]
	}
	return (s[n/2-1] + s[n/2]) / 2
}

// Mode returns the most frequent value. Ties break toward the
// lexicographically smaller value.
func Mode(values []string) string {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best, bestCount := "", -1
	for v, c := range counts {
		if c > bestCount || (c == bestCount && v < best) {
			best, bestCount = v, c
		}
	}
	return best
}

func imputedColumn(rows []dataset.Record, name string, get func(dataset.Record) *float64) ([]float64, error) {
	present := make([]float64, 0, len(rows))
	for _, r := range rows {
		if v := get(r); v != nil {
			present = append(present, *v)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("column %s has no usable values", name)
	}
	med := Median(present)

	out := make([]float64, len(rows))
	for i, r := range rows {
		if v := get(r); v != nil {
			out[i] = *v
		} else {
			out[i] = med
		}
	}
	return out, nil
}

func imputedConditions(rows []dataset.Record) ([]string, error) {
	present := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Condition != nil {
			present = append(present, *r.Condition)
		}
	}
	if len(present) == 0 {
		return nil, fmt.Errorf("column %s has no usable values", conditionColumn)
	}
	mode := Mode(present)

	out := make([]string, len(rows))
	for i, r := range rows {
		if r.Condition != nil {
			out[i] = *r.Condition
		} else {
			out[i] = mode
		}
	}
	return out, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
