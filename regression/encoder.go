// Package regression implements the preprocessing pipeline and the ordinary
// least squares model behind the assessment predictor.
package regression

import (
	"fmt"
	"sort"
)

// conditionColumn names the encoded input column in feature names and errors.
const conditionColumn = "condition_overallcondition"

// Encoder one-hot encodes the condition label. Categories are the sorted
// unique values seen at fit time; transforming an unseen label is an error.
type Encoder struct {
	categories []string
	index      map[string]int
}

// FitEncoder learns the category set from the training column.
func FitEncoder(values []string) *Encoder {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	cats := make([]string, 0, len(seen))
	for v := range seen {
		cats = append(cats, v)
	}
	sort.Strings(cats)

	idx := make(map[string]int, len(cats))
	for i, c := range cats {
		idx[c] = i
	}
	return &Encoder{categories: cats, index: idx}
}

// Transform returns the indicator vector for value, one slot per category.
func (e *Encoder) Transform(value string) ([]float64, error) {
	i, ok := e.index[value]
	if !ok {
		return nil, fmt.Errorf("found unknown category %q in column %s during transform", value, conditionColumn)
	}
	out := make([]float64, len(e.categories))
	out[i] = 1
	return out, nil
}

// Categories returns the fitted category set in encoding order.
func (e *Encoder) Categories() []string {
	return append([]string(nil), e.categories...)
}

// FeatureNames returns one design-matrix column name per category.
func (e *Encoder) FeatureNames() []string {
	names := make([]string, len(e.categories))
	for i, c := range e.categories {
		names[i] = conditionColumn + "_" + c
	}
	return names
}

// Width returns the number of indicator columns the encoder emits.
func (e *Encoder) Width() int { return len(e.categories) }
