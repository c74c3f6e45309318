package regression

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// svdRCond is the effective-rank cutoff for the least squares solve, scaled
// internally by the largest singular value.
const svdRCond = 1e-12

// Model is an ordinary least squares fit with an intercept term.
type Model struct {
	intercept    float64
	coefficients []float64
}

// Train fits ordinary least squares through a singular value decomposition.
// The design matrix carries an explicit intercept column next to a full
// indicator block, which is exactly collinear, so Train computes the
// minimum-norm solution instead of relying on a full-rank factorization.
func Train(ts *TrainingSet) (*Model, error) {
	if ts == nil || ts.Features == nil || len(ts.Target) == 0 {
		return nil, errors.New("empty training set")
	}
	n, width := ts.Features.Dims()
	if n != len(ts.Target) {
		return nil, fmt.Errorf("feature rows (%d) do not match target length (%d)", n, len(ts.Target))
	}

	design := mat.NewDense(n, width+1, nil)
	for i := 0; i < n; i++ {
		design.Set(i, 0, 1)
		for j := 0; j < width; j++ {
			design.Set(i, j+1, ts.Features.At(i, j))
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(design, mat.SVDThin); !ok {
		return nil, errors.New("svd factorization failed")
	}
	rank := svd.Rank(svdRCond)
	if rank == 0 {
		return nil, errors.New("design matrix has rank zero")
	}

	y := mat.NewVecDense(n, ts.Target)
	var coef mat.VecDense
	svd.SolveVecTo(&coef, y, rank)

	coefficients := make([]float64, width)
	for j := 0; j < width; j++ {
		coefficients[j] = coef.AtVec(j + 1)
	}
	m := &Model{intercept: coef.AtVec(0), coefficients: coefficients}

	if !isFinite(m.intercept) {
		return nil, errors.New("training produced non-finite coefficients")
	}
	for _, c := range coefficients {
		if !isFinite(c) {
			return nil, errors.New("training produced non-finite coefficients")
		}
	}
	return m, nil
}

// Predict evaluates the model on one feature vector in training column order.
func (m *Model) Predict(features []float64) (float64, error) {
	if len(features) != len(m.coefficients) {
		return 0, fmt.Errorf("feature vector has width %d, model expects %d", len(features), len(m.coefficients))
	}
	pred := m.intercept + floats.Dot(features, m.coefficients)
	if !isFinite(pred) {
		return 0, errors.New("prediction is not finite")
	}
	return pred, nil
}

// Width returns the number of feature coefficients, excluding the intercept.
func (m *Model) Width() int { return len(m.coefficients) }

// Intercept returns the fitted intercept term.
func (m *Model) Intercept() float64 { return m.intercept }

// Coefficients returns a copy of the fitted feature coefficients.
func (m *Model) Coefficients() []float64 {
	return append([]float64(nil), m.coefficients...)
}
