package regression

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func trainingSet(t *testing.T, rows [][]float64, target []float64) *TrainingSet {
	t.Helper()
	if len(rows) == 0 || len(rows) != len(target) {
		t.Fatalf("bad fixture: %d rows, %d targets", len(rows), len(target))
	}
	width := len(rows[0])
	features := mat.NewDense(len(rows), width, nil)
	for i, row := range rows {
		for j, v := range row {
			features.Set(i, j, v)
		}
	}
	return &TrainingSet{Features: features, Target: target}
}

func TestTrainRecoversLine(t *testing.T) {
	// y = 2 + 3x
	ts := trainingSet(t,
		[][]float64{{0}, {1}, {2}, {3}, {4}, {5}},
		[]float64{2, 5, 8, 11, 14, 17},
	)

	m, err := Train(ts)
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	if math.Abs(m.Intercept()-2) > 0.001 {
		t.Errorf("intercept = %v, want ~2", m.Intercept())
	}
	coefs := m.Coefficients()
	if len(coefs) != 1 {
		t.Fatalf("coefficient count = %d, want 1", len(coefs))
	}
	if math.Abs(coefs[0]-3) > 0.001 {
		t.Errorf("slope = %v, want ~3", coefs[0])
	}
}

func TestTrainRecoversPlane(t *testing.T) {
	// y = 1 + 2a + 3b
	ts := trainingSet(t,
		[][]float64{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {2, 3}},
		[]float64{1, 3, 4, 6, 14},
	)

	m, err := Train(ts)
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	if math.Abs(m.Intercept()-1) > 0.001 {
		t.Errorf("intercept = %v, want ~1", m.Intercept())
	}
	coefs := m.Coefficients()
	if math.Abs(coefs[0]-2) > 0.001 {
		t.Errorf("coef a = %v, want ~2", coefs[0])
	}
	if math.Abs(coefs[1]-3) > 0.001 {
		t.Errorf("coef b = %v, want ~3", coefs[1])
	}
}

func TestTrainWithIndicatorBlock(t *testing.T) {
	// Feature layout: bedrooms, full baths, half baths, then one indicator
	// per condition. The indicator block sums to one in every row, which
	// makes the design collinear with the intercept; the fit must still
	// reproduce exactly linear data.
	rows := [][]float64{
		{2, 1, 0, 1, 0},
		{3, 2, 1, 1, 0},
		{4, 2, 1, 0, 1},
		{2, 1.5, 0, 0, 1},
		{5, 3, 2, 1, 0},
		{3, 1, 1, 0, 1},
	}
	target := make([]float64, len(rows))
	for i, r := range rows {
		// 100000 + 50000*bed + 25000*full + 10000*half + 20000 if second condition
		target[i] = 100000 + 50000*r[0] + 25000*r[1] + 10000*r[2] + 20000*r[4]
	}

	m, err := Train(trainingSet(t, rows, target))
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}
	if m.Width() != 5 {
		t.Errorf("Width() = %d, want 5", m.Width())
	}

	for i, r := range rows {
		got, err := m.Predict(r)
		if err != nil {
			t.Fatalf("Predict(row %d) error: %v", i, err)
		}
		if math.Abs(got-target[i]) > 1 {
			t.Errorf("Predict(row %d) = %v, want %v", i, got, target[i])
		}
	}
}

func TestPredictDeterministic(t *testing.T) {
	ts := trainingSet(t,
		[][]float64{{1, 0}, {2, 1}, {3, 0}, {4, 1}},
		[]float64{10, 25, 30, 45},
	)
	m, err := Train(ts)
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}

	input := []float64{2.5, 1}
	first, err := m.Predict(input)
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	for i := 0; i < 20; i++ {
		again, err := m.Predict(input)
		if err != nil {
			t.Fatalf("Predict error on call %d: %v", i, err)
		}
		if again != first {
			t.Fatalf("Predict not deterministic: %v vs %v", first, again)
		}
	}
}

func TestPredictWidthMismatch(t *testing.T) {
	ts := trainingSet(t,
		[][]float64{{1, 2}, {2, 3}, {3, 5}},
		[]float64{1, 2, 3},
	)
	m, err := Train(ts)
	if err != nil {
		t.Fatalf("Train error: %v", err)
	}

	if _, err := m.Predict([]float64{1}); err == nil {
		t.Error("expected error for narrow feature vector")
	}
	if _, err := m.Predict([]float64{1, 2, 3}); err == nil {
		t.Error("expected error for wide feature vector")
	}
}

func TestTrainRejectsBadInput(t *testing.T) {
	if _, err := Train(nil); err == nil {
		t.Error("expected error for nil training set")
	}
	if _, err := Train(&TrainingSet{}); err == nil {
		t.Error("expected error for empty training set")
	}

	mismatched := &TrainingSet{
		Features: mat.NewDense(2, 1, []float64{1, 2}),
		Target:   []float64{1, 2, 3},
	}
	if _, err := Train(mismatched); err == nil {
		t.Error("expected error for row/target length mismatch")
	}
}
