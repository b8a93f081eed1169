package benchmark

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// stubClassifier は固定の予測を返すテスト用分類器
type stubClassifier struct {
	fitted bool
	preds  []float64
	probas []float64
}

func (s *stubClassifier) Fit(X, y mat.Matrix) error {
	s.fitted = true
	return nil
}

func (s *stubClassifier) Predict(X mat.Matrix) (mat.Matrix, error) {
	return mat.NewDense(len(s.preds), 1, s.preds), nil
}

func (s *stubClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	m := mat.NewDense(len(s.probas), 2, nil)
	for i, p := range s.probas {
		m.Set(i, 0, 1-p)
		m.Set(i, 1, p)
	}
	return m, nil
}

// stubRegressor は固定の予測を返すテスト用回帰器
type stubRegressor struct {
	preds []float64
}

func (s *stubRegressor) Fit(X, y mat.Matrix) error { return nil }

func (s *stubRegressor) Predict(X mat.Matrix) (mat.Matrix, error) {
	return mat.NewDense(len(s.preds), 1, s.preds), nil
}

func TestEvaluateClassifiersSortsByAccuracy(t *testing.T) {
	x := mat.NewDense(4, 1, []float64{1, 2, 3, 4})
	y := mat.NewDense(4, 1, []float64{0, 0, 1, 1})

	good := &stubClassifier{
		preds:  []float64{0, 0, 1, 1},
		probas: []float64{0.1, 0.2, 0.8, 0.9},
	}
	bad := &stubClassifier{
		preds:  []float64{1, 1, 0, 0},
		probas: []float64{0.9, 0.8, 0.2, 0.1},
	}

	results, err := EvaluateClassifiers(
		[]ClassifierCandidate{
			{Name: "bad", Model: bad},
			{Name: "good", Model: good},
		},
		x, y, x, y,
	)
	if err != nil {
		t.Fatalf("EvaluateClassifiers() failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Name != "good" {
		t.Errorf("best classifier = %q, want 'good'", results[0].Name)
	}
	if math.Abs(results[0].Accuracy-1) > 1e-9 {
		t.Errorf("accuracy = %v, want 1", results[0].Accuracy)
	}
	if math.Abs(results[0].ROCAUC-1) > 1e-9 {
		t.Errorf("ROC-AUC = %v, want 1", results[0].ROCAUC)
	}
	if !good.fitted || !bad.fitted {
		t.Error("all candidates must be fitted")
	}
}

func TestEvaluateRegressorsSortsByMSE(t *testing.T) {
	x := mat.NewDense(3, 1, []float64{1, 2, 3})
	y := mat.NewDense(3, 1, []float64{1, 2, 3})

	results, err := EvaluateRegressors(
		[]RegressorCandidate{
			{Name: "offset", Model: &stubRegressor{preds: []float64{2, 3, 4}}},
			{Name: "exact", Model: &stubRegressor{preds: []float64{1, 2, 3}}},
		},
		x, y, x, y,
	)
	if err != nil {
		t.Fatalf("EvaluateRegressors() failed: %v", err)
	}

	if results[0].Name != "exact" {
		t.Errorf("best regressor = %q, want 'exact'", results[0].Name)
	}
	if math.Abs(results[0].MSE) > 1e-9 {
		t.Errorf("MSE = %v, want 0", results[0].MSE)
	}
	if math.Abs(results[1].MSE-1) > 1e-9 {
		t.Errorf("MSE = %v, want 1", results[1].MSE)
	}
	if math.Abs(results[0].R2-1) > 1e-9 {
		t.Errorf("R2 = %v, want 1", results[0].R2)
	}
}

func TestEvaluateRejectsEmptyRoster(t *testing.T) {
	x := mat.NewDense(1, 1, []float64{1})

	if _, err := EvaluateClassifiers(nil, x, x, x, x); err == nil {
		t.Error("expected error for empty classifier roster")
	}
	if _, err := EvaluateRegressors(nil, x, x, x, x); err == nil {
		t.Error("expected error for empty regressor roster")
	}
}

func TestHistory(t *testing.T) {
	h := &History{}
	h.RecordWithAccuracy(1.0, 1.2, 0.6, 0.55)
	h.RecordWithAccuracy(0.5, 0.7, 0.8, 0.75)
	h.RecordWithAccuracy(0.3, 0.9, 0.9, 0.7)

	if h.Epochs() != 3 {
		t.Fatalf("Epochs() = %d, want 3", h.Epochs())
	}

	loss, valLoss, err := h.Final()
	if err != nil {
		t.Fatalf("Final() failed: %v", err)
	}
	if loss != 0.3 || valLoss != 0.9 {
		t.Errorf("Final() = (%v, %v), want (0.3, 0.9)", loss, valLoss)
	}

	best, err := h.BestEpoch()
	if err != nil {
		t.Fatalf("BestEpoch() failed: %v", err)
	}
	if best != 1 {
		t.Errorf("BestEpoch() = %d, want 1", best)
	}

	if _, _, err := (&History{}).Final(); err == nil {
		t.Error("expected error for empty history")
	}
}
