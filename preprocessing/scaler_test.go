package preprocessing

import (
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

func TestScalerStandard(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{1, 2, 3}))

	scaler := NewScaler(MethodStandard)
	out, err := scaler.FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	// 平均2、標本標準偏差1
	assertFloats(t, out, "x", []float64{-1, 0, 1})
}

func TestScalerMinMax(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{10, 20, 30}))

	out, err := NewScaler(MethodMinMax).FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	assertFloats(t, out, "x", []float64{0, 0.5, 1})
}

func TestScalerMaxAbs(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{10, 20, 30}))

	out, err := NewScaler(MethodMaxAbs).FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	assertFloats(t, out, "x", []float64{-1, 0, 1})
}

func TestScalerReplayUsesFitParamsOnly(t *testing.T) {
	train := mustTable(t, table.NewFloatColumn("x", []float64{0, 10}))

	scaler := NewScaler(MethodMinMax)
	if err := scaler.Fit(train); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	// applyテーブルの範囲は[100,200]だが、fit時の[0,10]で変換される
	test := mustTable(t, table.NewFloatColumn("x", []float64{100, 200}))
	replay := NewScalerFromParams(MethodMinMax, scaler.Params())
	out, err := replay.Transform(test)
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}

	assertFloats(t, out, "x", []float64{10, 20})
}

func TestScalerRoundTrip(t *testing.T) {
	original := []float64{3, 7, 11, 19}

	for _, method := range []ScalingMethod{MethodStandard, MethodMinMax, MethodMaxAbs} {
		t.Run(string(method), func(t *testing.T) {
			tbl := mustTable(t, table.NewFloatColumn("x", original))

			scaler := NewScaler(method)
			scaled, err := scaler.FitTransform(tbl)
			if err != nil {
				t.Fatalf("FitTransform() failed: %v", err)
			}
			restored, err := scaler.InverseTransform(scaled)
			if err != nil {
				t.Fatalf("InverseTransform() failed: %v", err)
			}

			assertFloats(t, restored, "x", original)
		})
	}
}

func TestScalerConstantColumn(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{5, 5, 5}))

	out, err := NewScaler(MethodStandard).FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	// 分母ゼロは1に置き換えられ、ゼロ除算にならない
	assertFloats(t, out, "x", []float64{0, 0, 0})
}

func TestScalerSkipsTargetAndMissing(t *testing.T) {
	tbl := mustTable(t,
		table.NewFloatColumn("x", []float64{0, 10}),
		targetCol(table.NewFloatColumn("y", []float64{0, 10})),
	)

	out, err := NewScaler(MethodMinMax).FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	assertFloats(t, out, "y", []float64{0, 10})
	assertFloats(t, out, "x", []float64{0, 1})
}

func TestScalerUnknownMethod(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{1}))

	err := NewScaler("robust").Fit(tbl)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	var confErr *errors.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
}

func TestScalerNotFitted(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{1}))

	_, err := NewScaler(MethodStandard).Transform(tbl)
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
}
