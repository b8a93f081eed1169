package preprocessing

import (
	"math"
	"testing"

	"github.com/YuminosukeSato/tabprep/core/table"
	"github.com/YuminosukeSato/tabprep/pkg/errors"
)

func TestMissingValueFillerMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "odd count", values: []float64{3, math.NaN(), 1, 2}, want: 2},
		{name: "even count averages middles", values: []float64{1, 2, 3, 4, math.NaN()}, want: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := mustTable(t, table.NewFloatColumn("x", tt.values))

			filler := NewMissingValueFiller()
			out, err := filler.FitTransform(tbl)
			if err != nil {
				t.Fatalf("FitTransform() failed: %v", err)
			}

			col, _ := out.Column("x")
			if col.MissingCount() != 0 {
				t.Error("all missing cells should be filled")
			}
			if got := filler.Params().Numerical["x"]; !almostEqual(got, tt.want) {
				t.Errorf("median = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMissingValueFillerMeanPolicy(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{1, 2, math.NaN(), 9}))

	filler := NewMissingValueFiller(WithNumericalPolicy(NumericalMean))
	out, err := filler.FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	assertFloats(t, out, "x", []float64{1, 2, 4, 9})
}

func TestMissingValueFillerModeTieBreak(t *testing.T) {
	// BとAが同数: 初出のBが最頻値となる
	tbl := mustTable(t, table.NewCategoryColumn("c", []string{"B", "A", "B", "A", ""}))

	filler := NewMissingValueFiller()
	out, err := filler.FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	assertLabels(t, out, "c", []string{"B", "A", "B", "A", "B"})
}

func TestMissingValueFillerFixedLabel(t *testing.T) {
	tbl := mustTable(t, table.NewCategoryColumn("c", []string{"A", "", "B"}))

	filler := NewMissingValueFiller(WithCategoricalFill("unknown"))
	out, err := filler.FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	assertLabels(t, out, "c", []string{"A", "unknown", "B"})
}

func TestMissingValueFillerReplayUsesFitParams(t *testing.T) {
	train := mustTable(t, table.NewFloatColumn("x", []float64{1, 2, 3}))

	filler := NewMissingValueFiller()
	if err := filler.Fit(train); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	// applyテーブルの中央値は100だが、fit時の中央値2で埋まる
	test := mustTable(t, table.NewFloatColumn("x", []float64{100, math.NaN(), 100}))
	replay := NewMissingValueFillerFromParams(filler.Params())
	out, err := replay.Transform(test)
	if err != nil {
		t.Fatalf("Transform() failed: %v", err)
	}

	assertFloats(t, out, "x", []float64{100, 2, 100})
}

func TestMissingValueFillerSkipsTarget(t *testing.T) {
	tbl := mustTable(t,
		table.NewFloatColumn("x", []float64{1, math.NaN()}),
		targetCol(table.NewFloatColumn("y", []float64{math.NaN(), 5})),
	)

	out, err := NewMissingValueFiller().FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	y, _ := out.Column("y")
	if y.MissingCount() != 1 {
		t.Error("target column must not be imputed")
	}
	x, _ := out.Column("x")
	if x.MissingCount() != 0 {
		t.Error("feature column should be imputed")
	}
}

func TestMissingValueFillerScopeOptions(t *testing.T) {
	tbl := mustTable(t,
		table.NewFloatColumn("x", []float64{1, math.NaN()}),
		table.NewCategoryColumn("c", []string{"A", ""}),
	)

	out, err := NewMissingValueFiller(WithoutCategorical()).FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}
	x, _ := out.Column("x")
	c, _ := out.Column("c")
	if x.MissingCount() != 0 {
		t.Error("numerical column should be imputed")
	}
	if c.MissingCount() != 1 {
		t.Error("categorical column must stay untouched with WithoutCategorical")
	}
}

func TestMissingValueFillerInvalidPolicy(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{1}))

	err := NewMissingValueFiller(WithNumericalPolicy("mode")).Fit(tbl)
	if err == nil {
		t.Fatal("expected error for unknown numerical policy")
	}
	var confErr *errors.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
}

func TestMissingValueFillerEmptyFeatures(t *testing.T) {
	var warned error
	errors.SetWarningHandler(func(err error) { warned = err })
	defer errors.SetWarningHandler(nil)

	// ターゲット列のみのテーブル: 補完対象がなく、警告付きのno-opになる
	tbl := mustTable(t, targetCol(table.NewFloatColumn("y", []float64{1, math.NaN()})))

	filler := NewMissingValueFiller()
	out, err := filler.FitTransform(tbl)
	if err != nil {
		t.Fatalf("FitTransform() failed: %v", err)
	}

	var empty *errors.EmptyResultWarning
	if !errors.As(warned, &empty) {
		t.Fatalf("expected EmptyResultWarning, got %v", warned)
	}
	y, _ := out.Column("y")
	if y.MissingCount() != 1 {
		t.Error("target-only table must pass through untouched")
	}
	params := filler.Params()
	if len(params.Numerical) != 0 || len(params.Categorical) != 0 {
		t.Error("no imputation params should be recorded")
	}
}

func TestMissingValueFillerDisabledSidesWarn(t *testing.T) {
	var warned error
	errors.SetWarningHandler(func(err error) { warned = err })
	defer errors.SetWarningHandler(nil)

	// カテゴリ列はあるが無効化されている: 有効な対象が残らないので警告
	tbl := mustTable(t, table.NewCategoryColumn("c", []string{"A", ""}))

	if err := NewMissingValueFiller(WithoutCategorical()).Fit(tbl); err != nil {
		t.Fatalf("Fit() failed: %v", err)
	}

	var empty *errors.EmptyResultWarning
	if !errors.As(warned, &empty) {
		t.Fatalf("expected EmptyResultWarning, got %v", warned)
	}
}

func TestMissingValueFillerNotFitted(t *testing.T) {
	tbl := mustTable(t, table.NewFloatColumn("x", []float64{1}))

	_, err := NewMissingValueFiller().Transform(tbl)
	var notFitted *errors.NotFittedError
	if !errors.As(err, &notFitted) {
		t.Fatalf("expected NotFittedError, got %v", err)
	}
}
