package metrics

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestMSE(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "constant offset",
			yTrue: []float64{1, 2, 3},
			yPred: []float64{2, 3, 4},
			want:  1,
		},
		{
			name:  "mixed errors",
			yTrue: []float64{3, -0.5, 2, 7},
			yPred: []float64{2.5, 0, 2, 8},
			want:  0.375,
		},
		{
			name:    "dimension mismatch",
			yTrue:   []float64{1, 2},
			yPred:   []float64{1},
			wantErr: true,
		},
		{
			name:    "empty vectors",
			yTrue:   []float64{},
			yPred:   []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var yTrue, yPred *mat.VecDense
			if len(tt.yTrue) > 0 {
				yTrue = mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			}
			if len(tt.yPred) > 0 {
				yPred = mat.NewVecDense(len(tt.yPred), tt.yPred)
			}

			got, err := MSE(yTrue, yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("MSE() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("MSE() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{1, 2, 3, 4})
	yPred := mat.NewVecDense(4, []float64{3, 4, 5, 6})

	got, err := RMSE(yTrue, yPred)
	if err != nil {
		t.Fatalf("RMSE() failed: %v", err)
	}
	if math.Abs(got-2) > 1e-9 {
		t.Errorf("RMSE() = %v, want 2", got)
	}
}

func TestMAE(t *testing.T) {
	yTrue := mat.NewVecDense(4, []float64{3, -0.5, 2, 7})
	yPred := mat.NewVecDense(4, []float64{2.5, 0, 2, 8})

	got, err := MAE(yTrue, yPred)
	if err != nil {
		t.Fatalf("MAE() failed: %v", err)
	}
	if math.Abs(got-0.5) > 1e-9 {
		t.Errorf("MAE() = %v, want 0.5", got)
	}
}

func TestR2Score(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{
			name:  "perfect prediction",
			yTrue: []float64{1, 2, 3, 4},
			yPred: []float64{1, 2, 3, 4},
			want:  1,
		},
		{
			name:  "sklearn reference case",
			yTrue: []float64{3, -0.5, 2, 7},
			yPred: []float64{2.5, 0, 2, 8},
			want:  0.9486081370449679,
		},
		{
			name:    "no variance in yTrue",
			yTrue:   []float64{5, 5, 5},
			yPred:   []float64{4, 5, 6},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			yTrue := mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			yPred := mat.NewVecDense(len(tt.yPred), tt.yPred)

			got, err := R2Score(yTrue, yPred)
			if (err != nil) != tt.wantErr {
				t.Errorf("R2Score() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("R2Score() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFirstColumn(t *testing.T) {
	m := mat.NewDense(3, 2, []float64{1, 9, 2, 9, 3, 9})

	v, err := FirstColumn(m)
	if err != nil {
		t.Fatalf("FirstColumn() failed: %v", err)
	}
	for i, want := range []float64{1, 2, 3} {
		if v.AtVec(i) != want {
			t.Errorf("FirstColumn()[%d] = %v, want %v", i, v.AtVec(i), want)
		}
	}

	if _, err := FirstColumn(nil); err == nil {
		t.Error("expected error for nil matrix")
	}
}
