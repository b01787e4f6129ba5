package evaluate

import (
	"errors"
	"testing"
)

func TestMSE(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		preds []float64
		truth []float64
		want  float64
	}{
		{
			name:  "perfect predictions",
			preds: []float64{1, 2, 3},
			truth: []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "constant offset",
			preds: []float64{2, 3, 4},
			truth: []float64{1, 2, 3},
			want:  1,
		},
		{
			name:  "mixed errors",
			preds: []float64{1, 2},
			truth: []float64{3, 2},
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := MSE(tt.preds, tt.truth)
			if err != nil {
				t.Fatalf("MSE() error = %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("MSE() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRMSE(t *testing.T) {
	t.Parallel()

	got, err := RMSE([]float64{3, 3}, []float64{1, 1})
	if err != nil {
		t.Fatalf("RMSE() error = %v", err)
	}
	if !almostEqual(got, 2) {
		t.Errorf("RMSE() = %f, want 2", got)
	}
}

func TestMAE(t *testing.T) {
	t.Parallel()

	got, err := MAE([]float64{1, 5}, []float64{3, 3})
	if err != nil {
		t.Fatalf("MAE() error = %v", err)
	}
	if !almostEqual(got, 2) {
		t.Errorf("MAE() = %f, want 2", got)
	}
}

func TestR2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		preds []float64
		truth []float64
		want  float64
	}{
		{
			name:  "perfect fit",
			preds: []float64{1, 2, 3},
			truth: []float64{1, 2, 3},
			want:  1,
		},
		{
			name:  "mean predictor scores zero",
			preds: []float64{2, 2, 2},
			truth: []float64{1, 2, 3},
			want:  0,
		},
		{
			name:  "constant truth defined as zero",
			preds: []float64{1, 2, 3},
			truth: []float64{2, 2, 2},
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := R2(tt.preds, tt.truth)
			if err != nil {
				t.Fatalf("R2() error = %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("R2() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestRegressionErrors(t *testing.T) {
	t.Parallel()

	if _, err := MSE(nil, nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("MSE(nil, nil) error = %v, want ErrEmptyInput", err)
	}
	if _, err := MAE([]float64{1}, []float64{1, 2}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("MAE() error = %v, want ErrLengthMismatch", err)
	}
}
