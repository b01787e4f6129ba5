package evaluate

import (
	"errors"
	"math"
	"testing"
)

const tolerance = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < tolerance
}

func TestAccuracy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		preds []string
		truth []string
		want  float64
	}{
		{
			name:  "all correct",
			preds: []string{"a", "b", "c"},
			truth: []string{"a", "b", "c"},
			want:  1.0,
		},
		{
			name:  "half correct",
			preds: []string{"a", "b", "a", "b"},
			truth: []string{"a", "a", "a", "a"},
			want:  0.5,
		},
		{
			name:  "none correct",
			preds: []string{"x"},
			truth: []string{"y"},
			want:  0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Accuracy(tt.preds, tt.truth)
			if err != nil {
				t.Fatalf("Accuracy() error = %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("Accuracy() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestAccuracyErrors(t *testing.T) {
	t.Parallel()

	if _, err := Accuracy(nil, nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Accuracy(nil, nil) error = %v, want ErrEmptyInput", err)
	}
	if _, err := Accuracy([]string{"a"}, []string{"a", "b"}); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Accuracy() error = %v, want ErrLengthMismatch", err)
	}
}

func TestPrecisionRecallF1(t *testing.T) {
	t.Parallel()

	preds := []string{"1", "1", "0", "1", "0"}
	truth := []string{"1", "0", "0", "1", "1"}

	m, err := PrecisionRecallF1(preds, truth)
	if err != nil {
		t.Fatalf("PrecisionRecallF1() error = %v", err)
	}
	if m.Positive != "1" {
		t.Errorf("Positive = %q, want %q", m.Positive, "1")
	}
	// tp=2, fp=1, fn=1
	if !almostEqual(m.Precision, 2.0/3.0) {
		t.Errorf("Precision = %f, want %f", m.Precision, 2.0/3.0)
	}
	if !almostEqual(m.Recall, 2.0/3.0) {
		t.Errorf("Recall = %f, want %f", m.Recall, 2.0/3.0)
	}
	if !almostEqual(m.F1, 2.0/3.0) {
		t.Errorf("F1 = %f, want %f", m.F1, 2.0/3.0)
	}
}

func TestPrecisionRecallF1NoPositivePredictions(t *testing.T) {
	t.Parallel()

	m, err := PrecisionRecallF1([]string{"0", "0"}, []string{"0", "1"})
	if err != nil {
		t.Fatalf("PrecisionRecallF1() error = %v", err)
	}
	if m.Precision != 0 || m.Recall != 0 || m.F1 != 0 {
		t.Errorf("metrics = %+v, want all zero", m)
	}
}

func TestPrecisionRecallF1NotBinary(t *testing.T) {
	t.Parallel()

	_, err := PrecisionRecallF1([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	if !errors.Is(err, ErrNotBinary) {
		t.Errorf("PrecisionRecallF1() error = %v, want ErrNotBinary", err)
	}
}

func TestMacroF1(t *testing.T) {
	t.Parallel()

	// Perfect predictions give macro F1 of 1 regardless of class count.
	got, err := MacroF1([]string{"a", "b", "c"}, []string{"a", "b", "c"})
	if err != nil {
		t.Fatalf("MacroF1() error = %v", err)
	}
	if !almostEqual(got, 1.0) {
		t.Errorf("MacroF1() = %f, want 1.0", got)
	}
}

func TestConfusion(t *testing.T) {
	t.Parallel()

	preds := []string{"cat", "dog", "cat"}
	truth := []string{"cat", "cat", "dog"}

	cm, err := Confusion(preds, truth)
	if err != nil {
		t.Fatalf("Confusion() error = %v", err)
	}
	if len(cm.Labels) != 2 || cm.Labels[0] != "cat" || cm.Labels[1] != "dog" {
		t.Errorf("Labels = %v, want [cat dog]", cm.Labels)
	}
	if cm.Counts["cat"]["cat"] != 1 {
		t.Errorf("Counts[cat][cat] = %d, want 1", cm.Counts["cat"]["cat"])
	}
	if cm.Counts["cat"]["dog"] != 1 {
		t.Errorf("Counts[cat][dog] = %d, want 1", cm.Counts["cat"]["dog"])
	}
	if cm.Counts["dog"]["cat"] != 1 {
		t.Errorf("Counts[dog][cat] = %d, want 1", cm.Counts["dog"]["cat"])
	}
}

func TestAUCROC(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []float64
		truth  []string
		want   float64
	}{
		{
			name:   "perfect separation",
			scores: []float64{0.9, 0.8, 0.2, 0.1},
			truth:  []string{"1", "1", "0", "0"},
			want:   1.0,
		},
		{
			name:   "inverted separation",
			scores: []float64{0.1, 0.2, 0.8, 0.9},
			truth:  []string{"1", "1", "0", "0"},
			want:   0.0,
		},
		{
			name:   "single class degenerate",
			scores: []float64{0.5, 0.6},
			truth:  []string{"1", "1"},
			want:   0.5,
		},
		{
			name:   "all tied scores",
			scores: []float64{0.5, 0.5, 0.5, 0.5},
			truth:  []string{"1", "0", "1", "0"},
			want:   0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := AUCROC(tt.scores, tt.truth)
			if err != nil {
				t.Fatalf("AUCROC() error = %v", err)
			}
			if !almostEqual(got, tt.want) {
				t.Errorf("AUCROC() = %f, want %f", got, tt.want)
			}
		})
	}
}
