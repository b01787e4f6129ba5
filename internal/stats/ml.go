package stats

import "math"

// Sigmoid applies the logistic function element-wise.
func Sigmoid(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = 1 / (1 + math.Exp(-v))
	}
	return out
}

// ReLU applies the rectified linear unit element-wise.
func ReLU(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if v > 0 {
			out[i] = v
		}
	}
	return out
}

// Softmax converts logits into a probability distribution.
// The maximum logit is subtracted before exponentiation so large inputs
// do not overflow.
func Softmax(logits []float64) ([]float64, error) {
	if len(logits) == 0 {
		return nil, ErrEmptyInput
	}

	maxLogit := logits[0]
	for _, v := range logits[1:] {
		if v > maxLogit {
			maxLogit = v
		}
	}

	out := make([]float64, len(logits))
	sum := 0.0
	for i, v := range logits {
		out[i] = math.Exp(v - maxLogit)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out, nil
}

// MSELoss returns the mean squared error between predicted and actual values.
func MSELoss(predicted, actual []float64) (float64, error) {
	if len(predicted) == 0 || len(actual) == 0 {
		return 0, ErrEmptyInput
	}
	if len(predicted) != len(actual) {
		return 0, ErrLengthMismatch
	}

	sum := 0.0
	for i := range predicted {
		d := predicted[i] - actual[i]
		sum += d * d
	}
	return sum / float64(len(predicted)), nil
}

// MAELoss returns the mean absolute error between predicted and actual values.
func MAELoss(predicted, actual []float64) (float64, error) {
	if len(predicted) == 0 || len(actual) == 0 {
		return 0, ErrEmptyInput
	}
	if len(predicted) != len(actual) {
		return 0, ErrLengthMismatch
	}

	sum := 0.0
	for i := range predicted {
		sum += math.Abs(predicted[i] - actual[i])
	}
	return sum / float64(len(predicted)), nil
}
