package evaluate

import "math"

// validateValues checks that two value slices are non-empty and aligned.
func validateValues(preds, truth []float64) error {
	if len(preds) == 0 || len(truth) == 0 {
		return ErrEmptyInput
	}
	if len(preds) != len(truth) {
		return ErrLengthMismatch
	}
	return nil
}

// MSE returns the mean squared error between predictions and ground truth.
func MSE(preds, truth []float64) (float64, error) {
	if err := validateValues(preds, truth); err != nil {
		return 0, err
	}
	var sum float64
	for i := range preds {
		d := preds[i] - truth[i]
		sum += d * d
	}
	return sum / float64(len(preds)), nil
}

// RMSE returns the root mean squared error.
func RMSE(preds, truth []float64) (float64, error) {
	mse, err := MSE(preds, truth)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(mse), nil
}

// MAE returns the mean absolute error.
func MAE(preds, truth []float64) (float64, error) {
	if err := validateValues(preds, truth); err != nil {
		return 0, err
	}
	var sum float64
	for i := range preds {
		sum += math.Abs(preds[i] - truth[i])
	}
	return sum / float64(len(preds)), nil
}

// R2 returns the coefficient of determination. When the ground truth
// has zero variance the score is defined as zero rather than NaN.
func R2(preds, truth []float64) (float64, error) {
	if err := validateValues(preds, truth); err != nil {
		return 0, err
	}
	var mean float64
	for _, v := range truth {
		mean += v
	}
	mean /= float64(len(truth))

	var ssRes, ssTot float64
	for i := range truth {
		d := truth[i] - preds[i]
		ssRes += d * d
		t := truth[i] - mean
		ssTot += t * t
	}
	if ssTot == 0 {
		return 0, nil
	}
	return 1 - ssRes/ssTot, nil
}
