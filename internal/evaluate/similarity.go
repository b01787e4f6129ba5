package evaluate

import "strings"

// ExactMatchRatio returns the fraction of prediction strings that
// equal the ground truth exactly after trimming surrounding whitespace.
func ExactMatchRatio(preds, truth []string) (float64, error) {
	if err := validateLabels(preds, truth); err != nil {
		return 0, err
	}
	matches := 0
	for i := range preds {
		if strings.TrimSpace(preds[i]) == strings.TrimSpace(truth[i]) {
			matches++
		}
	}
	return float64(matches) / float64(len(preds)), nil
}

// AvgWordOverlap returns the mean per-pair word overlap, where each
// pair scores the fraction of the ground truth's distinct words that
// appear in the prediction. Comparison is case insensitive. An empty
// ground truth string scores one when the prediction is empty too,
// zero otherwise.
func AvgWordOverlap(preds, truth []string) (float64, error) {
	if err := validateLabels(preds, truth); err != nil {
		return 0, err
	}
	var sum float64
	for i := range preds {
		sum += wordOverlap(preds[i], truth[i])
	}
	return sum / float64(len(preds)), nil
}

func wordOverlap(pred, truth string) float64 {
	truthWords := wordSet(truth)
	predWords := wordSet(pred)
	if len(truthWords) == 0 {
		// Predicting nothing when nothing was expected is a match.
		if len(predWords) == 0 {
			return 1
		}
		return 0
	}
	shared := 0
	for w := range truthWords {
		if predWords[w] {
			shared++
		}
	}
	return float64(shared) / float64(len(truthWords))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}
