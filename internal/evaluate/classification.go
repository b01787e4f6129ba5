package evaluate

import (
	"sort"
)

// validateLabels checks that two label slices are non-empty and aligned.
func validateLabels(preds, truth []string) error {
	if len(preds) == 0 || len(truth) == 0 {
		return ErrEmptyInput
	}
	if len(preds) != len(truth) {
		return ErrLengthMismatch
	}
	return nil
}

// Accuracy returns the fraction of predictions that match the ground truth.
func Accuracy(preds, truth []string) (float64, error) {
	if err := validateLabels(preds, truth); err != nil {
		return 0, err
	}
	correct := 0
	for i := range preds {
		if preds[i] == truth[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(preds)), nil
}

// distinctLabels returns the sorted set of labels seen across both slices.
func distinctLabels(preds, truth []string) []string {
	seen := make(map[string]bool, len(truth))
	for _, l := range truth {
		seen[l] = true
	}
	for _, l := range preds {
		seen[l] = true
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// BinaryMetrics holds precision, recall, and F1 for a binary task.
type BinaryMetrics struct {
	Positive  string
	Precision float64
	Recall    float64
	F1        float64
}

// PrecisionRecallF1 computes binary precision, recall, and F1 score.
// The positive class is the greater of the two distinct labels, so
// "1" beats "0" and "yes" beats "no".
func PrecisionRecallF1(preds, truth []string) (BinaryMetrics, error) {
	if err := validateLabels(preds, truth); err != nil {
		return BinaryMetrics{}, err
	}
	labels := distinctLabels(preds, truth)
	if len(labels) > 2 {
		return BinaryMetrics{}, ErrNotBinary
	}
	positive := labels[len(labels)-1]

	var tp, fp, fn int
	for i := range preds {
		switch {
		case preds[i] == positive && truth[i] == positive:
			tp++
		case preds[i] == positive && truth[i] != positive:
			fp++
		case preds[i] != positive && truth[i] == positive:
			fn++
		}
	}

	m := BinaryMetrics{Positive: positive}
	if tp+fp > 0 {
		m.Precision = float64(tp) / float64(tp+fp)
	}
	if tp+fn > 0 {
		m.Recall = float64(tp) / float64(tp+fn)
	}
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}
	return m, nil
}

// MacroF1 computes the unweighted mean of per-class F1 scores.
// Each class is treated as the positive class in turn.
func MacroF1(preds, truth []string) (float64, error) {
	if err := validateLabels(preds, truth); err != nil {
		return 0, err
	}
	labels := distinctLabels(preds, truth)

	var sum float64
	for _, label := range labels {
		var tp, fp, fn int
		for i := range preds {
			switch {
			case preds[i] == label && truth[i] == label:
				tp++
			case preds[i] == label && truth[i] != label:
				fp++
			case preds[i] != label && truth[i] == label:
				fn++
			}
		}
		var precision, recall float64
		if tp+fp > 0 {
			precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			recall = float64(tp) / float64(tp+fn)
		}
		if precision+recall > 0 {
			sum += 2 * precision * recall / (precision + recall)
		}
	}
	return sum / float64(len(labels)), nil
}

// ConfusionMatrix holds prediction counts indexed by true label then
// predicted label. Labels are sorted for stable iteration.
type ConfusionMatrix struct {
	Labels []string
	Counts map[string]map[string]int
}

// Confusion builds a confusion matrix from predictions and ground truth.
func Confusion(preds, truth []string) (ConfusionMatrix, error) {
	if err := validateLabels(preds, truth); err != nil {
		return ConfusionMatrix{}, err
	}
	labels := distinctLabels(preds, truth)
	counts := make(map[string]map[string]int, len(labels))
	for _, l := range labels {
		counts[l] = make(map[string]int, len(labels))
	}
	for i := range preds {
		counts[truth[i]][preds[i]]++
	}
	return ConfusionMatrix{Labels: labels, Counts: counts}, nil
}

// AUCROC computes the area under the ROC curve via the trapezoid rule.
// Scores are predicted probabilities for the positive class, which is
// the greater of the distinct truth labels. When the ground truth
// contains only one class the curve is degenerate and 0.5 is returned.
func AUCROC(scores []float64, truth []string) (float64, error) {
	if len(scores) == 0 || len(truth) == 0 {
		return 0, ErrEmptyInput
	}
	if len(scores) != len(truth) {
		return 0, ErrLengthMismatch
	}
	labels := distinctLabels(nil, truth)
	if len(labels) > 2 {
		return 0, ErrNotBinary
	}
	if len(labels) == 1 {
		return 0.5, nil
	}
	positive := labels[len(labels)-1]

	var totalPos, totalNeg int
	for _, l := range truth {
		if l == positive {
			totalPos++
		} else {
			totalNeg++
		}
	}

	type pair struct {
		score float64
		pos   bool
	}
	pairs := make([]pair, len(scores))
	for i, s := range scores {
		pairs[i] = pair{score: s, pos: truth[i] == positive}
	}
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].score > pairs[j].score })

	// Walk thresholds from high to low accumulating trapezoids between
	// consecutive (FPR, TPR) points. Tied scores advance together.
	var tp, fp int
	prevFPR, prevTPR := 0.0, 0.0
	auc := 0.0
	i := 0
	for i < len(pairs) {
		j := i
		for j < len(pairs) && pairs[j].score == pairs[i].score {
			if pairs[j].pos {
				tp++
			} else {
				fp++
			}
			j++
		}
		fpr := float64(fp) / float64(totalNeg)
		tpr := float64(tp) / float64(totalPos)
		auc += (fpr - prevFPR) * (tpr + prevTPR) / 2
		prevFPR, prevTPR = fpr, tpr
		i = j
	}
	return auc, nil
}
