package evaluate

import (
	"fmt"
	"strings"

	"github.com/aqwel-ai/aion/internal/model"
)

// Run loads predictions and ground truth from the given files, computes
// the metrics for task, and returns an evaluation run ready for
// archiving. An empty task is auto-detected from the data.
func Run(task, predsFile, truthFile string) (*model.EvalRun, error) {
	if task == "" {
		detected, err := detectTask(truthFile)
		if err != nil {
			return nil, err
		}
		task = detected
	}

	var (
		metrics map[string]float64
		samples int
		err     error
	)
	switch task {
	case model.TaskClassification:
		metrics, samples, err = runClassification(predsFile, truthFile)
	case model.TaskRegression:
		metrics, samples, err = runRegression(predsFile, truthFile)
	case model.TaskTextSimilarity:
		metrics, samples, err = runTextSimilarity(predsFile, truthFile)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTask, task)
	}
	if err != nil {
		return nil, err
	}

	run := model.NewEvalRun(task, predsFile, truthFile)
	run.SampleCount = samples
	run.Metrics = metrics
	return run, nil
}

// detectTask guesses the evaluation task from the ground truth file.
// Numeric data means regression. Labels containing spaces look like
// free text, so they get similarity metrics; short atomic labels get
// classification metrics.
func detectTask(truthFile string) (string, error) {
	if _, err := LoadValues(truthFile); err == nil {
		return model.TaskRegression, nil
	}
	labels, err := LoadLabels(truthFile)
	if err != nil {
		return "", err
	}
	if len(labels) == 0 {
		return "", ErrEmptyInput
	}
	for _, l := range labels {
		if strings.ContainsRune(strings.TrimSpace(l), ' ') {
			return model.TaskTextSimilarity, nil
		}
	}
	return model.TaskClassification, nil
}

func runClassification(predsFile, truthFile string) (map[string]float64, int, error) {
	preds, err := LoadLabels(predsFile)
	if err != nil {
		return nil, 0, err
	}
	truth, err := LoadLabels(truthFile)
	if err != nil {
		return nil, 0, err
	}

	acc, err := Accuracy(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	metrics := map[string]float64{"accuracy": acc}

	// Binary tasks get precision, recall, and F1 on top of accuracy.
	if bm, err := PrecisionRecallF1(preds, truth); err == nil {
		metrics["precision"] = bm.Precision
		metrics["recall"] = bm.Recall
		metrics["f1"] = bm.F1
	} else if macro, err := MacroF1(preds, truth); err == nil {
		metrics["macro_f1"] = macro
	}
	return metrics, len(preds), nil
}

func runRegression(predsFile, truthFile string) (map[string]float64, int, error) {
	preds, err := LoadValues(predsFile)
	if err != nil {
		return nil, 0, err
	}
	truth, err := LoadValues(truthFile)
	if err != nil {
		return nil, 0, err
	}

	mse, err := MSE(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	rmse, err := RMSE(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	mae, err := MAE(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	r2, err := R2(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	return map[string]float64{
		"mse":  mse,
		"rmse": rmse,
		"mae":  mae,
		"r2":   r2,
	}, len(preds), nil
}

func runTextSimilarity(predsFile, truthFile string) (map[string]float64, int, error) {
	preds, err := LoadLabels(predsFile)
	if err != nil {
		return nil, 0, err
	}
	truth, err := LoadLabels(truthFile)
	if err != nil {
		return nil, 0, err
	}

	exact, err := ExactMatchRatio(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	overlap, err := AvgWordOverlap(preds, truth)
	if err != nil {
		return nil, 0, err
	}
	return map[string]float64{
		"exact_match":  exact,
		"word_overlap": overlap,
	}, len(preds), nil
}
