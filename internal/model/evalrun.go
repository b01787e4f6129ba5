package model

import "time"

// Evaluation task identifiers.
const (
	// TaskClassification labels evaluations of discrete predictions.
	TaskClassification = "classification"
	// TaskRegression labels evaluations of numeric predictions.
	TaskRegression = "regression"
	// TaskTextSimilarity labels evaluations comparing text outputs.
	TaskTextSimilarity = "text_similarity"
)

// EvalRun records a single evaluation of predictions against ground truth.
// Runs are persisted so metric trends can be compared across experiments.
type EvalRun struct {
	// ID is the database identifier. Zero for unsaved runs.
	ID int64 `json:"id,omitempty"`

	// Task is the evaluation kind: classification, regression, or
	// text_similarity.
	Task string `json:"task"`

	// PredsFile is the predictions input path.
	PredsFile string `json:"preds_file"`

	// TruthFile is the ground-truth input path.
	TruthFile string `json:"truth_file"`

	// SampleCount is the number of evaluated prediction pairs.
	SampleCount int `json:"sample_count"`

	// Metrics maps metric names (accuracy, mse, r2, ...) to values.
	Metrics map[string]float64 `json:"metrics"`

	// CreatedAt is when the evaluation was performed.
	CreatedAt time.Time `json:"created_at"`
}

// NewEvalRun creates an EvalRun stamped with the current time.
func NewEvalRun(task, predsFile, truthFile string) *EvalRun {
	return &EvalRun{
		Task:      task,
		PredsFile: predsFile,
		TruthFile: truthFile,
		Metrics:   make(map[string]float64),
		CreatedAt: time.Now(),
	}
}
