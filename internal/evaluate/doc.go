// Package evaluate computes quality metrics for model predictions.
//
// It covers three task families: classification (accuracy, precision,
// recall, F1, confusion matrix, ROC AUC), regression (MSE, RMSE, MAE,
// R squared), and text similarity (exact match, word overlap).
// Predictions and ground truth are loaded from JSON, CSV, or
// line-delimited files.
package evaluate
