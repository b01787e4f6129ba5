// Package stats provides the numeric toolkit used across Aion:
// descriptive statistics, normalization, correlation, small dense-matrix
// helpers, distance measures, and the activation and loss functions used
// when inspecting model outputs.
package stats
