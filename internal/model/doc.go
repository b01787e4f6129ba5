// Package model defines the core data structures shared across Aion:
// analysis reports, analyzed documents, findings with severity levels,
// and evaluation run results.
package model
