package model

import "time"

// Embedding is a stored text embedding with its source reference.
type Embedding struct {
	// ID is the database identifier. Zero for unsaved embeddings.
	ID int64 `json:"id,omitempty"`

	// Source identifies where the text came from, usually a file path
	// or "inline" for ad hoc text.
	Source string `json:"source"`

	// TextHash is the SHA-256 hex digest of the embedded text.
	TextHash string `json:"text_hash"`

	// Preview holds the first part of the embedded text for display.
	Preview string `json:"preview"`

	// Vector is the embedding itself, L2 normalized.
	Vector []float64 `json:"vector"`

	// Dimension is the vector length.
	Dimension int `json:"dimension"`

	// CreatedAt is when the embedding was computed.
	CreatedAt time.Time `json:"created_at"`
}
