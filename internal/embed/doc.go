// Package embed turns text into fixed-size numeric vectors.
//
// The embedder uses FNV-1a feature hashing: each token is hashed into
// one of the vector's buckets with a hash-derived sign, and the result
// is L2 normalized. The vectors are deterministic, need no model
// weights, and support cosine similarity search over small corpora.
package embed
