package embed

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"hash/fnv"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aqwel-ai/aion/internal/model"
)

// DefaultDimension is the vector size used when none is configured.
const DefaultDimension = 256

// previewLen caps the stored text preview.
const previewLen = 120

var (
	// ErrEmptyText is returned when there is nothing to embed.
	ErrEmptyText = errors.New("embed: empty text")

	// ErrInvalidDimension is returned for a non-positive vector size.
	ErrInvalidDimension = errors.New("embed: dimension must be positive")

	// ErrDimensionMismatch is returned when comparing vectors of
	// different lengths.
	ErrDimensionMismatch = errors.New("embed: dimension mismatch")
)

// Embedder computes feature-hashed text embeddings.
type Embedder struct {
	dimension int
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithDimension sets the embedding vector size.
func WithDimension(dim int) Option {
	return func(e *Embedder) {
		e.dimension = dim
	}
}

// NewEmbedder creates an Embedder with the given options.
func NewEmbedder(opts ...Option) (*Embedder, error) {
	e := &Embedder{dimension: DefaultDimension}
	for _, opt := range opts {
		opt(e)
	}
	if e.dimension <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimension, e.dimension)
	}
	return e, nil
}

// Dimension returns the configured vector size.
func (e *Embedder) Dimension() int {
	return e.dimension
}

// EmbedText embeds text into an L2-normalized vector. Tokens are
// lowercased words; each token adds +1 or -1 to a hash-selected
// bucket, with the sign taken from the hash so collisions tend to
// cancel instead of accumulate.
func (e *Embedder) EmbedText(text string) (*model.Embedding, error) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, ErrEmptyText
	}

	vec := make([]float64, e.dimension)
	for _, tok := range tokens {
		h := fnv.New64a()
		h.Write([]byte(tok))
		sum := h.Sum64()
		bucket := int(sum % uint64(e.dimension))
		if sum&(1<<63) != 0 {
			vec[bucket] -= 1
		} else {
			vec[bucket] += 1
		}
	}
	normalize(vec)

	digest := sha256.Sum256([]byte(text))
	return &model.Embedding{
		Source:    "inline",
		TextHash:  hex.EncodeToString(digest[:]),
		Preview:   preview(text),
		Vector:    vec,
		Dimension: e.dimension,
		CreatedAt: time.Now(),
	}, nil
}

// EmbedFile reads path and embeds its contents. The embedding's
// source is the file path.
func (e *Embedder) EmbedFile(path string) (*model.Embedding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file for embedding: %w", err)
	}
	emb, err := e.EmbedText(string(data))
	if err != nil {
		return nil, fmt.Errorf("embed %s: %w", path, err)
	}
	emb.Source = path
	return emb, nil
}

// tokenize splits text into lowercase word tokens.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9' || r > 127)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// normalize scales vec to unit L2 norm in place.
func normalize(vec []float64) {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	if sum == 0 {
		return
	}
	norm := math.Sqrt(sum)
	for i := range vec {
		vec[i] /= norm
	}
}

// CosineSimilarity returns the cosine of the angle between two
// vectors. Zero vectors score zero.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Match pairs an embedding with its similarity to a query.
type Match struct {
	Embedding *model.Embedding
	Score     float64
}

// Nearest returns the top-k candidates most similar to query, sorted
// by descending score. Candidates with mismatched dimensions are
// skipped.
func Nearest(query *model.Embedding, candidates []*model.Embedding, k int) []Match {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score, err := CosineSimilarity(query.Vector, c.Vector)
		if err != nil {
			continue
		}
		matches = append(matches, Match{Embedding: c, Score: score})
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Score > matches[j].Score })
	if k > 0 && len(matches) > k {
		matches = matches[:k]
	}
	return matches
}

// preview returns the first previewLen runes of text on a single line.
func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) > previewLen {
		return string(runes[:previewLen])
	}
	return text
}
