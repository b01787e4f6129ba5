package textutil

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// emailRegex matches email addresses in text.
// Standard pattern that catches most valid addresses.
var emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// urlRegex matches http and https URLs.
var urlRegex = regexp.MustCompile(`https?://[^\s<>"')\]]+`)

// sentenceEndRegex matches sentence-terminating punctuation runs.
var sentenceEndRegex = regexp.MustCompile(`[.!?]+(?:\s|$)`)

// CountWords returns the number of whitespace-delimited words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// CountCharacters returns the number of runes in text, including whitespace.
func CountCharacters(text string) int {
	return utf8.RuneCountInString(text)
}

// CountSentences returns the approximate sentence count, based on
// terminating punctuation followed by whitespace or end of input.
func CountSentences(text string) int {
	return len(sentenceEndRegex.FindAllString(text, -1))
}

// ReadingWordsPerMinute is the assumed reading speed for ReadingTime.
const ReadingWordsPerMinute = 200

// ReadingTime estimates how long an average reader needs for text,
// assuming ReadingWordsPerMinute words per minute. The estimate is
// rounded up to a whole second; empty text takes no time.
func ReadingTime(text string) time.Duration {
	words := CountWords(text)
	if words == 0 {
		return 0
	}
	seconds := math.Ceil(float64(words) / ReadingWordsPerMinute * 60)
	return time.Duration(seconds) * time.Second
}

// CountLines returns the number of lines in text.
// A trailing newline does not produce an extra empty line.
func CountLines(text string) int {
	if text == "" {
		return 0
	}
	n := strings.Count(text, "\n")
	if !strings.HasSuffix(text, "\n") {
		n++
	}
	return n
}

// ExtractEmails returns all email addresses found in text, lowercased
// and deduplicated, in order of first appearance.
func ExtractEmails(text string) []string {
	matches := emailRegex.FindAllString(text, -1)
	return dedupLower(matches)
}

// ExtractURLs returns all http(s) URLs found in text, deduplicated in
// order of first appearance. Trailing punctuation is trimmed.
func ExtractURLs(text string) []string {
	matches := urlRegex.FindAllString(text, -1)

	seen := make(map[string]bool, len(matches))
	urls := make([]string, 0, len(matches))
	for _, m := range matches {
		m = strings.TrimRight(m, ".,;:!?")
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		urls = append(urls, m)
	}
	return urls
}

// dedupLower lowercases values and removes duplicates, preserving order.
func dedupLower(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(v)
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Title converts text to title case using English casing rules.
func Title(text string) string {
	return cases.Title(language.English).String(text)
}

// NormalizeWhitespace collapses runs of whitespace into single spaces
// and trims the result.
func NormalizeWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// Truncate shortens text to at most maxLen runes, appending "..." when
// truncation occurs. maxLen values of 3 or less return a bare prefix.
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// WordFrequency counts lowercased word occurrences.
// Words are stripped of surrounding punctuation; empty results are skipped.
func WordFrequency(text string) map[string]int {
	freq := make(map[string]int)
	for _, field := range strings.Fields(text) {
		word := strings.ToLower(strings.TrimFunc(field, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		}))
		if word == "" {
			continue
		}
		freq[word]++
	}
	return freq
}

// WordCount holds a word and its occurrence count.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopWords returns the n most frequent words in text, most frequent first.
// Ties are broken alphabetically for deterministic output.
func TopWords(text string, n int) []WordCount {
	freq := WordFrequency(text)

	counts := make([]WordCount, 0, len(freq))
	for word, count := range freq {
		counts = append(counts, WordCount{Word: word, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	if n < len(counts) {
		counts = counts[:n]
	}
	return counts
}

// UniqueWords returns the number of distinct lowercased words in text.
func UniqueWords(text string) int {
	return len(WordFrequency(text))
}

// IsText reports whether data looks like UTF-8 text rather than binary
// content. A NUL byte or invalid UTF-8 in the sample classifies the data
// as binary.
func IsText(data []byte) bool {
	sample := data
	if len(sample) > 8192 {
		sample = sample[:8192]
	}
	for _, b := range sample {
		if b == 0 {
			return false
		}
	}
	// The sample may end mid-rune; trim up to 3 trailing bytes before
	// validating so a cut multi-byte sequence is not misclassified.
	for i := 0; i < 4 && len(sample) > 0; i++ {
		if utf8.Valid(sample) {
			return true
		}
		sample = sample[:len(sample)-1]
	}
	return false
}
