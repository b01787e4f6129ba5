package textutil

import (
	"strings"

	"golang.org/x/text/language"
)

// stopwords maps a language tag to its most frequent function words.
// Detection counts how many of a text's words appear in each set; the
// highest hit ratio wins. Short high-frequency words distinguish
// languages well even on small samples.
var stopwords = map[language.Tag][]string{
	language.English: {
		"the", "and", "is", "in", "to", "of", "a", "that", "it", "for",
		"on", "with", "as", "was", "this", "are", "be", "at", "have", "not",
	},
	language.Spanish: {
		"el", "la", "de", "que", "y", "en", "los", "del", "se", "las",
		"por", "un", "para", "con", "una", "es", "no", "al", "lo", "como",
	},
	language.French: {
		"le", "de", "la", "et", "les", "des", "est", "un", "une", "du",
		"que", "dans", "pour", "qui", "sur", "pas", "au", "ce", "il", "ne",
	},
	language.German: {
		"der", "die", "und", "das", "ist", "von", "den", "ein", "eine", "mit",
		"im", "des", "auf", "nicht", "als", "auch", "es", "sich", "dem", "zu",
	},
	language.Italian: {
		"il", "di", "che", "la", "per", "un", "in", "una", "sono", "con",
		"non", "le", "si", "del", "della", "gli", "nel", "da", "come", "anche",
	},
	language.Portuguese: {
		"de", "que", "o", "a", "do", "da", "em", "um", "para", "com",
		"uma", "os", "no", "na", "por", "mais", "as", "dos", "como", "mas",
	},
	language.Dutch: {
		"de", "het", "een", "van", "en", "in", "is", "dat", "op", "te",
		"zijn", "voor", "met", "die", "niet", "aan", "er", "om", "ook", "maar",
	},
}

// minDetectionWords is the minimum word count for a meaningful detection.
const minDetectionWords = 3

// DetectLanguage guesses the natural language of text from stopword
// frequency. It returns the best-matching tag and a confidence in
// [0, 1]. When the text is too short or no stopwords match, it
// returns language.Und with zero confidence.
func DetectLanguage(text string) (language.Tag, float64) {
	words := strings.Fields(strings.ToLower(text))
	if len(words) < minDetectionWords {
		return language.Und, 0
	}

	scores := make(map[language.Tag]int, len(stopwords))
	for tag, list := range stopwords {
		set := make(map[string]bool, len(list))
		for _, w := range list {
			set[w] = true
		}
		for _, w := range words {
			if set[strings.Trim(w, ".,;:!?\"'()[]")] {
				scores[tag]++
			}
		}
	}

	best := language.Und
	bestScore := 0
	for tag, score := range scores {
		if score > bestScore || (score == bestScore && bestScore > 0 && tagBefore(tag, best)) {
			best = tag
			bestScore = score
		}
	}
	if bestScore == 0 {
		return language.Und, 0
	}

	confidence := float64(bestScore) / float64(len(words))
	if confidence > 1 {
		confidence = 1
	}
	return best, confidence
}

// tagBefore orders tags alphabetically so ties resolve deterministically.
func tagBefore(a, b language.Tag) bool {
	return a.String() < b.String()
}
