package scan

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/aqwel-ai/aion/internal/model"
)

// PIIAnalyzer detects personally identifying information in documents:
// phone numbers, IP addresses, and payment card numbers.
//
// Design decision: Phone and card regexes are deliberately strict because:
//  1. Datasets are full of digit runs (IDs, timestamps, measurements)
//  2. A false positive in a report erodes trust in every real finding
//  3. Card candidates get a Luhn check before being reported at all
type PIIAnalyzer struct {
	phoneRegex *regexp.Regexp
	ipRegex    *regexp.Regexp
	cardRegex  *regexp.Regexp
}

// NewPIIAnalyzer creates a new PIIAnalyzer.
func NewPIIAnalyzer() *PIIAnalyzer {
	return &PIIAnalyzer{
		// Requires separators between groups to avoid matching plain digit runs
		phoneRegex: regexp.MustCompile(`(?:\+\d{1,3}[-.\s])?\(?\d{3}\)?[-.\s]\d{3}[-.\s]\d{4}\b`),
		ipRegex:    regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`),
		// 13-16 digits, optionally separated by spaces or dashes
		cardRegex: regexp.MustCompile(`\b\d(?:[ -]?\d){12,15}\b`),
	}
}

// Name returns the analyzer name.
func (a *PIIAnalyzer) Name() string {
	return "pii"
}

// Category returns the analyzer category.
func (a *PIIAnalyzer) Category() string {
	return CategoryIdentity
}

// Analyze searches for PII patterns in all document snapshots.
func (a *PIIAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)
	seen := make(map[string]bool) // type|value -> seen

	add := func(findingType, title, value, location string) {
		key := findingType + "|" + value
		if seen[key] {
			return
		}
		seen[key] = true
		findings = append(findings, model.NewFinding(findingType, title, value, location))
	}

	for _, doc := range data.Documents {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if doc.Snapshot == "" {
			continue
		}

		for _, phone := range a.phoneRegex.FindAllString(doc.Snapshot, maxMatchesPerPattern) {
			add("phone_number", "Phone Number Found", phone, doc.Path)
		}

		for _, ip := range a.ipRegex.FindAllString(doc.Snapshot, -1) {
			if !isReportableIP(ip) {
				continue
			}
			add("ip_address", "IP Address Found", ip, doc.Path)
		}

		for _, card := range a.cardRegex.FindAllString(doc.Snapshot, -1) {
			digits := stripCardSeparators(card)
			if !luhnValid(digits) {
				continue
			}
			add("credit_card_number", "Payment Card Number Found", maskCardNumber(digits), doc.Path)
		}
	}

	return findings, nil
}

// isReportableIP validates octets and filters out addresses that are
// near-certain noise: loopback, unspecified, and version-like strings
// such as 1.2.3.4 appearing as 0.0.0.0.
func isReportableIP(candidate string) bool {
	parts := strings.Split(candidate, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n > 255 {
			return false
		}
	}
	return candidate != "0.0.0.0" && !strings.HasPrefix(candidate, "127.")
}

// stripCardSeparators removes spaces and dashes from a card candidate.
func stripCardSeparators(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "-", "")
}

// luhnValid reports whether the digit string passes the Luhn checksum.
func luhnValid(digits string) bool {
	if len(digits) < 13 || len(digits) > 16 {
		return false
	}
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if d < 0 || d > 9 {
			return false
		}
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// maskCardNumber keeps the last four digits and masks the rest.
func maskCardNumber(digits string) string {
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}

// Ensure PIIAnalyzer implements CheckAnalyzer.
var _ CheckAnalyzer = (*PIIAnalyzer)(nil)
