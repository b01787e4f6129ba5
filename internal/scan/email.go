package scan

import (
	"context"
	"regexp"
	"strings"

	"github.com/aqwel-ai/aion/internal/model"
)

// EmailAnalyzer detects email addresses in document content.
// Email addresses in datasets and source files are a common accidental
// disclosure and often identify real individuals.
//
// Design decision: We implement a separate analyzer for emails rather
// than folding them into the PII pattern table because:
//  1. Email detection has unique regex requirements
//  2. Emails have special handling needs (deduplication, domain analysis)
//  3. Severity varies based on the address's domain
type EmailAnalyzer struct {
	// emailRegex matches email addresses in text.
	emailRegex *regexp.Regexp
}

// NewEmailAnalyzer creates a new EmailAnalyzer.
func NewEmailAnalyzer() *EmailAnalyzer {
	return &EmailAnalyzer{
		// Standard email regex that catches most valid addresses
		emailRegex: regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`),
	}
}

// Name returns the analyzer name.
func (a *EmailAnalyzer) Name() string {
	return "email"
}

// Category returns the analyzer category.
func (a *EmailAnalyzer) Category() string {
	return CategoryIdentity
}

// Analyze searches for email addresses in all document snapshots.
func (a *EmailAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)
	seenEmails := make(map[string]bool)

	for _, doc := range data.Documents {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if doc.Snapshot == "" {
			continue
		}

		emails := a.emailRegex.FindAllString(doc.Snapshot, -1)

		for _, email := range emails {
			email = strings.ToLower(email)

			// Skip already seen
			if seenEmails[email] {
				continue
			}
			seenEmails[email] = true

			f := model.NewFinding("email_address", "Email Address Found", email, doc.Path)
			f.Description = "An email address was found in file content. It may identify an individual or organization."
			f.Severity = a.assessEmailSeverity(email)
			f.SeverityText = f.Severity.String()
			findings = append(findings, f)
		}
	}

	return findings, nil
}

// assessEmailSeverity determines the severity of an email finding.
//
// Design decision: We rate email severity based on domain because:
//  1. Personal domains (john@johndoe.com) are highly identifying
//  2. Corporate emails reveal employer information
//  3. Free email services (gmail, protonmail) are less specific
func (a *EmailAnalyzer) assessEmailSeverity(email string) model.Severity {
	// Extract domain
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return model.SeverityMedium
	}
	domain := strings.ToLower(parts[1])

	// Placeholder domains show up constantly in docs and test fixtures
	exampleDomains := []string{
		"example.com", "example.org", "example.net", "test.com", "localhost",
	}
	for _, d := range exampleDomains {
		if domain == d {
			return model.SeverityInfo
		}
	}

	// Free email providers are less identifying but still noteworthy
	freeProviders := []string{
		"gmail.com", "yahoo.com", "hotmail.com", "outlook.com",
		"protonmail.com", "proton.me", "tutanota.com", "tutamail.com",
		"aol.com", "icloud.com", "mail.com", "yandex.com",
	}

	for _, provider := range freeProviders {
		if domain == provider {
			return model.SeverityMedium
		}
	}

	// Corporate or personal domains are more identifying
	return model.SeverityHigh
}

// Ensure EmailAnalyzer implements CheckAnalyzer.
var _ CheckAnalyzer = (*EmailAnalyzer)(nil)
