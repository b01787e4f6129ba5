package scan

import (
	"context"
	"regexp"

	"github.com/aqwel-ai/aion/internal/model"
)

// maxMatchesPerPattern caps how many matches per pattern and document are
// reported. A generated file full of keys would otherwise flood the report.
const maxMatchesPerPattern = 5

// SecretAnalyzer detects credentials, API keys, and tokens in documents.
//
// This analyzer checks for:
//   - Private key blocks (PEM)
//   - Cloud provider keys (AWS, GCP)
//   - AI platform tokens (OpenAI, Hugging Face)
//   - Developer platform tokens (GitHub, Slack)
//   - Generic key/password assignments and connection strings
type SecretAnalyzer struct {
	// patterns contains compiled regex patterns for detection
	patterns []*secretPattern
}

// secretPattern holds a pattern and its metadata.
type secretPattern struct {
	name        string
	title       string
	description string
	pattern     *regexp.Regexp
	redact      bool
}

// NewSecretAnalyzer creates a new SecretAnalyzer.
func NewSecretAnalyzer() *SecretAnalyzer {
	return &SecretAnalyzer{
		patterns: []*secretPattern{
			// Key material
			{
				name:        "private_key_block",
				title:       "Private Key Block Found",
				description: "A PEM private key block is embedded in the file.",
				pattern:     regexp.MustCompile(`-----BEGIN (?:RSA |EC |DSA |OPENSSH |PGP )?PRIVATE KEY(?: BLOCK)?-----`),
			},

			// Cloud providers
			{
				name:        "aws_access_key_id",
				title:       "AWS Access Key ID Found",
				description: "A string matching the AWS access key ID format was found.",
				pattern:     regexp.MustCompile(`\b(?:AKIA|ASIA)[0-9A-Z]{16}\b`),
			},
			{
				name:        "aws_secret_access_key",
				title:       "AWS Secret Access Key Found",
				description: "A value assigned to an AWS secret access key identifier was found.",
				pattern:     regexp.MustCompile(`(?i)aws_secret_access_key\s*[:=]\s*["']?[A-Za-z0-9/+=]{40}`),
				redact:      true,
			},
			{
				name:        "gcp_service_account_key",
				title:       "GCP Service Account Key Found",
				description: "The file looks like a Google Cloud service account key (JSON with type service_account).",
				pattern:     regexp.MustCompile(`"type"\s*:\s*"service_account"`),
			},

			// AI platforms
			{
				name:        "openai_api_key",
				title:       "OpenAI API Key Found",
				description: "A string matching the OpenAI API key format was found.",
				pattern:     regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{20,}`),
				redact:      true,
			},
			{
				name:        "huggingface_token",
				title:       "Hugging Face Token Found",
				description: "A string matching the Hugging Face access token format was found.",
				pattern:     regexp.MustCompile(`\bhf_[A-Za-z0-9]{30,}`),
				redact:      true,
			},

			// Developer platforms
			{
				name:        "github_token",
				title:       "GitHub Token Found",
				description: "A string matching a GitHub personal access token format was found.",
				pattern:     regexp.MustCompile(`\b(?:gh[pousr]_[A-Za-z0-9]{36,}|github_pat_[A-Za-z0-9_]{22,})`),
				redact:      true,
			},
			{
				name:        "slack_token",
				title:       "Slack Token Found",
				description: "A string matching the Slack token format was found.",
				pattern:     regexp.MustCompile(`\bxox[baprs]-[A-Za-z0-9-]{10,}`),
				redact:      true,
			},

			// Generic credentials
			{
				name:        "jwt_token",
				title:       "JWT Found",
				description: "A JSON Web Token was found. Its claims may still be valid for authentication.",
				pattern:     regexp.MustCompile(`\beyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]+`),
				redact:      true,
			},
			{
				name:        "generic_api_key",
				title:       "API Key Assignment Found",
				description: "A key-shaped value is assigned to an API key identifier.",
				pattern:     regexp.MustCompile(`(?i)(?:api[_-]?key|apikey|secret[_-]?key|auth[_-]?token|access[_-]?token)["']?\s*[:=]\s*["']?[A-Za-z0-9_\-]{16,}`),
				redact:      true,
			},
			{
				name:        "password_assignment",
				title:       "Hardcoded Password Found",
				description: "A literal password is assigned in source or configuration.",
				pattern:     regexp.MustCompile(`(?i)(?:password|passwd|pwd)\s*[:=]\s*["'][^"'\s]{4,}["']`),
				redact:      true,
			},
			{
				name:        "connection_string",
				title:       "Connection String With Credentials Found",
				description: "A database connection URI with embedded credentials was found.",
				pattern:     regexp.MustCompile(`(?i)\b(?:postgres(?:ql)?|mysql|mongodb(?:\+srv)?|redis|amqp)://[^\s@]+@[^\s/]+`),
				redact:      true,
			},
		},
	}
}

// Name returns the analyzer name.
func (a *SecretAnalyzer) Name() string {
	return "secrets"
}

// Category returns the analyzer category.
func (a *SecretAnalyzer) Category() string {
	return CategorySecrets
}

// Analyze searches for credential patterns in all document snapshots.
func (a *SecretAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	findings := make([]model.Finding, 0)
	found := make(map[string]bool) // type|value -> seen

	for _, doc := range data.Documents {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		if doc.Snapshot == "" {
			continue
		}

		for _, p := range a.patterns {
			matches := p.pattern.FindAllString(doc.Snapshot, maxMatchesPerPattern)
			for _, match := range matches {
				value := match
				if p.redact {
					value = redactValue(value)
				}

				key := p.name + "|" + value
				if found[key] {
					continue
				}
				found[key] = true

				f := model.NewFinding(p.name, p.title, value, doc.Path)
				f.Description = p.description
				findings = append(findings, f)
			}
		}
	}

	return findings, nil
}

// redactValue keeps a short identifying prefix and masks the rest.
// Findings end up in reports and logs, so the full secret must never
// travel past this point.
func redactValue(value string) string {
	const keep = 8
	if len(value) <= keep {
		return value
	}
	return value[:keep] + "...[REDACTED]"
}

// Ensure SecretAnalyzer implements CheckAnalyzer.
var _ CheckAnalyzer = (*SecretAnalyzer)(nil)
