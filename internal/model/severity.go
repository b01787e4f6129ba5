package model

// Severity represents the risk level of a finding.
// Findings range from purely informational code-quality notes to
// exposed credentials that require immediate rotation.
//
// Design decision: We use iota-based constants rather than string constants
// for efficiency in comparisons and sorting. The String() method provides
// human-readable output when needed.
type Severity int

const (
	// SeverityInfo indicates informational findings with no direct risk.
	// Examples: long lines, magic numbers, TODO comments.
	SeverityInfo Severity = iota

	// SeverityLow indicates minor issues with limited impact.
	// Examples: deep nesting, long functions, EXIF software tags.
	SeverityLow

	// SeverityMedium indicates moderate issues that warrant attention.
	// Examples: email addresses, phone numbers, JWT tokens in files.
	SeverityMedium

	// SeverityHigh indicates serious issues that risk credential or
	// identity exposure. Examples: cloud access key IDs, API tokens,
	// hardcoded passwords.
	SeverityHigh

	// SeverityCritical indicates severe issues that likely compromise
	// accounts or infrastructure. Examples: private key blocks, cloud
	// secret keys, payment card numbers, GPS coordinates in image metadata.
	SeverityCritical
)

// String returns a human-readable representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityLow:
		return "LOW"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityHigh:
		return "HIGH"
	case SeverityCritical:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

// FindingInfo contains metadata about a finding type including severity,
// impact description, and remediation recommendation.
type FindingInfo struct {
	Severity       Severity
	Impact         string
	Recommendation string
}

// findingInfoMapping maps finding types to their metadata.
// This centralized mapping ensures consistent risk assessment across Aion.
//
// Design decision: We use a map rather than embedding severity in each
// analyzer because:
// 1. It allows updating risk assessments without modifying analyzers
// 2. It provides a single source of truth for risk levels
// 3. It makes it easy to generate severity documentation
var findingInfoMapping = map[string]FindingInfo{
	// CRITICAL - Immediate credential or identity compromise
	"private_key_block": {
		Severity:       SeverityCritical,
		Impact:         "A private key block is embedded in the file. Anyone with read access can impersonate the key owner.",
		Recommendation: "Remove the key from the file, rotate the key pair, and load keys from a secrets manager or protected path.",
	},
	"aws_secret_access_key": {
		Severity:       SeverityCritical,
		Impact:         "An AWS secret access key grants API access to the associated AWS account.",
		Recommendation: "Revoke the key in IAM immediately and switch to environment variables or an instance role.",
	},
	"openai_api_key": {
		Severity:       SeverityCritical,
		Impact:         "An OpenAI API key allows billable API usage and access to fine-tuned models on the account.",
		Recommendation: "Revoke the key in the OpenAI dashboard and load keys from the environment instead of source files.",
	},
	"github_token": {
		Severity:       SeverityCritical,
		Impact:         "A GitHub token may grant read/write access to repositories and organization resources.",
		Recommendation: "Revoke the token and replace it with a fine-grained token stored outside the repository.",
	},
	"gcp_service_account_key": {
		Severity:       SeverityCritical,
		Impact:         "A GCP service account key file grants programmatic access to Google Cloud resources.",
		Recommendation: "Delete the key from the service account and use workload identity where possible.",
	},
	"credit_card_number": {
		Severity:       SeverityCritical,
		Impact:         "A payment card number appears in the file, which is a direct PCI exposure.",
		Recommendation: "Remove the number and audit how cardholder data entered the dataset.",
	},
	"exif_gps": {
		Severity:       SeverityCritical,
		Impact:         "GPS coordinates in image metadata reveal where the photo was taken.",
		Recommendation: "Strip EXIF metadata from images before publishing (e.g., exiftool -all=).",
	},

	// HIGH - Significant exposure risk
	"aws_access_key_id": {
		Severity:       SeverityHigh,
		Impact:         "An AWS access key ID identifies credentials; paired with its secret it grants account access.",
		Recommendation: "Check whether the matching secret key is exposed and rotate the key pair.",
	},
	"huggingface_token": {
		Severity:       SeverityHigh,
		Impact:         "A Hugging Face token can access private models and datasets on the account.",
		Recommendation: "Revoke the token in account settings and use the HF_TOKEN environment variable.",
	},
	"slack_token": {
		Severity:       SeverityHigh,
		Impact:         "A Slack token can read or post messages in the associated workspace.",
		Recommendation: "Revoke the token in the Slack admin console.",
	},
	"password_assignment": {
		Severity:       SeverityHigh,
		Impact:         "A hardcoded password assignment was found in source or configuration.",
		Recommendation: "Move the password to an environment variable or secrets manager and rotate it.",
	},
	"connection_string": {
		Severity:       SeverityHigh,
		Impact:         "A database connection string with embedded credentials exposes the database.",
		Recommendation: "Remove credentials from the URI and supply them via environment configuration.",
	},

	// MEDIUM - Identity clues and weaker credentials
	"email_address": {
		Severity:       SeverityMedium,
		Impact:         "An email address in the file may identify an individual or organization.",
		Recommendation: "Confirm the address is intended for publication; redact personal addresses from datasets.",
	},
	"phone_number": {
		Severity:       SeverityMedium,
		Impact:         "A phone number is personally identifying information.",
		Recommendation: "Redact phone numbers from datasets unless publication is intended.",
	},
	"jwt_token": {
		Severity:       SeverityMedium,
		Impact:         "A JWT may contain claims or still be valid for authentication.",
		Recommendation: "Verify the token is expired and remove it from the file.",
	},
	"generic_api_key": {
		Severity:       SeverityMedium,
		Impact:         "A string shaped like an API key was found near a key-like identifier.",
		Recommendation: "Verify whether the value is a live credential and rotate it if so.",
	},
	"exif_serial": {
		Severity:       SeverityMedium,
		Impact:         "A camera body or lens serial number ties the image to a specific device.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},
	"exif_author": {
		Severity:       SeverityMedium,
		Impact:         "Author or copyright EXIF fields may name the photographer.",
		Recommendation: "Strip identifying EXIF fields before publishing.",
	},
	"exif_computer": {
		Severity:       SeverityMedium,
		Impact:         "The HostComputer EXIF field names the machine used to process the image.",
		Recommendation: "Strip EXIF metadata from images before publishing.",
	},

	// LOW - Weak correlation vectors and code-quality risks
	"ip_address": {
		Severity:       SeverityLow,
		Impact:         "An IP address in the file may reveal infrastructure details.",
		Recommendation: "Confirm the address is not a production host before sharing the file.",
	},
	"exif_software": {
		Severity:       SeverityLow,
		Impact:         "Software EXIF tags reveal the editing tools and OS used.",
		Recommendation: "Strip EXIF metadata if tool fingerprinting is a concern.",
	},
	"exif_camera": {
		Severity:       SeverityLow,
		Impact:         "Camera make and model tags help fingerprint the device that took the photo.",
		Recommendation: "Strip EXIF metadata if device fingerprinting is a concern.",
	},
	"exif_datetime": {
		Severity:       SeverityLow,
		Impact:         "Capture timestamps can reveal timezone and activity patterns.",
		Recommendation: "Strip EXIF metadata if timestamps should not be published.",
	},
	"long_function": {
		Severity:       SeverityLow,
		Impact:         "Functions longer than 50 lines are harder to test and review.",
		Recommendation: "Split the function into smaller, focused helpers.",
	},
	"deep_nesting": {
		Severity:       SeverityLow,
		Impact:         "Nesting beyond four levels makes control flow hard to follow.",
		Recommendation: "Use early returns or extract nested blocks into functions.",
	},
	"bare_except": {
		Severity:       SeverityLow,
		Impact:         "A bare except clause swallows all errors including system exits.",
		Recommendation: "Catch specific exception types instead.",
	},

	// INFO - Style and bookkeeping notes
	"magic_numbers": {
		Severity:       SeverityInfo,
		Impact:         "Repeated unnamed numeric literals obscure intent.",
		Recommendation: "Name significant constants.",
	},
	"long_lines": {
		Severity:       SeverityInfo,
		Impact:         "Lines over 100 characters hurt readability in reviews and diffs.",
		Recommendation: "Wrap long lines.",
	},
	"todo_comment": {
		Severity:       SeverityInfo,
		Impact:         "TODO/FIXME/HACK markers indicate known unfinished work.",
		Recommendation: "Track the work in an issue tracker and resolve the markers.",
	},
	"non_utf8_file": {
		Severity:       SeverityInfo,
		Impact:         "The file is not valid UTF-8 and was excluded from text analysis.",
		Recommendation: "Convert the file to UTF-8 if it should be analyzed as text.",
	},
	"oversized_file": {
		Severity:       SeverityInfo,
		Impact:         "The file exceeds the configured size limit and was truncated or skipped.",
		Recommendation: "Raise --max-file-size if full analysis of this file is required.",
	},
}

// GetSeverity returns the severity for a finding type.
// Unknown types default to SeverityInfo.
func GetSeverity(findingType string) Severity {
	if info, ok := findingInfoMapping[findingType]; ok {
		return info.Severity
	}
	return SeverityInfo
}

// GetFindingInfo returns the full metadata for a finding type.
// The second return value reports whether the type is known.
func GetFindingInfo(findingType string) (FindingInfo, bool) {
	info, ok := findingInfoMapping[findingType]
	return info, ok
}

// KnownFindingTypes returns all finding types with registered metadata.
// Useful for documentation generation and tests.
func KnownFindingTypes() []string {
	types := make([]string, 0, len(findingInfoMapping))
	for t := range findingInfoMapping {
		types = append(types, t)
	}
	return types
}
