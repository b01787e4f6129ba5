// Package scan detects sensitive data in analyzed documents.
//
// The package runs a set of focused analyzers over document snapshots and
// raw bytes: email addresses, API keys and tokens, personally identifying
// information, and EXIF metadata in images. Each analyzer produces findings
// that are deduplicated and attached to the report summary.
package scan
