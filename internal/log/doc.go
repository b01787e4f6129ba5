// Package log provides secure logging functionality with automatic sanitization
// of sensitive information, built on top of the standard slog package.
//
// This package extends slog to provide:
//   - Automatic sanitization of sensitive values (cookies, tokens, secrets)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// # Security Features
//
// The SecureHandler automatically sanitizes sensitive information in log output:
//   - HTTP headers (Authorization, Cookie, Set-Cookie, X-Api-Key)
//   - Secret values detected by pattern matching (passwords, tokens, keys)
//   - AI platform credentials (OpenAI, Hugging Face, GitHub tokens)
//   - Session identifiers and authentication tokens
//
// Aion scans research workspaces for leaked credentials, so the values
// passing through its own logs are exactly the ones that must never be
// written out in clear text. Even in verbose mode, sensitive values are
// masked to prevent accidental exposure in logs that may be shared.
//
// # Usage
//
//	// Create a secure logger
//	logger := log.NewSecureLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("finding recorded",
//	    "api_key", "sk-proj-abc123",  // Will be sanitized
//	    "path", "notebooks/train.py",
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
