// Package fileutil provides file management helpers and change
// monitoring for research workspaces.
//
// It wraps the usual read/write/copy/move operations with consistent
// permissions (0600 files, 0750 directories), computes checksums,
// collects files for analysis with ignore patterns and size caps, and
// watches directory trees for changes with debouncing.
package fileutil
