// Package code analyzes source code structure without compiling it.
//
// Each supported language has a table of regex patterns for function,
// type, and import declarations plus control flow keywords. The
// analyzer extracts names, counts constructs, computes a simplified
// cyclomatic complexity, and flags common code smells such as long
// functions, deep nesting, and magic numbers.
//
// Design decision: We use regex tables rather than real parsers because:
//  1. One mechanism covers a dozen languages without a dozen grammars
//  2. The metrics are statistical, so occasional misses are acceptable
//  3. Malformed or partial files still produce useful numbers
package code
