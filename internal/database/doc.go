// Package database provides SQLite-based storage for Aion.
//
// This package implements the ArchiveDB, which stores:
//   - Analysis reports for historical comparison
//   - Document hashes for change detection between runs
//   - Evaluation runs with their metric values
//   - Text embeddings for similarity search
//
// Design decision: We use SQLite (via modernc.org/sqlite) instead of other
// databases because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package database
