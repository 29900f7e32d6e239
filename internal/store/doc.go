// Package store provides SQLite-backed storage for records.
//
// Each record is stored once as canonical JSON under a time-ordered UUIDv7
// id. A content digest (see record.Digest) is unique, so importing the same
// record twice is a no-op that returns the first id.
//
// Scans read every row in insertion order (ORDER BY seq ASC) and apply
// the predicate in Go. Predicates are never translated to SQL.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
