// Package store persists finished searches in SQLite.
//
// Each run records the job that was searched (ciphertext, cribs and
// constraints), the outcome and a few execution facts. Runs are keyed by a
// time-sortable UUIDv7 and carry the canonical hash of their job, so a
// deterministic search that already ran can be answered from history.
//
// # Ordering
//
// Listing orders by the seq column, the insertion order, never by
// created_at. Wall time is recorded for display only.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON
//
// JSON columns hold canonical JSON produced by internal/canon.
package store
