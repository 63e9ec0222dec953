// Package expense provides the types and functions to keep a personal expense
// ledger in a local, human-readable file.
//
// The core functionalities include:
//   - Ledger Operations: adding, listing, summarizing and deleting expenses
//     from an in-memory Ledger, including the id assignment policy.
//   - Data Persistence: encoding and decoding a Ledger to and from a flat
//     pipe-delimited file (or JSONL), behind the Store interface so that
//     other backends, like the sqlite package, can replace it.
//
// This package serves as the foundational logic for the `expense-tracker`
// command-line tool. Each run loads the full ledger, applies at most one
// mutation and rewrites the full ledger.
package expense
