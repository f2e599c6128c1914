// Package storage provides persistence backends for audit records.
//
// Two backends are available:
//
//   - SQLiteStorage: durable single-file storage using the pure-Go SQLite
//     driver, suitable for production use.
//   - MemoryStorage: an in-memory map intended for tests.
//
// Both implement audit.Storage.
package storage
