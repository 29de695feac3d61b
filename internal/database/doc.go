// Package database stores audit history in SQLite.
//
// Each audit run is stored as one row of aggregates: bucket counts, bit
// statistics and penalty hit counts. Per-line entries and candidates are
// never written, so the history file holds no password material.
//
// The database is a single file opened with modernc.org/sqlite, which is
// CGO-free, in WAL mode by default.
package database
