// Package model defines the audit data shared by the audit, report and
// database packages.
//
// The types live in their own package so that audit, report and database
// can all depend on them without importing each other. Audit data holds
// line numbers, buckets and bit estimates only; candidates never enter
// these types, so a report or history row cannot leak a password.
package model
