// Package main provides the entry point for the passforge CLI.
//
// passforge estimates the strength of passwords and generates new ones
// from a cryptographically secure random source.
//
// Usage:
//
//	passforge check
//	passforge generate --length 24 --symbols
//	passforge audit --list passwords.txt
//
// See --help for all available options.
package main

// main is the entry point for passforge.
func main() {
	Execute()
}
