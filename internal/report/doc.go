// Package report writes audit reports and audit comparisons.
//
// Three formats are available:
//   - SimpleWriter: plain text for the terminal
//   - JSONWriter: JSON for tool integration
//   - MarkdownWriter: Markdown with a mermaid pie chart of the bucket
//     distribution, for sharing
//
// All writers implement Writer and receive model types only, so a report
// never contains a candidate password.
package report
