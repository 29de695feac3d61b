// Package audit scores lists of candidate passwords concurrently and
// aggregates the results into a model.AuditReport.
//
// Candidates are held in memory only while they are scored. The report
// identifies each one by its line number in the source list.
package audit
