// Package types defines the canonical financial-data model shared by the
// extractors, the merge resolver, and the invariant checks.
//
// The central rule of the system is expressed here as data rather than as
// scattered precedence logic: every populated figure carries a ValueSource
// tag naming the component whose output is authoritative for it. Current
// year figures belong to the spreadsheet extractor; prior-year figures,
// section ordering, note structure, and wording belong to the prior-report
// extractor. The merge resolver enforces those ownership tags mechanically,
// so a component writing outside its slot is a detectable defect instead of
// a silent overwrite.
//
// All entities live for exactly one reconciliation run. Extractors populate
// partial statements, the resolver finalizes a MergedStatement, and the
// checks read it without mutating. Nothing here is retained across runs.
package types
