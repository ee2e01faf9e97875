package types

import "fmt"

// Severity classifies a validation outcome. Severities are data, not
// errors: a run collects every result and hands back the full sequence so
// the caller sees all problems in one pass.
type Severity string

const (
	// SeverityPass means the check held.
	SeverityPass Severity = "pass"
	// SeverityWarning means review is needed but finalization may proceed.
	SeverityWarning Severity = "warning"
	// SeverityBlocking means the statement must not be finalized.
	SeverityBlocking Severity = "blocking"
)

// IsValid checks if the severity value is valid.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityPass, SeverityWarning, SeverityBlocking:
		return true
	}
	return false
}

// rank orders severities for comparison and clamping.
func (s Severity) rank() int {
	switch s {
	case SeverityWarning:
		return 1
	case SeverityBlocking:
		return 2
	default:
		return 0
	}
}

// AtMost returns the lower of the two severities. Advisory results are
// clamped through this so an enrichment hook can never escalate.
func (s Severity) AtMost(ceiling Severity) Severity {
	if s.rank() > ceiling.rank() {
		return ceiling
	}
	return s
}

// ValidationResult is the typed outcome of one check against one merged
// statement.
type ValidationResult struct {
	CheckID  string
	Severity Severity
	Message  string

	// SubjectKeys names the line items or notes involved, in the order
	// they were examined.
	SubjectKeys []string

	// Confirmed records that a blocking failure was accepted through a
	// caller-supplied override token for this check.
	Confirmed bool

	// Advisory marks results produced by the enrichment hook. Advisory
	// results never affect whether a statement may be finalized.
	Advisory bool
}

// Blocking reports whether this result prevents finalization.
func (r ValidationResult) Blocking() bool {
	return r.Severity == SeverityBlocking && !r.Advisory
}

func (r ValidationResult) String() string {
	return fmt.Sprintf("[%s] %s: %s", r.Severity, r.CheckID, r.Message)
}

// HasBlocking reports whether any result in the sequence prevents
// finalization.
func HasBlocking(results []ValidationResult) bool {
	for _, r := range results {
		if r.Blocking() {
			return true
		}
	}
	return false
}
