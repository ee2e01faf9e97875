package checks

import (
	"context"

	"github.com/quokkatech/finrecon/internal/types"
)

// NoteContinuity verifies every prior-year note survives into the merged
// statement. A note whose subject went to zero is retained with the zero
// figure, not dropped; a missing note blocks outright.
type NoteContinuity struct{}

func (NoteContinuity) ID() string   { return "note_continuity" }
func (NoteContinuity) Class() Class { return ClassBlocking }

func (NoteContinuity) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	present := make(map[int]bool, len(m.Notes))
	for _, n := range m.Notes {
		present[n.Number] = true
	}

	var missing []string
	for _, number := range m.PriorNoteNumbers {
		if !present[number] {
			missing = append(missing, "note_"+itoa(number))
		}
	}
	if len(missing) > 0 {
		return types.ValidationResult{
			Severity:    types.SeverityBlocking,
			Message:     "prior-year notes missing from merged statement: " + joinKeys(missing),
			SubjectKeys: missing,
		}
	}
	return types.ValidationResult{
		Severity: types.SeverityPass,
		Message:  "all " + itoa(len(m.PriorNoteNumbers)) + " prior-year notes retained",
	}
}
