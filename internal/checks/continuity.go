package checks

import (
	"context"
	"strings"

	"github.com/quokkatech/finrecon/internal/types"
)

// HeadEntityContinuity verifies the tax consolidation head entity
// disclosure carried forward from the prior year. A changed or dropped
// head entity blocks unless the run confirms the change was intended.
type HeadEntityContinuity struct{}

func (HeadEntityContinuity) ID() string   { return "head_entity_continuity" }
func (HeadEntityContinuity) Class() Class { return ClassConfirmable }

func (HeadEntityContinuity) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{"head_entity"}

	if m.PriorHeadEntity == "" {
		return types.ValidationResult{
			Severity:    types.SeverityPass,
			Message:     "prior year disclosed no head entity",
			SubjectKeys: subjects,
		}
	}
	if m.HeadEntity == "" {
		return types.ValidationResult{
			Severity:    types.SeverityBlocking,
			Message:     "head entity disclosure " + m.PriorHeadEntity + " dropped from current year",
			SubjectKeys: subjects,
		}
	}
	if types.NormalizeName(m.HeadEntity) != types.NormalizeName(m.PriorHeadEntity) {
		return types.ValidationResult{
			Severity:    types.SeverityBlocking,
			Message:     "head entity changed from " + m.PriorHeadEntity + " to " + m.HeadEntity,
			SubjectKeys: subjects,
		}
	}
	return types.ValidationResult{
		Severity:    types.SeverityPass,
		Message:     "head entity " + m.HeadEntity + " carried forward",
		SubjectKeys: subjects,
	}
}

// ContingentLiabilityContinuity verifies that a contingent liability the
// prior year disclosed still has a note in the merged statement. The
// disclosure outlives its trigger until someone confirms its removal.
type ContingentLiabilityContinuity struct{}

func (ContingentLiabilityContinuity) ID() string   { return "contingent_liability_continuity" }
func (ContingentLiabilityContinuity) Class() Class { return ClassConfirmable }

func (ContingentLiabilityContinuity) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{"contingent_liability"}

	if m.ContingentLiability == "" {
		return types.ValidationResult{
			Severity:    types.SeverityPass,
			Message:     "prior year disclosed no contingent liability",
			SubjectKeys: subjects,
		}
	}
	for _, note := range m.Notes {
		if note.RequiresCarryForward ||
			strings.Contains(strings.ToLower(note.Heading), "contingent") ||
			strings.Contains(strings.ToLower(note.Body), "contingent") {
			return types.ValidationResult{
				Severity:    types.SeverityPass,
				Message:     "contingent liability disclosure retained in note " + itoa(note.Number),
				SubjectKeys: subjects,
			}
		}
	}
	return types.ValidationResult{
		Severity:    types.SeverityBlocking,
		Message:     "prior year contingent liability disclosure has no current note: " + m.ContingentLiability,
		SubjectKeys: subjects,
	}
}

// DirectorContinuity verifies the director and signatory records match
// the prior year. Board changes are legitimate but must be confirmed,
// never inferred.
type DirectorContinuity struct{}

func (DirectorContinuity) ID() string   { return "director_continuity" }
func (DirectorContinuity) Class() Class { return ClassConfirmable }

func (DirectorContinuity) Evaluate(_ context.Context, m *types.MergedStatement) types.ValidationResult {
	subjects := []string{"directors", "signatory"}

	var changes []string
	for _, prior := range m.PriorDirectors {
		if !types.ContainsParty(m.Directors, prior) {
			changes = append(changes, "director "+prior.Name+" no longer listed")
		}
	}
	for _, current := range m.Directors {
		if len(m.PriorDirectors) > 0 && !types.ContainsParty(m.PriorDirectors, current) {
			changes = append(changes, "director "+current.Name+" not in prior year")
		}
	}
	if m.PriorSignatory != nil && !m.Signatory.SameAs(*m.PriorSignatory) {
		changes = append(changes, "signatory changed from "+m.PriorSignatory.Name+" to "+m.Signatory.Name)
	}

	if len(changes) > 0 {
		return types.ValidationResult{
			Severity:    types.SeverityBlocking,
			Message:     strings.Join(changes, "; "),
			SubjectKeys: subjects,
		}
	}
	if len(m.PriorDirectors) == 0 && m.PriorSignatory == nil {
		return types.ValidationResult{
			Severity:    types.SeverityPass,
			Message:     "prior year yields no director or signatory records to compare",
			SubjectKeys: subjects,
		}
	}
	return types.ValidationResult{
		Severity:    types.SeverityPass,
		Message:     "directors and signatory unchanged from prior year",
		SubjectKeys: subjects,
	}
}
