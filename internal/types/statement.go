package types

import (
	"fmt"

	"github.com/quokkatech/finrecon/internal/money"
)

// ValueSource identifies the component whose output is authoritative for a
// populated figure.
type ValueSource string

const (
	// SourceSpreadsheet marks figures owned by the current-year workbook.
	SourceSpreadsheet ValueSource = "spreadsheet"
	// SourcePriorDoc marks figures and structure owned by the prior-year report.
	SourcePriorDoc ValueSource = "prior_doc"
	// SourceUnset marks a slot nothing has populated.
	SourceUnset ValueSource = ""
)

// IsValid checks if the value source is valid.
func (s ValueSource) IsValid() bool {
	switch s {
	case SourceSpreadsheet, SourcePriorDoc, SourceUnset:
		return true
	}
	return false
}

// LineItem is a single named numeric fact with separate current-period and
// prior-period values. The Key is the stable identifier checks refer to;
// the Label is the display wording, which the prior-year report owns.
type LineItem struct {
	Key           string
	Label         string
	Current       money.Amount
	Prior         money.Amount
	CurrentSource ValueSource
	PriorSource   ValueSource

	// Derived marks a subtotal computed from its components because the
	// source omitted the figure, rather than read from a cell.
	Derived bool

	// CrossCheck holds the workbook's own prior-year column when present.
	// It is never used to populate Prior; it only feeds a consistency
	// warning against the prior report's figure.
	CrossCheck money.Amount
}

// SectionKind identifies one of the three statement sections.
type SectionKind string

const (
	SectionIncomeStatement   SectionKind = "income_statement"
	SectionBalanceSheet      SectionKind = "balance_sheet"
	SectionEquityRollforward SectionKind = "equity_rollforward"
)

// IsValid checks if the section kind is valid.
func (k SectionKind) IsValid() bool {
	switch k {
	case SectionIncomeStatement, SectionBalanceSheet, SectionEquityRollforward:
		return true
	}
	return false
}

// StatementSection is an ordered sequence of line items. Ordering is
// significant: it must match the prior-year report's presentation, so
// items are kept as a slice and never re-sorted.
type StatementSection struct {
	Kind  SectionKind
	Title string
	Items []LineItem
}

// Item returns a pointer to the line item with the given key, if present.
func (s *StatementSection) Item(key string) (*LineItem, bool) {
	for i := range s.Items {
		if s.Items[i].Key == key {
			return &s.Items[i], true
		}
	}
	return nil, false
}

// Upsert returns the line item with the given key, appending an empty item
// in sequence order when it does not exist yet. The label is only applied
// to a fresh item; an existing label (owned by the prior report) wins.
func (s *StatementSection) Upsert(key, label string) *LineItem {
	if item, ok := s.Item(key); ok {
		if item.Label == "" {
			item.Label = label
		}
		return item
	}
	s.Items = append(s.Items, LineItem{Key: key, Label: label})
	return &s.Items[len(s.Items)-1]
}

// Keys returns the item keys in presentation order.
func (s *StatementSection) Keys() []string {
	keys := make([]string, len(s.Items))
	for i := range s.Items {
		keys[i] = s.Items[i].Key
	}
	return keys
}

// NoteRecord is a numbered disclosure note. Notes present in the prior year
// must survive into the merged output even when their current figure is
// zero; dropping one is a blocking condition, never a silent omission.
type NoteRecord struct {
	Number               int
	Heading              string
	Body                 string
	PresentInPriorYear   bool
	RequiresCarryForward bool
}

// PartialStatement is an extractor's contribution to one reconciliation
// run: the same shape as a MergedStatement with everything the extractor
// does not own left at its empty or absent state.
type PartialStatement struct {
	Origin ValueSource

	EntityName    string
	FinancialYear int

	IncomeStatement   StatementSection
	BalanceSheet      StatementSection
	EquityRollforward StatementSection

	Notes     []NoteRecord
	Directors []PartyRecord
	Signatory *PartyRecord

	HeadEntity          string
	ContingentLiability string
}

// NewPartialStatement creates an empty partial statement attributed to the
// given extractor.
func NewPartialStatement(origin ValueSource) *PartialStatement {
	return &PartialStatement{
		Origin:            origin,
		IncomeStatement:   StatementSection{Kind: SectionIncomeStatement, Title: "Statement of Profit or Loss and Other Comprehensive Income"},
		BalanceSheet:      StatementSection{Kind: SectionBalanceSheet, Title: "Statement of Financial Position"},
		EquityRollforward: StatementSection{Kind: SectionEquityRollforward, Title: "Statement of Changes in Equity"},
	}
}

// Section returns the section of the given kind.
func (p *PartialStatement) Section(kind SectionKind) *StatementSection {
	switch kind {
	case SectionIncomeStatement:
		return &p.IncomeStatement
	case SectionBalanceSheet:
		return &p.BalanceSheet
	case SectionEquityRollforward:
		return &p.EquityRollforward
	}
	return nil
}

// MergedStatement is the complete record for one (entity, financial year)
// pair: the unit handed to the invariant checks and, when no blocking
// result remains, to the rendering collaborator. After the merge resolver
// returns it, it is logically immutable.
type MergedStatement struct {
	EntityName    string
	FinancialYear int

	IncomeStatement   StatementSection
	BalanceSheet      StatementSection
	EquityRollforward StatementSection

	Notes []NoteRecord

	// PriorNoteNumbers records which note numbers the prior report carried,
	// so note continuity can be verified after any editing of Notes.
	PriorNoteNumbers []int

	Directors      []PartyRecord
	PriorDirectors []PartyRecord
	Signatory      PartyRecord
	PriorSignatory *PartyRecord

	HeadEntity      string
	PriorHeadEntity string

	// ContingentLiability carries the prior report's contingent-liability
	// wording, empty when the prior year disclosed none.
	ContingentLiability string

	// OpeningRetainedEarnings is the prior report's closing retained
	// earnings figure, the start of the current-year rollforward.
	OpeningRetainedEarnings money.Amount
}

// Section returns the section of the given kind.
func (m *MergedStatement) Section(kind SectionKind) *StatementSection {
	switch kind {
	case SectionIncomeStatement:
		return &m.IncomeStatement
	case SectionBalanceSheet:
		return &m.BalanceSheet
	case SectionEquityRollforward:
		return &m.EquityRollforward
	}
	return nil
}

// Item looks up a line item by section kind and key.
func (m *MergedStatement) Item(kind SectionKind, key string) (*LineItem, bool) {
	sec := m.Section(kind)
	if sec == nil {
		return nil, false
	}
	return sec.Item(key)
}

// CurrentValue returns the current-period figure for a key, or the absent
// marker when the item or figure is missing.
func (m *MergedStatement) CurrentValue(kind SectionKind, key string) money.Amount {
	if item, ok := m.Item(kind, key); ok {
		return item.Current
	}
	return money.Absent()
}

// Note returns the note with the given number, if present.
func (m *MergedStatement) Note(number int) (*NoteRecord, bool) {
	for i := range m.Notes {
		if m.Notes[i].Number == number {
			return &m.Notes[i], true
		}
	}
	return nil, false
}

// Validate checks structural sanity of a merged statement before the
// invariant checks run.
func (m *MergedStatement) Validate() error {
	if m.EntityName == "" {
		return fmt.Errorf("entity name is required")
	}
	if m.FinancialYear < 1900 || m.FinancialYear > 3000 {
		return fmt.Errorf("implausible financial year %d", m.FinancialYear)
	}
	seen := make(map[int]bool, len(m.Notes))
	for _, n := range m.Notes {
		if seen[n.Number] {
			return fmt.Errorf("duplicate note number %d", n.Number)
		}
		seen[n.Number] = true
	}
	return nil
}
