package extract

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

// Line is one text line of the prior-year report, tagged with the page it
// came from.
type Line struct {
	Page int
	Text string
}

// TokenStream is an order-preserving, line-oriented view of the prior-year
// report. The text service that renders a PDF into lines sits behind this
// interface; the extractor only cares about ordering and page boundaries.
type TokenStream interface {
	// Next returns the next line, or ok=false when the stream is drained.
	Next() (Line, bool)
}

// SliceTokenStream serves lines from memory. Used by tests and by callers
// that already hold the rendered text.
type SliceTokenStream struct {
	lines []Line
	pos   int
}

// NewSliceTokenStream wraps pre-rendered pages, one slice of lines each.
func NewSliceTokenStream(pages ...[]string) *SliceTokenStream {
	s := &SliceTokenStream{}
	for p, page := range pages {
		for _, text := range page {
			s.lines = append(s.lines, Line{Page: p + 1, Text: text})
		}
	}
	return s
}

// Next implements TokenStream.
func (s *SliceTokenStream) Next() (Line, bool) {
	if s.pos >= len(s.lines) {
		return Line{}, false
	}
	l := s.lines[s.pos]
	s.pos++
	return l, true
}

// NewFileTokenStream reads a rendered-text report from disk. Pages are
// separated by form feed characters, the convention of every common
// pdf-to-text renderer.
func NewFileTokenStream(path string) (TokenStream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening report text %s: %w", path, err)
	}
	defer file.Close()

	s := &SliceTokenStream{}
	page := 1
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := scanner.Text()
		for {
			before, after, found := strings.Cut(text, "\f")
			s.lines = append(s.lines, Line{Page: page, Text: before})
			if !found {
				break
			}
			page++
			text = after
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading report text %s: %w", path, err)
	}
	return s, nil
}

// region identifies which part of the report a line belongs to, assigned
// by the closest preceding recognized heading.
type region int

const (
	regionFrontMatter region = iota
	regionIncomeStatement
	regionBalanceSheet
	regionEquity
	regionNotes
	regionDeclaration
	regionCompilation
)

var (
	yearEndedRe   = regexp.MustCompile(`(?i)for the year ended 30 june (\d{4})`)
	noteHeadingRe = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	headEntityRe  = regexp.MustCompile(`(?i)head entity(?:\s+is|\s*:)?\s+(.+?)\.?\s*$`)
	moneyTokenRe  = regexp.MustCompile(`\(?-?\$?\d[\d,]*(?:\.\d+)?\)?`)
)

// ReferenceExtractor reads the prior-year report. It owns prior figures,
// section structure, note records, and the party and disclosure fields; it
// never emits a current-year figure. Any field the report fails to yield
// is left absent rather than failing the run, so a sparse report degrades
// into warnings downstream instead of an error here.
type ReferenceExtractor struct {
	stream TokenStream
}

// NewReferenceExtractor returns an extractor over the given stream.
func NewReferenceExtractor(stream TokenStream) *ReferenceExtractor {
	return &ReferenceExtractor{stream: stream}
}

// Source implements Extractor.
func (e *ReferenceExtractor) Source() types.ValueSource {
	return types.SourcePriorDoc
}

// Extract walks the stream once, assigning each line to the closest
// preceding recognized heading and harvesting what each region offers.
func (e *ReferenceExtractor) Extract(ctx context.Context) (*types.PartialStatement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	partial := types.NewPartialStatement(types.SourcePriorDoc)
	p := &reportParser{partial: partial}
	for {
		line, ok := e.stream.Next()
		if !ok {
			break
		}
		p.feed(line)
	}
	p.finish()
	return partial, nil
}

type reportParser struct {
	partial *types.PartialStatement
	region  region

	sawTitle    bool
	prevLine    string
	currentNote *types.NoteRecord

	// declaration and compilation blocks are name-then-title pairs
	pendingName string
}

func (p *reportParser) feed(line Line) {
	text := strings.TrimSpace(line.Text)
	if text == "" {
		p.prevLine = ""
		return
	}

	if r, ok := classifyHeading(text); ok {
		p.closeNote()
		p.region = r
		p.pendingName = ""
		p.prevLine = text
		return
	}

	p.harvestFrontMatter(text)

	switch p.region {
	case regionIncomeStatement:
		p.harvestLineItem(text, p.partial.Section(types.SectionIncomeStatement))
	case regionBalanceSheet:
		p.harvestLineItem(text, p.partial.Section(types.SectionBalanceSheet))
	case regionNotes:
		p.harvestNote(text)
	case regionDeclaration:
		p.harvestParty(text, func(rec types.PartyRecord) {
			p.partial.Directors = append(p.partial.Directors, rec)
		})
	case regionCompilation:
		p.harvestParty(text, func(rec types.PartyRecord) {
			if p.partial.Signatory == nil {
				rec := rec
				p.partial.Signatory = &rec
			}
		})
	}

	p.prevLine = text
}

func (p *reportParser) finish() {
	p.closeNote()
}

func classifyHeading(text string) (region, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.HasPrefix(lower, "statement of profit or loss"),
		lower == "income statement",
		lower == "profit and loss statement":
		return regionIncomeStatement, true
	case strings.HasPrefix(lower, "statement of financial position"),
		lower == "balance sheet":
		return regionBalanceSheet, true
	case strings.HasPrefix(lower, "statement of changes in equity"):
		return regionEquity, true
	case strings.HasPrefix(lower, "notes to the financial statements"):
		return regionNotes, true
	case strings.HasPrefix(lower, "directors' declaration"),
		strings.HasPrefix(lower, "directors declaration"):
		return regionDeclaration, true
	case strings.Contains(lower, "compilation report"):
		return regionCompilation, true
	}
	return 0, false
}

// harvestFrontMatter picks up fields that can appear anywhere: the entity
// name around the title line, the financial year, the head entity
// disclosure, and contingent liability wording outside the notes.
func (p *reportParser) harvestFrontMatter(text string) {
	lower := strings.ToLower(text)

	if !p.sawTitle && strings.Contains(lower, "financial statements") {
		p.sawTitle = true
		if p.partial.EntityName == "" && looksLikeEntityName(p.prevLine) {
			p.partial.EntityName = p.prevLine
		}
		return
	}
	if p.sawTitle && p.partial.EntityName == "" && looksLikeEntityName(text) {
		p.partial.EntityName = text
	}

	if p.partial.FinancialYear == 0 {
		if m := yearEndedRe.FindStringSubmatch(text); m != nil {
			year, err := strconv.Atoi(m[1])
			if err == nil {
				p.partial.FinancialYear = year
			}
		}
	}

	if p.partial.HeadEntity == "" {
		if m := headEntityRe.FindStringSubmatch(text); m != nil {
			p.partial.HeadEntity = strings.TrimSpace(m[1])
		}
	}

	if strings.Contains(lower, "contingent liabilit") && !strings.HasSuffix(lower, "contingent liabilities") {
		if p.partial.ContingentLiability == "" {
			p.partial.ContingentLiability = text
		}
	}
}

func looksLikeEntityName(text string) bool {
	lower := strings.ToLower(strings.TrimSpace(text))
	return strings.HasSuffix(lower, "pty ltd") ||
		strings.HasSuffix(lower, "pty. ltd.") ||
		strings.HasSuffix(lower, "limited") ||
		strings.HasSuffix(lower, "ltd")
}

// harvestLineItem splits a statement line into its label and figures. The
// first figure column is the report's own current year, which is this
// run's prior year.
func (p *reportParser) harvestLineItem(text string, section *types.StatementSection) {
	tokens := moneyTokenRe.FindAllStringIndex(text, -1)
	if len(tokens) == 0 {
		return
	}
	label := strings.TrimSpace(text[:tokens[0][0]])
	key, ok := classifyLabel(label, section.Kind)
	if !ok {
		return
	}
	value, err := money.Normalize(text[tokens[0][0]:tokens[0][1]])
	if err != nil || !value.Present {
		return
	}
	item := section.Upsert(key, label)
	if item.Prior.Present {
		return
	}
	item.Prior = value
	item.PriorSource = types.SourcePriorDoc
}

func (p *reportParser) harvestNote(text string) {
	if m := noteHeadingRe.FindStringSubmatch(text); m != nil {
		p.closeNote()
		number, _ := strconv.Atoi(m[1])
		heading := strings.TrimSpace(m[2])
		p.currentNote = &types.NoteRecord{
			Number:               number,
			Heading:              heading,
			PresentInPriorYear:   true,
			RequiresCarryForward: strings.Contains(strings.ToLower(heading), "contingent"),
		}
		return
	}
	if p.currentNote != nil {
		if p.currentNote.Body != "" {
			p.currentNote.Body += "\n"
		}
		p.currentNote.Body += text
	}
}

func (p *reportParser) closeNote() {
	if p.currentNote == nil {
		return
	}
	note := *p.currentNote
	p.currentNote = nil
	if strings.Contains(strings.ToLower(note.Heading+" "+note.Body), "contingent liabilit") &&
		p.partial.ContingentLiability == "" {
		p.partial.ContingentLiability = strings.TrimSpace(note.Heading + ": " + note.Body)
	}
	p.partial.Notes = append(p.partial.Notes, note)
}

// harvestParty recognizes a name line followed by a title line. A "Name,
// Title" single line works too. Signature rules live with the caller; the
// parser only pairs names with titles.
func (p *reportParser) harvestParty(text string, emit func(types.PartyRecord)) {
	lower := strings.ToLower(text)

	if isPartyTitle(lower) && p.pendingName != "" {
		emit(types.PartyRecord{Name: p.pendingName, Title: text})
		p.pendingName = ""
		return
	}

	if name, title, ok := strings.Cut(text, ","); ok && isPartyTitle(strings.ToLower(strings.TrimSpace(title))) {
		emit(types.PartyRecord{Name: strings.TrimSpace(name), Title: strings.TrimSpace(title)})
		p.pendingName = ""
		return
	}

	if looksLikePersonName(text) {
		p.pendingName = text
	}
}

func isPartyTitle(lower string) bool {
	switch {
	case lower == "director", lower == "directors":
		return true
	case strings.Contains(lower, "accountant"),
		strings.Contains(lower, "agent"),
		strings.Contains(lower, "principal"):
		return true
	}
	return false
}

// looksLikePersonName filters out dates, signature rules, and boilerplate.
func looksLikePersonName(text string) bool {
	if strings.ContainsAny(text, "0123456789_:") {
		return false
	}
	words := strings.Fields(text)
	if len(words) < 2 || len(words) > 4 {
		return false
	}
	for _, w := range words {
		r := []rune(w)
		if r[0] < 'A' || r[0] > 'Z' {
			return false
		}
	}
	return true
}
