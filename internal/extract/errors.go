package extract

import (
	"fmt"
	"strings"
)

// SectionNotFoundError reports that a required workbook region could not
// be resolved under any alias or matching strategy. It carries the
// candidate names so the operator can fix the config or the workbook
// without reopening either.
type SectionNotFoundError struct {
	Section   string
	Aliases   []string
	Available []string
}

func (e *SectionNotFoundError) Error() string {
	return fmt.Sprintf("no sheet matches %s (tried %s; workbook has %s)",
		e.Section,
		strings.Join(e.Aliases, ", "),
		strings.Join(e.Available, ", "))
}
