// Package extract turns the two reconciliation sources, the current-year
// workbook and the prior-year report, into partial statements. Each
// extractor populates only the slots its source owns and leaves the rest
// absent for the merge resolver to enforce.
package extract

import (
	"context"

	"github.com/quokkatech/finrecon/internal/types"
)

// Extractor produces one side of a reconciliation run.
type Extractor interface {
	// Source names the slots this extractor owns.
	Source() types.ValueSource

	// Extract reads the underlying source. It returns an error only for
	// unusable input (unreadable file, no resolvable sheet); individually
	// missing fields degrade to absent values instead.
	Extract(ctx context.Context) (*types.PartialStatement, error)
}
