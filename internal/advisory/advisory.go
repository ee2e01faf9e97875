// Package advisory is the optional enrichment hook: a model-backed review
// of the merged statement that can add observations but can never block a
// run. Severity is clamped to warning and every failure of the hook
// itself degrades to an empty result set with a logged warning.
package advisory

import (
	"context"
	"log/slog"
	"time"

	"github.com/quokkatech/finrecon/internal/types"
)

// Assessor reviews a merged statement and proposes additional results.
type Assessor interface {
	Assess(ctx context.Context, m *types.MergedStatement) ([]types.ValidationResult, error)
}

// Noop is the assessor used when the hook is disabled.
type Noop struct{}

// Assess implements Assessor with an empty result set.
func (Noop) Assess(_ context.Context, _ *types.MergedStatement) ([]types.ValidationResult, error) {
	return nil, nil
}

// Run invokes the assessor under a timeout and applies the hook contract:
// results are marked advisory with severity clamped to warning, and any
// failure, timeout included, yields an empty set rather than an error.
func Run(ctx context.Context, a Assessor, m *types.MergedStatement, timeout time.Duration) []types.ValidationResult {
	if a == nil {
		return nil
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	results, err := a.Assess(ctx, m)
	if err != nil {
		slog.Warn("advisory assessment failed", "error", err)
		return nil
	}

	clamped := make([]types.ValidationResult, 0, len(results))
	for _, r := range results {
		r.Advisory = true
		if !r.Severity.IsValid() {
			r.Severity = types.SeverityWarning
		}
		r.Severity = r.Severity.AtMost(types.SeverityWarning)
		if r.CheckID == "" {
			r.CheckID = "advisory"
		}
		clamped = append(clamped, r)
	}
	return clamped
}
