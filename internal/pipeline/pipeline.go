// Package pipeline wires one reconciliation run end to end: both
// extractors in parallel, the merge, the invariant checks, then the
// advisory hook. The pipeline owns sequencing and nothing else; each
// stage's rules live in its own package.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/quokkatech/finrecon/internal/advisory"
	"github.com/quokkatech/finrecon/internal/checks"
	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/extract"
	"github.com/quokkatech/finrecon/internal/merge"
	"github.com/quokkatech/finrecon/internal/types"
)

// Options configures one run.
type Options struct {
	Config *config.Config

	// Assessor runs after the checks when non-nil. Its results are
	// advisory and cannot affect finalizability.
	Assessor advisory.Assessor

	// AdvisoryTimeout bounds the assessor. Zero means no bound.
	AdvisoryTimeout time.Duration
}

// Outcome is everything one run produced.
type Outcome struct {
	RunID     uuid.UUID
	Statement *types.MergedStatement
	Results   []types.ValidationResult
}

// Finalizable reports whether the statement may be finalized: no
// non-advisory blocking result remains.
func (o *Outcome) Finalizable() bool {
	return !types.HasBlocking(o.Results)
}

// Renderer is the boundary to whatever produces the output document. The
// caller decides whether to render; the pipeline only reports whether the
// outcome permits it.
type Renderer interface {
	Render(ctx context.Context, m *types.MergedStatement, results []types.ValidationResult) error
}

// Run executes one reconciliation. Extraction failures abort the run;
// check failures never do, they are the run's product.
func Run(ctx context.Context, spreadsheet, prior extract.Extractor, opts Options) (*Outcome, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	runID := uuid.New()
	start := time.Now()
	slog.Info("reconciliation run starting", "run_id", runID)

	var sheetPartial, priorPartial *types.PartialStatement
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sheetPartial, err = spreadsheet.Extract(gctx)
		if err != nil {
			return fmt.Errorf("spreadsheet extraction: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		priorPartial, err = prior.Extract(gctx)
		if err != nil {
			return fmt.Errorf("prior report extraction: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged, mergeResults, err := merge.Resolve(sheetPartial, priorPartial, cfg)
	if err != nil {
		return nil, fmt.Errorf("merging partial statements: %w", err)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("merged statement invalid: %w", err)
	}

	checkResults, err := checks.NewDefault(cfg).RunAll(ctx, merged, cfg)
	if err != nil {
		return nil, fmt.Errorf("running checks: %w", err)
	}

	results := append(mergeResults, checkResults...)
	results = append(results, advisory.Run(ctx, opts.Assessor, merged, opts.AdvisoryTimeout)...)

	outcome := &Outcome{RunID: runID, Statement: merged, Results: results}
	slog.Info("reconciliation run finished",
		"run_id", runID,
		"entity", merged.EntityName,
		"year", merged.FinancialYear,
		"results", len(results),
		"finalizable", outcome.Finalizable(),
		"elapsed", time.Since(start).Round(time.Millisecond))
	return outcome, nil
}

// NewAssessor builds the assessor the config asks for: the model-backed
// client when the hook is enabled, nil otherwise.
func NewAssessor(cfg *config.Config) (advisory.Assessor, error) {
	if !cfg.Advisory.Enabled {
		return nil, nil
	}
	return advisory.NewClient(advisory.ClientConfig{
		Model:              cfg.Advisory.Model,
		MaxConcurrentCalls: cfg.Advisory.MaxConcurrentCalls,
	})
}
