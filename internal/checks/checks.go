// Package checks houses the invariant engine: named checks over a merged
// statement, each producing exactly one result. Every registered check
// runs on every pass; a blocking failure never short-circuits the rest,
// so one run reports everything that is wrong at once.
package checks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/quokkatech/finrecon/internal/config"
	"github.com/quokkatech/finrecon/internal/money"
	"github.com/quokkatech/finrecon/internal/types"
)

// Class is a check's severity ceiling on failure.
type Class string

const (
	// ClassBlocking checks fail hard; no override can soften them.
	ClassBlocking Class = "blocking"
	// ClassConfirmable checks fail blocking unless the run carries an
	// explicit confirmation for the check, which downgrades the failure
	// to a recorded warning.
	ClassConfirmable Class = "blocking_unless_confirmed"
	// ClassWarning checks never block finalization.
	ClassWarning Class = "warning"
)

// Check is one invariant over a merged statement. Evaluate must treat the
// statement as read-only and must return a result rather than panic on
// incomplete data; an unverifiable invariant is a failure of its class,
// not a crash.
type Check interface {
	ID() string
	Class() Class
	Evaluate(ctx context.Context, m *types.MergedStatement) types.ValidationResult
}

// Registry holds the checks for a run in registration order. Result order
// is registration order regardless of which check finishes first.
type Registry struct {
	checks []Check
	ids    map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Register adds a check. Duplicate IDs are rejected.
func (r *Registry) Register(c Check) error {
	if _, dup := r.ids[c.ID()]; dup {
		return fmt.Errorf("check %q already registered", c.ID())
	}
	r.ids[c.ID()] = struct{}{}
	r.checks = append(r.checks, c)
	return nil
}

// Checks returns the registered checks in registration order.
func (r *Registry) Checks() []Check {
	return r.checks
}

// NewDefault builds the standard registry, honoring per-check enablement
// from config. Registration order is fixed so reports read the same way
// run to run.
func NewDefault(cfg *config.Config) *Registry {
	r := NewRegistry()
	for _, c := range []Check{
		&BalanceEquation{},
		&RetainedEarningsRollforward{},
		&NoteContinuity{},
		&HeadEntityContinuity{},
		&ContingentLiabilityContinuity{},
		&DirectorContinuity{},
		&LegacyAccountClosure{Accounts: cfg.ClosedAccounts},
		&RelatedPartySplit{Rule: cfg.RelatedPartyRule},
		&DeferredTaxNote{NoteAliases: cfg.TaxNoteAliases},
		&PriorFigureCrossCheck{},
	} {
		if !cfg.CheckEnabled(c.ID()) {
			continue
		}
		// IDs are statically distinct.
		_ = r.Register(c)
	}
	return r
}

// RunAll evaluates every check concurrently and returns one result per
// check in registration order. Confirmations downgrade confirmable
// blocking failures to warnings, with the override recorded on the
// result.
func (r *Registry) RunAll(ctx context.Context, m *types.MergedStatement, cfg *config.Config) ([]types.ValidationResult, error) {
	results := make([]types.ValidationResult, len(r.checks))

	g, ctx := errgroup.WithContext(ctx)
	for i, c := range r.checks {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := c.Evaluate(ctx, m)
			res.CheckID = c.ID()
			if c.Class() == ClassConfirmable && res.Severity == types.SeverityBlocking && cfg.Confirmed(c.ID()) {
				res.Severity = types.SeverityWarning
				res.Confirmed = true
				res.Message += " (accepted by override)"
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func fmtAmount(v int64) string {
	return money.Format(money.FromInt(v))
}

func joinKeys(keys []string) string {
	return strings.Join(keys, ", ")
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
