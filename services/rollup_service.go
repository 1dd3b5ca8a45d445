// File: /services/rollup_service.go
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"

	"golang.org/x/sync/errgroup"
)

// AmountStore reads the raw amount column of one expense category.
type AmountStore interface {
	Amounts(ctx context.Context, category models.ExpenseCategory, groupIDs []string, window *models.DateRange) ([]sql.NullFloat64, error)
}

// RollupService computes expense rollups and comparison matrices. It holds
// no state between calls; every result is read fresh from the stores.
type RollupService struct {
	scopes      ScopeStore
	amounts     AmountStore
	concurrency int
}

func NewRollupService(scopes ScopeStore, amounts AmountStore, concurrency int) *RollupService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &RollupService{
		scopes:      scopes,
		amounts:     amounts,
		concurrency: concurrency,
	}
}

// ComputeRollup returns the total and per-category breakdown for the scope,
// limited to window when it is non-nil.
func (s *RollupService) ComputeRollup(ctx context.Context, caller Caller, scope Scope, window *models.DateRange) (*models.Rollup, error) {
	resolved, err := resolve(ctx, s.scopes, caller, scope)
	if err != nil {
		return nil, err
	}

	breakdown, total, err := s.sumGroups(ctx, resolved.groupIDs, window)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Computed rollup",
		"scope", scope.Kind,
		"scope_id", resolved.id,
		"groups", len(resolved.groupIDs),
		"total", total)

	return &models.Rollup{
		ID:               resolved.id,
		Name:             resolved.name,
		TotalAmount:      total,
		ExpenseBreakdown: breakdown,
	}, nil
}

// RollupByUserEmail is ComputeRollup for the user with the given email.
// Emails are matched case-insensitively, the way accounts store them.
func (s *RollupService) RollupByUserEmail(ctx context.Context, caller Caller, email string, window *models.DateRange) (*models.Rollup, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, NewValidationError("email is required")
	}
	if !caller.IsAdmin() && email != strings.ToLower(caller.Email) {
		return nil, ErrForbidden
	}

	user, err := s.scopes.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, scopeNotFound("user", email)
		}
		return nil, fmt.Errorf("load user by email: %w", err)
	}

	return s.ComputeRollup(ctx, caller, UserScope(user.ID), window)
}

// sumGroups fetches the four categories concurrently and folds them into a
// breakdown. Any failed fetch fails the whole rollup.
func (s *RollupService) sumGroups(ctx context.Context, groupIDs []string, window *models.DateRange) (*models.ExpenseBreakdown, float64, error) {
	sums := make([]float64, len(models.ExpenseCategories))

	if len(groupIDs) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for i, category := range models.ExpenseCategories {
			g.Go(func() error {
				amounts, err := s.amounts.Amounts(gctx, category, groupIDs, window)
				if err != nil {
					return fmt.Errorf("sum %s: %w", category, err)
				}
				sums[i] = SumAmounts(amounts)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, 0, err
		}
	}

	byCategory := make(map[models.ExpenseCategory]float64, len(sums))
	for i, category := range models.ExpenseCategories {
		byCategory[category] = sums[i]
	}
	breakdown, total := BuildBreakdown(byCategory)
	return breakdown, total, nil
}

// SumAmounts adds the amounts in order, counting NULL as zero.
func SumAmounts(amounts []sql.NullFloat64) float64 {
	var sum float64
	for _, a := range amounts {
		if a.Valid {
			sum += a.Float64
		}
	}
	return sum
}

// BuildBreakdown turns per-category sums into amounts and percentages. The
// total is the sum of the four categories; every percentage is 0 when the
// total is 0.
func BuildBreakdown(sums map[models.ExpenseCategory]float64) (*models.ExpenseBreakdown, float64) {
	var total float64
	for _, category := range models.ExpenseCategories {
		total += sums[category]
	}

	breakdown := &models.ExpenseBreakdown{}
	for _, category := range models.ExpenseCategories {
		share := breakdown.Share(category)
		share.Amount = sums[category]
		if total > 0 {
			share.Percentage = sums[category] / total * 100
		}
	}
	return breakdown, total
}
