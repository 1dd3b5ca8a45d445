// File: /services/comparison.go
package services

import (
	"context"
	"fmt"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"

	"golang.org/x/sync/errgroup"
)

type ComparisonMode string

const (
	CompareUsers        ComparisonMode = "users"
	CompareVehicles     ComparisonMode = "vehicles"
	CompareUserVehicles ComparisonMode = "user-vehicle"
	CompareVehicleUsers ComparisonMode = "vehicle-user"
)

// ComparisonRequest lists the entities to compare. UserID/VehicleID hold the
// fixed side of the cross modes.
type ComparisonRequest struct {
	Mode       ComparisonMode
	UserID     string
	VehicleID  string
	UserIDs    []string
	VehicleIDs []string
	Detail     bool
}

func (r ComparisonRequest) Validate() error {
	switch r.Mode {
	case CompareUsers:
		return requireIDs("userIds", r.UserIDs)
	case CompareVehicles:
		return requireIDs("vehicleIds", r.VehicleIDs)
	case CompareUserVehicles:
		if r.UserID == "" {
			return NewValidationError("userId is required")
		}
		return requireIDs("vehicleIds", r.VehicleIDs)
	case CompareVehicleUsers:
		if r.VehicleID == "" {
			return NewValidationError("vehicleId is required")
		}
		return requireIDs("userIds", r.UserIDs)
	}
	return NewValidationError("unknown comparison mode %q", r.Mode)
}

func requireIDs(field string, ids []string) error {
	if len(ids) == 0 {
		return NewValidationError("%s must contain at least one id", field)
	}
	for i, id := range ids {
		if id == "" {
			return NewValidationError("%s[%d] is empty", field, i)
		}
	}
	return nil
}

// comparisonEntry is one column of the matrix before its rollup is summed.
type comparisonEntry struct {
	id     string
	name   string
	filter repositories.GroupFilter
	// owned marks entries narrowed to the caller's own groups; an empty
	// group set there means the caller has no access.
	owned bool
}

// ComputeComparisonMatrix returns one rollup per requested entity, in request
// order. Entities without expenses get a zero rollup.
func (s *RollupService) ComputeComparisonMatrix(ctx context.Context, caller Caller, req ComparisonRequest, window *models.DateRange) ([]models.Rollup, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entries, err := s.comparisonEntries(ctx, caller, req)
	if err != nil {
		return nil, err
	}

	results := make([]models.Rollup, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, entry := range entries {
		g.Go(func() error {
			groupIDs, err := s.scopes.GroupIDs(gctx, entry.filter)
			if err != nil {
				return fmt.Errorf("list groups for %s: %w", entry.id, err)
			}
			if entry.owned && len(groupIDs) == 0 {
				return ErrForbidden
			}

			breakdown, total, err := s.sumGroups(gctx, groupIDs, window)
			if err != nil {
				return err
			}

			results[i] = models.Rollup{
				ID:               entry.id,
				Name:             entry.name,
				TotalAmount:      total,
				ExpenseBreakdown: breakdown,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if !req.Detail {
		for i := range results {
			results[i] = results[i].Flat()
		}
	}
	return results, nil
}

func (s *RollupService) comparisonEntries(ctx context.Context, caller Caller, req ComparisonRequest) ([]comparisonEntry, error) {
	switch req.Mode {
	case CompareUsers:
		if err := requireSelf(caller, req.UserIDs...); err != nil {
			return nil, err
		}
		users, err := s.loadUsers(ctx, req.UserIDs)
		if err != nil {
			return nil, err
		}
		entries := make([]comparisonEntry, len(req.UserIDs))
		for i, id := range req.UserIDs {
			entries[i] = comparisonEntry{id: id, name: users[id].Name, filter: repositories.GroupFilter{UserID: id}}
		}
		return entries, nil

	case CompareVehicles:
		vehicles, err := s.loadVehicles(ctx, req.VehicleIDs)
		if err != nil {
			return nil, err
		}
		entries := make([]comparisonEntry, len(req.VehicleIDs))
		for i, id := range req.VehicleIDs {
			entry := comparisonEntry{id: id, name: vehicles[id].Name, filter: repositories.GroupFilter{VehicleID: id}}
			if !caller.IsAdmin() {
				entry.filter.UserID = caller.ID
				entry.owned = true
			}
			entries[i] = entry
		}
		return entries, nil

	case CompareUserVehicles:
		if err := requireSelf(caller, req.UserID); err != nil {
			return nil, err
		}
		if _, err := s.loadUsers(ctx, []string{req.UserID}); err != nil {
			return nil, err
		}
		vehicles, err := s.loadVehicles(ctx, req.VehicleIDs)
		if err != nil {
			return nil, err
		}
		entries := make([]comparisonEntry, len(req.VehicleIDs))
		for i, id := range req.VehicleIDs {
			entries[i] = comparisonEntry{
				id:     id,
				name:   vehicles[id].Name,
				filter: repositories.GroupFilter{UserID: req.UserID, VehicleID: id},
			}
		}
		return entries, nil

	case CompareVehicleUsers:
		if err := requireSelf(caller, req.UserIDs...); err != nil {
			return nil, err
		}
		if _, err := s.loadVehicles(ctx, []string{req.VehicleID}); err != nil {
			return nil, err
		}
		users, err := s.loadUsers(ctx, req.UserIDs)
		if err != nil {
			return nil, err
		}
		entries := make([]comparisonEntry, len(req.UserIDs))
		for i, id := range req.UserIDs {
			entries[i] = comparisonEntry{
				id:     id,
				name:   users[id].Name,
				filter: repositories.GroupFilter{UserID: id, VehicleID: req.VehicleID},
			}
		}
		return entries, nil
	}

	return nil, NewValidationError("unknown comparison mode %q", req.Mode)
}

// requireSelf rejects non-admin callers asking about any user but themselves.
func requireSelf(caller Caller, userIDs ...string) error {
	if caller.IsAdmin() {
		return nil
	}
	for _, id := range userIDs {
		if id != caller.ID {
			return ErrForbidden
		}
	}
	return nil
}

func (s *RollupService) loadUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	users, err := s.scopes.FindUsers(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	if missing := missingKeys(users, ids); len(missing) > 0 {
		return nil, scopeNotFound("user", missing...)
	}
	return users, nil
}

func (s *RollupService) loadVehicles(ctx context.Context, ids []string) (map[string]models.Vehicle, error) {
	vehicles, err := s.scopes.FindVehicles(ctx, dedupe(ids))
	if err != nil {
		return nil, fmt.Errorf("load vehicles: %w", err)
	}
	if missing := missingKeys(vehicles, ids); len(missing) > 0 {
		return nil, scopeNotFound("vehicle", missing...)
	}
	return vehicles, nil
}

func missingKeys[V any](found map[string]V, ids []string) []string {
	var missing []string
	for _, id := range dedupe(ids) {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

// VehiclesWithTotalAmount returns every vehicle with its unbroken-down total.
func (s *RollupService) VehiclesWithTotalAmount(ctx context.Context, caller Caller, vehicles []models.Vehicle, window *models.DateRange) ([]models.Rollup, error) {
	if len(vehicles) == 0 {
		return []models.Rollup{}, nil
	}
	ids := make([]string, len(vehicles))
	for i, v := range vehicles {
		ids[i] = v.ID
	}
	return s.ComputeComparisonMatrix(ctx, caller, ComparisonRequest{Mode: CompareVehicles, VehicleIDs: ids}, window)
}

// UsersWithTotalAmount returns every user with their unbroken-down total.
func (s *RollupService) UsersWithTotalAmount(ctx context.Context, caller Caller, users []models.User, window *models.DateRange) ([]models.Rollup, error) {
	if len(users) == 0 {
		return []models.Rollup{}, nil
	}
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	return s.ComputeComparisonMatrix(ctx, caller, ComparisonRequest{Mode: CompareUsers, UserIDs: ids}, window)
}
