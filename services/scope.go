// File: /services/scope.go
package services

import (
	"context"
	"errors"
	"fmt"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"
)

// Caller is the authenticated identity a request runs as.
type Caller struct {
	ID    string
	Email string
	Role  models.Role
}

func (c Caller) IsAdmin() bool {
	return c.Role == models.RoleAdmin
}

type ScopeKind string

const (
	ScopeAll     ScopeKind = "all"
	ScopeUser    ScopeKind = "user"
	ScopeVehicle ScopeKind = "vehicle"
	ScopeGroups  ScopeKind = "groups"
	ScopePair    ScopeKind = "pair"
)

// Scope selects the set of groups a rollup sums over.
type Scope struct {
	Kind      ScopeKind
	UserID    string
	VehicleID string
	GroupIDs  []string
}

func AllScope() Scope { return Scope{Kind: ScopeAll} }
func UserScope(userID string) Scope { return Scope{Kind: ScopeUser, UserID: userID} }
func VehicleScope(vehicleID string) Scope { return Scope{Kind: ScopeVehicle, VehicleID: vehicleID} }
func GroupsScope(groupIDs []string) Scope { return Scope{Kind: ScopeGroups, GroupIDs: groupIDs} }

func PairScope(userID, vehicleID string) Scope {
	return Scope{Kind: ScopePair, UserID: userID, VehicleID: vehicleID}
}

// ScopeStore is the read side of users, vehicles and groups the rollup
// engine resolves scopes against. Lookups return repositories.ErrNotFound
// for missing rows.
type ScopeStore interface {
	FindUser(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUsers(ctx context.Context, ids []string) (map[string]models.User, error)
	FindVehicle(ctx context.Context, id string) (*models.Vehicle, error)
	FindVehicles(ctx context.Context, ids []string) (map[string]models.Vehicle, error)
	FindGroups(ctx context.Context, ids []string) ([]models.Group, error)
	GroupIDs(ctx context.Context, filter repositories.GroupFilter) ([]string, error)
}

type repositoryScopeStore struct {
	users    *repositories.UserRepository
	vehicles *repositories.VehicleRepository
	groups   *repositories.GroupRepository
}

// NewScopeStore adapts the gorm repositories to ScopeStore.
func NewScopeStore(users *repositories.UserRepository, vehicles *repositories.VehicleRepository, groups *repositories.GroupRepository) ScopeStore {
	return &repositoryScopeStore{users: users, vehicles: vehicles, groups: groups}
}

func (s *repositoryScopeStore) FindUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *repositoryScopeStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *repositoryScopeStore) FindUsers(ctx context.Context, ids []string) (map[string]models.User, error) {
	return s.users.FindByIDs(ctx, ids)
}

func (s *repositoryScopeStore) FindVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	return s.vehicles.FindByID(ctx, id)
}

func (s *repositoryScopeStore) FindVehicles(ctx context.Context, ids []string) (map[string]models.Vehicle, error) {
	return s.vehicles.FindByIDs(ctx, ids)
}

func (s *repositoryScopeStore) FindGroups(ctx context.Context, ids []string) ([]models.Group, error) {
	return s.groups.Find(ctx, repositories.GroupFilter{IDs: ids})
}

func (s *repositoryScopeStore) GroupIDs(ctx context.Context, filter repositories.GroupFilter) ([]string, error) {
	return s.groups.IDs(ctx, filter)
}

// resolvedScope is a scope after existence and access checks.
type resolvedScope struct {
	id       string
	name     string
	groupIDs []string
}

// resolve checks that the scope exists and that the caller may see it, and
// returns its group set. Non-admin callers are held to their own groups.
func resolve(ctx context.Context, store ScopeStore, caller Caller, scope Scope) (resolvedScope, error) {
	switch scope.Kind {
	case ScopeAll:
		if !caller.IsAdmin() {
			return resolvedScope{}, ErrForbidden
		}
		ids, err := store.GroupIDs(ctx, repositories.GroupFilter{})
		if err != nil {
			return resolvedScope{}, fmt.Errorf("list groups: %w", err)
		}
		return resolvedScope{name: "All vehicles", groupIDs: ids}, nil

	case ScopeUser:
		if !caller.IsAdmin() && scope.UserID != caller.ID {
			return resolvedScope{}, ErrForbidden
		}
		user, err := store.FindUser(ctx, scope.UserID)
		if err != nil {
			return resolvedScope{}, wrapLookup(err, "user", scope.UserID)
		}
		ids, err := store.GroupIDs(ctx, repositories.GroupFilter{UserID: user.ID})
		if err != nil {
			return resolvedScope{}, fmt.Errorf("list groups for user %s: %w", user.ID, err)
		}
		return resolvedScope{id: user.ID, name: user.Name, groupIDs: ids}, nil

	case ScopeVehicle:
		vehicle, err := store.FindVehicle(ctx, scope.VehicleID)
		if err != nil {
			return resolvedScope{}, wrapLookup(err, "vehicle", scope.VehicleID)
		}
		filter := repositories.GroupFilter{VehicleID: vehicle.ID}
		if !caller.IsAdmin() {
			filter.UserID = caller.ID
		}
		ids, err := store.GroupIDs(ctx, filter)
		if err != nil {
			return resolvedScope{}, fmt.Errorf("list groups for vehicle %s: %w", vehicle.ID, err)
		}
		if !caller.IsAdmin() && len(ids) == 0 {
			return resolvedScope{}, ErrForbidden
		}
		return resolvedScope{id: vehicle.ID, name: vehicle.Name, groupIDs: ids}, nil

	case ScopePair:
		if !caller.IsAdmin() && scope.UserID != caller.ID {
			return resolvedScope{}, ErrForbidden
		}
		user, err := store.FindUser(ctx, scope.UserID)
		if err != nil {
			return resolvedScope{}, wrapLookup(err, "user", scope.UserID)
		}
		vehicle, err := store.FindVehicle(ctx, scope.VehicleID)
		if err != nil {
			return resolvedScope{}, wrapLookup(err, "vehicle", scope.VehicleID)
		}
		ids, err := store.GroupIDs(ctx, repositories.GroupFilter{UserID: user.ID, VehicleID: vehicle.ID})
		if err != nil {
			return resolvedScope{}, fmt.Errorf("list groups for pair %s/%s: %w", user.ID, vehicle.ID, err)
		}
		return resolvedScope{id: vehicle.ID, name: user.Name + " / " + vehicle.Name, groupIDs: ids}, nil

	case ScopeGroups:
		return resolveGroups(ctx, store, caller, scope.GroupIDs)
	}

	return resolvedScope{}, NewValidationError("unknown scope kind %q", scope.Kind)
}

func resolveGroups(ctx context.Context, store ScopeStore, caller Caller, groupIDs []string) (resolvedScope, error) {
	unique := dedupe(groupIDs)
	if len(unique) == 0 {
		return resolvedScope{}, NewValidationError("groupIds must not be empty")
	}

	groups, err := store.FindGroups(ctx, unique)
	if err != nil {
		return resolvedScope{}, fmt.Errorf("load groups: %w", err)
	}

	found := make(map[string]models.Group, len(groups))
	for _, g := range groups {
		found[g.ID] = g
	}
	var missing []string
	for _, id := range unique {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return resolvedScope{}, scopeNotFound("group", missing...)
	}

	if !caller.IsAdmin() {
		for _, g := range groups {
			if g.UserID != caller.ID {
				return resolvedScope{}, ErrForbidden
			}
		}
	}

	name := fmt.Sprintf("%d groups", len(unique))
	id := ""
	if len(unique) == 1 {
		g := found[unique[0]]
		id = g.ID
		name = g.User.Name + " / " + g.Vehicle.Name
	}
	return resolvedScope{id: id, name: name, groupIDs: unique}, nil
}

func wrapLookup(err error, kind, id string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return scopeNotFound(kind, id)
	}
	return fmt.Errorf("load %s %s: %w", kind, id, err)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
