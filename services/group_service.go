// File: /services/group_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"

	"github.com/google/uuid"
)

// GroupService manages the user/vehicle assignments expenses are logged
// against.
type GroupService struct {
	groups   *repositories.GroupRepository
	users    *repositories.UserRepository
	vehicles *repositories.VehicleRepository
}

func NewGroupService(groups *repositories.GroupRepository, users *repositories.UserRepository, vehicles *repositories.VehicleRepository) *GroupService {
	return &GroupService{groups: groups, users: users, vehicles: vehicles}
}

// Assign groups the user with the vehicle. Assigning an existing pair is a
// conflict.
func (s *GroupService) Assign(ctx context.Context, userID, vehicleID string) (*models.Group, error) {
	if userID == "" || vehicleID == "" {
		return nil, NewValidationError("userId and vehicleId are required")
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, wrapLookup(err, "user", userID)
	}
	if _, err := s.vehicles.FindByID(ctx, vehicleID); err != nil {
		return nil, wrapLookup(err, "vehicle", vehicleID)
	}

	_, err := s.groups.FindByPair(ctx, userID, vehicleID)
	if err == nil {
		return nil, fmt.Errorf("%w: group for user %s and vehicle %s", ErrConflict, userID, vehicleID)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("check group: %w", err)
	}

	group := &models.Group{
		ID:        uuid.New().String(),
		UserID:    userID,
		VehicleID: vehicleID,
	}
	if err := s.groups.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return s.groups.FindByID(ctx, group.ID)
}

// List returns every group for admins and the caller's own groups otherwise.
func (s *GroupService) List(ctx context.Context, caller Caller, filter repositories.GroupFilter) ([]models.Group, error) {
	if !caller.IsAdmin() {
		filter.UserID = caller.ID
	}
	return s.groups.Find(ctx, filter)
}

// Delete removes the group and its expense records in one transaction.
func (s *GroupService) Delete(ctx context.Context, id string) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete group %s: %w", id, err)
	}
	return nil
}
