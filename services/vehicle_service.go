// File: /services/vehicle_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"

	"github.com/google/uuid"
)

type VehicleInput struct {
	Name               string
	RegistrationNumber string
}

func (in *VehicleInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.RegistrationNumber = strings.ToUpper(strings.TrimSpace(in.RegistrationNumber))
	if in.Name == "" {
		return NewValidationError("name is required")
	}
	return nil
}

type VehicleService struct {
	vehicles *repositories.VehicleRepository
}

func NewVehicleService(vehicles *repositories.VehicleRepository) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) Create(ctx context.Context, in VehicleInput) (*models.Vehicle, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	vehicle := &models.Vehicle{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		RegistrationNumber: in.RegistrationNumber,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

// Get returns the vehicle. Plain users only see vehicles they are grouped with.
func (s *VehicleService) Get(ctx context.Context, caller Caller, id string) (*models.Vehicle, error) {
	vehicle, err := s.vehicles.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load vehicle %s: %w", id, err)
	}

	if !caller.IsAdmin() {
		mine, err := s.vehicles.ListForUser(ctx, caller.ID)
		if err != nil {
			return nil, fmt.Errorf("list vehicles for user %s: %w", caller.ID, err)
		}
		for _, v := range mine {
			if v.ID == id {
				return vehicle, nil
			}
		}
		return nil, ErrForbidden
	}
	return vehicle, nil
}

// List returns every vehicle for admins and the caller's own vehicles otherwise.
func (s *VehicleService) List(ctx context.Context, caller Caller) ([]models.Vehicle, error) {
	if caller.IsAdmin() {
		return s.vehicles.List(ctx)
	}
	return s.vehicles.ListForUser(ctx, caller.ID)
}

func (s *VehicleService) Update(ctx context.Context, id string, in VehicleInput) (*models.Vehicle, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":                in.Name,
		"registration_number": in.RegistrationNumber,
	}
	if err := s.vehicles.Update(ctx, id, updates); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update vehicle %s: %w", id, err)
	}
	return s.vehicles.FindByID(ctx, id)
}

// Delete removes the vehicle with its groups and their expenses.
func (s *VehicleService) Delete(ctx context.Context, id string) error {
	if err := s.vehicles.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete vehicle %s: %w", id, err)
	}
	return nil
}
