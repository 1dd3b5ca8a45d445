// File: /repositories/vehicle_repository.go
package repositories

import (
	"context"

	"fleetexpense-api/models"

	"gorm.io/gorm"
)

type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &vehicle, nil
}

func (r *VehicleRepository) FindByIDs(ctx context.Context, ids []string) (map[string]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&vehicles).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]models.Vehicle, len(vehicles))
	for _, v := range vehicles {
		byID[v.ID] = v
	}
	return byID, nil
}

func (r *VehicleRepository) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).Order("name ASC").Find(&vehicles).Error
	return vehicles, err
}

// ListForUser returns the vehicles the user is grouped with.
func (r *VehicleRepository) ListForUser(ctx context.Context, userID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.db.WithContext(ctx).
		Joins("JOIN vehicle_groups ON vehicle_groups.vehicle_id = vehicles.id").
		Where("vehicle_groups.user_id = ?", userID).
		Order("vehicles.name ASC").
		Find(&vehicles).Error
	return vehicles, err
}

func (r *VehicleRepository) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Delete removes the vehicle together with its groups and expense records.
func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var vehicle models.Vehicle
		if err := tx.First(&vehicle, "id = ?", id).Error; err != nil {
			return translate(err)
		}

		groupIDs, err := groupIDsWhere(tx, "vehicle_id = ?", id)
		if err != nil {
			return err
		}
		if err := deleteGroups(tx, groupIDs); err != nil {
			return err
		}

		return tx.Delete(&vehicle).Error
	})
}
