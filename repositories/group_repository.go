// File: /repositories/group_repository.go
package repositories

import (
	"context"

	"fleetexpense-api/models"

	"gorm.io/gorm"
)

// GroupFilter narrows a group lookup. Empty fields do not filter; a filter
// with no fields set matches every group.
type GroupFilter struct {
	UserID    string
	VehicleID string
	IDs       []string
}

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) Create(ctx context.Context, group *models.Group) error {
	return r.db.WithContext(ctx).Create(group).Error
}

func (r *GroupRepository) FindByID(ctx context.Context, id string) (*models.Group, error) {
	var group models.Group
	if err := r.db.WithContext(ctx).Preload("User").Preload("Vehicle").First(&group, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *GroupRepository) FindByPair(ctx context.Context, userID, vehicleID string) (*models.Group, error) {
	var group models.Group
	err := r.db.WithContext(ctx).Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).First(&group).Error
	if err != nil {
		return nil, translate(err)
	}
	return &group, nil
}

func (r *GroupRepository) Find(ctx context.Context, filter GroupFilter) ([]models.Group, error) {
	var groups []models.Group
	err := r.scoped(ctx, filter).Preload("User").Preload("Vehicle").Order("created_at ASC").Find(&groups).Error
	return groups, err
}

// IDs returns the ids of the groups matching the filter.
func (r *GroupRepository) IDs(ctx context.Context, filter GroupFilter) ([]string, error) {
	var ids []string
	err := r.scoped(ctx, filter).Model(&models.Group{}).Order("id ASC").Pluck("id", &ids).Error
	return ids, err
}

func (r *GroupRepository) scoped(ctx context.Context, filter GroupFilter) *gorm.DB {
	query := r.db.WithContext(ctx)
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.VehicleID != "" {
		query = query.Where("vehicle_id = ?", filter.VehicleID)
	}
	if filter.IDs != nil {
		query = query.Where("id IN ?", filter.IDs)
	}
	return query
}

// Delete removes the group and its expense records.
func (r *GroupRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var group models.Group
		if err := tx.First(&group, "id = ?", id).Error; err != nil {
			return translate(err)
		}
		return deleteGroups(tx, []string{id})
	})
}
