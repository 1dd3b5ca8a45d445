// File: /repositories/expense_repository.go
package repositories

import (
	"context"
	"database/sql"
	"time"

	"fleetexpense-api/models"

	"gorm.io/gorm"
)

type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

func (r *ExpenseRepository) Create(ctx context.Context, record models.ExpenseRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ExpenseRepository) FindByID(ctx context.Context, category models.ExpenseCategory, id string) (models.ExpenseRecord, error) {
	record := category.NewRecord()
	if err := r.db.WithContext(ctx).First(record, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return record, nil
}

// List returns the category's records in the given groups, newest first.
func (r *ExpenseRepository) List(ctx context.Context, category models.ExpenseCategory, groupIDs []string, window *models.DateRange) (interface{}, error) {
	query := r.filtered(ctx, groupIDs, window).Order("date DESC, id ASC")

	var out interface{}
	switch category {
	case models.CategoryRefueling:
		out = &[]models.Refueling{}
	case models.CategoryService:
		out = &[]models.Service{}
	case models.CategoryAccessories:
		out = &[]models.Accessory{}
	default:
		out = &[]models.Tax{}
	}

	if err := query.Find(out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Save writes every column of an existing record.
func (r *ExpenseRepository) Save(ctx context.Context, record models.ExpenseRecord) error {
	return r.db.WithContext(ctx).Save(record).Error
}

func (r *ExpenseRepository) Delete(ctx context.Context, record models.ExpenseRecord) error {
	return r.db.WithContext(ctx).Delete(record).Error
}

// Amounts returns the amount column of every record of the category in the
// given groups, optionally limited to an inclusive date window. Rows come
// back in date order so sums are reproducible.
func (r *ExpenseRepository) Amounts(ctx context.Context, category models.ExpenseCategory, groupIDs []string, window *models.DateRange) ([]sql.NullFloat64, error) {
	if len(groupIDs) == 0 {
		return nil, nil
	}

	var amounts []sql.NullFloat64
	err := r.filtered(ctx, groupIDs, window).
		Table(category.TableName()).
		Order("date ASC, id ASC").
		Pluck("amount", &amounts).Error
	return amounts, err
}

// ExpiringTaxes returns tax records whose validity ends within (from, to].
func (r *ExpenseRepository) ExpiringTaxes(ctx context.Context, from, to time.Time) ([]models.Tax, error) {
	var taxes []models.Tax
	err := r.db.WithContext(ctx).
		Where("valid_to > ? AND valid_to <= ?", from, to).
		Order("valid_to ASC").
		Find(&taxes).Error
	return taxes, err
}

func (r *ExpenseRepository) filtered(ctx context.Context, groupIDs []string, window *models.DateRange) *gorm.DB {
	query := r.db.WithContext(ctx).Where("group_id IN ?", groupIDs)
	if window != nil {
		query = query.Where("date >= ? AND date <= ?", window.Start, window.End)
	}
	return query
}
