// File: /services/expense_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fleetexpense-api/models"
	"fleetexpense-api/repositories"

	"github.com/google/uuid"
)

// ExpenseInput carries the fields of any expense category. Fields that do
// not belong to the target category are ignored.
type ExpenseInput struct {
	GroupID string
	Amount  *float64
	Date    time.Time

	PricePerLiter float64
	Liters        float64
	KmStart       float64
	KmEnd         float64

	ServiceType string
	Name        string
	Description string

	TaxType   string
	ValidFrom *time.Time
	ValidTo   *time.Time
}

func (in ExpenseInput) validate(category models.ExpenseCategory) error {
	if in.GroupID == "" {
		return NewValidationError("group_id is required")
	}
	if in.Date.IsZero() {
		return NewValidationError("date is required")
	}
	if in.Amount != nil && *in.Amount < 0 {
		return NewValidationError("amount must not be negative")
	}

	switch category {
	case models.CategoryRefueling:
		if in.PricePerLiter < 0 || in.Liters < 0 {
			return NewValidationError("price_per_liter and liters must not be negative")
		}
		if in.KmEnd < in.KmStart {
			return NewValidationError("km_end must not be lower than km_start")
		}
	case models.CategoryTax:
		if in.ValidFrom != nil && in.ValidTo != nil && in.ValidTo.Before(*in.ValidFrom) {
			return NewValidationError("valid_to must not be before valid_from")
		}
	}
	return nil
}

// apply copies the input onto record, keeping its id.
func (in ExpenseInput) apply(record models.ExpenseRecord) {
	base := record.Base()
	base.GroupID = in.GroupID
	base.Amount = in.Amount
	base.Date = in.Date

	switch r := record.(type) {
	case *models.Refueling:
		r.PricePerLiter = in.PricePerLiter
		r.Liters = in.Liters
		r.KmStart = in.KmStart
		r.KmEnd = in.KmEnd
		ComputeRefuelingMetrics(r)
	case *models.Service:
		r.ServiceType = in.ServiceType
		r.Description = in.Description
	case *models.Accessory:
		r.Name = in.Name
		r.Description = in.Description
	case *models.Tax:
		r.TaxType = in.TaxType
		r.ValidFrom = in.ValidFrom
		r.ValidTo = in.ValidTo
	}
}

type ExpenseService struct {
	expenses *repositories.ExpenseRepository
	groups   *repositories.GroupRepository
}

func NewExpenseService(expenses *repositories.ExpenseRepository, groups *repositories.GroupRepository) *ExpenseService {
	return &ExpenseService{expenses: expenses, groups: groups}
}

func (s *ExpenseService) Create(ctx context.Context, caller Caller, category models.ExpenseCategory, in ExpenseInput) (models.ExpenseRecord, error) {
	if err := in.validate(category); err != nil {
		return nil, err
	}
	if err := s.authorizeGroup(ctx, caller, in.GroupID); err != nil {
		return nil, err
	}

	record := category.NewRecord()
	in.apply(record)
	record.Base().ID = uuid.New().String()

	if err := s.expenses.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("create %s: %w", category, err)
	}
	return record, nil
}

func (s *ExpenseService) Get(ctx context.Context, caller Caller, category models.ExpenseCategory, id string) (models.ExpenseRecord, error) {
	record, err := s.expenses.FindByID(ctx, category, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load %s %s: %w", category, id, err)
	}
	if err := s.authorizeGroup(ctx, caller, record.Base().GroupID); err != nil {
		return nil, err
	}
	return record, nil
}

// List returns the category's records visible to the caller, optionally for
// one group and date window.
func (s *ExpenseService) List(ctx context.Context, caller Caller, category models.ExpenseCategory, groupID string, window *models.DateRange) (interface{}, error) {
	var groupIDs []string
	if groupID != "" {
		if err := s.authorizeGroup(ctx, caller, groupID); err != nil {
			return nil, err
		}
		groupIDs = []string{groupID}
	} else {
		filter := repositories.GroupFilter{}
		if !caller.IsAdmin() {
			filter.UserID = caller.ID
		}
		ids, err := s.groups.IDs(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("list groups: %w", err)
		}
		groupIDs = ids
	}

	if len(groupIDs) == 0 {
		return []struct{}{}, nil
	}
	return s.expenses.List(ctx, category, groupIDs, window)
}

func (s *ExpenseService) Update(ctx context.Context, caller Caller, category models.ExpenseCategory, id string, in ExpenseInput) (models.ExpenseRecord, error) {
	if err := in.validate(category); err != nil {
		return nil, err
	}

	record, err := s.Get(ctx, caller, category, id)
	if err != nil {
		return nil, err
	}
	if in.GroupID != record.Base().GroupID {
		if err := s.authorizeGroup(ctx, caller, in.GroupID); err != nil {
			return nil, err
		}
	}

	in.apply(record)
	if err := s.expenses.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("update %s %s: %w", category, id, err)
	}
	return record, nil
}

func (s *ExpenseService) Delete(ctx context.Context, caller Caller, category models.ExpenseCategory, id string) error {
	record, err := s.Get(ctx, caller, category, id)
	if err != nil {
		return err
	}
	if err := s.expenses.Delete(ctx, record); err != nil {
		return fmt.Errorf("delete %s %s: %w", category, id, err)
	}
	return nil
}

func (s *ExpenseService) authorizeGroup(ctx context.Context, caller Caller, groupID string) error {
	group, err := s.groups.FindByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return scopeNotFound("group", groupID)
		}
		return fmt.Errorf("load group %s: %w", groupID, err)
	}
	if !caller.IsAdmin() && group.UserID != caller.ID {
		return ErrForbidden
	}
	return nil
}
