// File: /models/rollup.go
package models

import (
	"time"
)

// DateRange is an inclusive [Start, End] window over expense dates.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

type CategoryShare struct {
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

type ExpenseBreakdown struct {
	Refueling   CategoryShare `json:"refueling"`
	Service     CategoryShare `json:"service"`
	Accessories CategoryShare `json:"accessories"`
	Tax         CategoryShare `json:"tax"`
}

// Share returns a pointer to the slot for the given category.
func (b *ExpenseBreakdown) Share(c ExpenseCategory) *CategoryShare {
	switch c {
	case CategoryRefueling:
		return &b.Refueling
	case CategoryService:
		return &b.Service
	case CategoryAccessories:
		return &b.Accessories
	case CategoryTax:
		return &b.Tax
	}
	return nil
}

// Rollup is the aggregated total and per-category breakdown for one scope.
// ExpenseBreakdown is nil in flat comparison results.
type Rollup struct {
	ID               string            `json:"id,omitempty"`
	Name             string            `json:"name"`
	TotalAmount      float64           `json:"totalAmount"`
	ExpenseBreakdown *ExpenseBreakdown `json:"expenseBreakdown,omitempty"`
}

// Flat drops the breakdown, keeping id, name and total.
func (r Rollup) Flat() Rollup {
	r.ExpenseBreakdown = nil
	return r
}
