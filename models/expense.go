// File: /models/expense.go
package models

import (
	"fmt"
	"time"
)

type ExpenseCategory string

const (
	CategoryRefueling   ExpenseCategory = "refueling"
	CategoryService     ExpenseCategory = "service"
	CategoryAccessories ExpenseCategory = "accessories"
	CategoryTax         ExpenseCategory = "tax"
)

// ExpenseCategories is the fixed order in which rollups visit the categories.
var ExpenseCategories = []ExpenseCategory{
	CategoryRefueling,
	CategoryService,
	CategoryAccessories,
	CategoryTax,
}

func ParseExpenseCategory(s string) (ExpenseCategory, error) {
	for _, c := range ExpenseCategories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown expense category %q", s)
}

// TableName returns the table holding records of the category.
func (c ExpenseCategory) TableName() string {
	switch c {
	case CategoryRefueling:
		return "refuelings"
	case CategoryService:
		return "services"
	case CategoryAccessories:
		return "accessories"
	case CategoryTax:
		return "taxes"
	}
	return ""
}

// NewRecord returns an empty record of the category's concrete type.
func (c ExpenseCategory) NewRecord() ExpenseRecord {
	switch c {
	case CategoryRefueling:
		return &Refueling{}
	case CategoryService:
		return &Service{}
	case CategoryAccessories:
		return &Accessory{}
	case CategoryTax:
		return &Tax{}
	}
	return nil
}

// ExpenseBase holds the columns shared by every expense table. Amount is
// nullable; rollups count a NULL amount as zero.
type ExpenseBase struct {
	ID        string    `json:"id" gorm:"primaryKey;size:191"`
	GroupID   string    `json:"group_id" gorm:"not null;size:191;index"`
	Amount    *float64  `json:"amount"`
	Date      time.Time `json:"date" gorm:"not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *ExpenseBase) Base() *ExpenseBase {
	return b
}

// ExpenseRecord is implemented by the four expense models.
type ExpenseRecord interface {
	Base() *ExpenseBase
	Category() ExpenseCategory
}

type Refueling struct {
	ExpenseBase
	PricePerLiter float64 `json:"price_per_liter"`
	Liters        float64 `json:"liters"`
	KmStart       float64 `json:"km_start"`
	KmEnd         float64 `json:"km_end"`
	TotalRun      float64 `json:"total_run"`
	Average       float64 `json:"average"`
	AvgCostPerKm  float64 `json:"avg_cost_per_km"`
}

func (Refueling) TableName() string         { return CategoryRefueling.TableName() }
func (Refueling) Category() ExpenseCategory { return CategoryRefueling }

type Service struct {
	ExpenseBase
	ServiceType string `json:"service_type" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`
}

func (Service) TableName() string         { return CategoryService.TableName() }
func (Service) Category() ExpenseCategory { return CategoryService }

type Accessory struct {
	ExpenseBase
	Name        string `json:"name" gorm:"size:255"`
	Description string `json:"description" gorm:"type:text"`
}

func (Accessory) TableName() string         { return CategoryAccessories.TableName() }
func (Accessory) Category() ExpenseCategory { return CategoryAccessories }

type Tax struct {
	ExpenseBase
	TaxType   string     `json:"tax_type" gorm:"size:100"`
	ValidFrom *time.Time `json:"valid_from"`
	ValidTo   *time.Time `json:"valid_to" gorm:"index"`
}

func (Tax) TableName() string         { return CategoryTax.TableName() }
func (Tax) Category() ExpenseCategory { return CategoryTax }
