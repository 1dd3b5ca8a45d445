// File: /services/refueling.go
package services

import (
	"fleetexpense-api/models"

	"github.com/shopspring/decimal"
)

// ComputeRefuelingMetrics fills the derived refueling columns: the amount
// (when not given) from price and liters, the distance run, km per liter and
// cost per km. Values are rounded to 2 decimals.
func ComputeRefuelingMetrics(r *models.Refueling) {
	price := decimal.NewFromFloat(r.PricePerLiter)
	liters := decimal.NewFromFloat(r.Liters)

	if r.Amount == nil && r.PricePerLiter > 0 && r.Liters > 0 {
		amount, _ := price.Mul(liters).Round(2).Float64()
		r.Amount = &amount
	}

	run := decimal.NewFromFloat(r.KmEnd).Sub(decimal.NewFromFloat(r.KmStart))
	r.TotalRun, _ = run.Round(2).Float64()

	r.Average = 0
	if run.IsPositive() && liters.IsPositive() {
		r.Average, _ = run.Div(liters).Round(2).Float64()
	}

	r.AvgCostPerKm = 0
	if run.IsPositive() && r.Amount != nil {
		r.AvgCostPerKm, _ = decimal.NewFromFloat(*r.Amount).Div(run).Round(2).Float64()
	}
}
