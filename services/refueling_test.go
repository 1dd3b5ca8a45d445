// File: /services/refueling_test.go
package services

import (
	"testing"

	"fleetexpense-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRefuelingMetrics(t *testing.T) {
	tests := []struct {
		name       string
		in         models.Refueling
		wantAmount *float64
		wantRun    float64
		wantAvg    float64
		wantPerKm  float64
	}{
		{
			name:       "amount from price and liters",
			in:         models.Refueling{PricePerLiter: 1.659, Liters: 40, KmStart: 10000, KmEnd: 10600},
			wantAmount: floatPtr(66.36),
			wantRun:    600,
			wantAvg:    15,
			wantPerKm:  0.11,
		},
		{
			name:       "explicit amount kept",
			in:         models.Refueling{ExpenseBase: models.ExpenseBase{Amount: floatPtr(50)}, PricePerLiter: 2, Liters: 30, KmStart: 0, KmEnd: 300},
			wantAmount: floatPtr(50),
			wantRun:    300,
			wantAvg:    10,
			wantPerKm:  0.17,
		},
		{
			name:    "no distance",
			in:      models.Refueling{Liters: 10, KmStart: 500, KmEnd: 500},
			wantRun: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.in
			ComputeRefuelingMetrics(&r)

			if tt.wantAmount == nil {
				assert.Nil(t, r.Amount)
			} else {
				require.NotNil(t, r.Amount)
				assert.Equal(t, *tt.wantAmount, *r.Amount)
			}
			assert.Equal(t, tt.wantRun, r.TotalRun)
			assert.Equal(t, tt.wantAvg, r.Average)
			assert.Equal(t, tt.wantPerKm, r.AvgCostPerKm)
		})
	}
}

func floatPtr(v float64) *float64 { return &v }
