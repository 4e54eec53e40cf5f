package models

import (
	"time"

	"github.com/google/uuid"
)

// PropertyReport is the straight-line financial summary for one property.
type PropertyReport struct {
	PropertyID      uuid.UUID `json:"property_id"`
	Address         string    `json:"address"`
	TotalIncome     float64   `json:"total_income"`
	TotalExpenses   float64   `json:"total_expenses"`
	RenovationCosts float64   `json:"renovation_costs"`
	NetCashFlow     float64   `json:"net_cash_flow"`
	PrincipalAmount float64   `json:"principal_amount"`
	RateOfInterest  float64   `json:"rate_of_interest"`
	// ReturnOnInvestment is net cash flow over principal, as a percentage.
	// Zero when no principal is recorded.
	ReturnOnInvestment float64 `json:"return_on_investment"`
	// AnnualizedROI divides ReturnOnInvestment by the years held since
	// acquisition (floored at one year).
	AnnualizedROI float64   `json:"annualized_roi"`
	GeneratedAt   time.Time `json:"generated_at"`
}
