package model

import "time"

// Investment represents a single holding. Type references an
// InvestmentType by name, not by id; the binding is loose and may not
// resolve.
type Investment struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Amount       float64   `json:"amount"`
	Type         string    `json:"type,omitempty"`
	Rate         string    `json:"rate,omitempty"`
	StartDate    Date      `json:"startDate"`
	MaturityDate *Date     `json:"maturityDate,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// InvestmentPatch describes a partial update to an investment.
type InvestmentPatch struct {
	Name         *string
	Amount       *float64
	Type         *string
	Rate         *string
	StartDate    *Date
	MaturityDate **Date
}
