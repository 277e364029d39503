// Package allocation turns submitted assignments into allocations with
// derived hours and costs.
package allocation

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/internal/types"
)

// HoursPerDay is the number of working hours in a full working day.
const HoursPerDay = 8

var hundred = decimal.NewFromInt(100)

// Assignment is one person's requested allocation to a project.
type Assignment struct {
	PersonEID   string              `json:"personId"`
	Percentage  decimal.NullDecimal `json:"percentage" swaggertype:"number" example:"50"`
	BillingRate decimal.NullDecimal `json:"billingRate" swaggertype:"number" example:"100"`
	StartDate   types.Date          `json:"startDate" swaggertype:"string" example:"2024-04-01"`
	EndDate     types.Date          `json:"endDate" swaggertype:"string" example:"2024-04-03"`
	Role        string              `json:"role,omitempty" example:"Project Manager"` // Membership role to set. Existing roles are kept when empty
}

// Batch is a set of assignments for one project that is validated and
// stored as a whole.
type Batch struct {
	ProjectID   uint         `json:"projectId" example:"1"`
	Assignments []Assignment `json:"assignments"`
}

// RateLookup resolves the hourly cost of a person in a financial year.
type RateLookup interface {
	HourlyCost(eid, year string) (decimal.Decimal, error)
}

// Result carries the calculated allocations and the sum of all
// percentages in the batch.
type Result struct {
	Allocations     []models.Allocation `json:"allocations"`
	TotalPercentage decimal.Decimal     `json:"totalPercentage"`
}

// PercentageExceededError is returned when a person's percentages in one
// batch add up to more than 100.
type PercentageExceededError struct {
	PersonEID string
	Total     decimal.Decimal
}

func (e *PercentageExceededError) Error() string {
	return fmt.Sprintf("%s: the total allocation of %s is %s%%, it must not exceed 100%%", models.ErrValidation, e.PersonEID, e.Total.String())
}

func (e *PercentageExceededError) Unwrap() error {
	return models.ErrValidation
}

// Calculate validates a batch and computes the allocation figures for every
// assignment. Nothing is written, rates are read through the lookup.
//
// The batch fails as a whole on the first invalid assignment.
func Calculate(batch Batch, rates RateLookup) (Result, error) {
	if len(batch.Assignments) == 0 {
		return Result{}, fmt.Errorf("%w: at least one assignment is required", models.ErrValidation)
	}

	for i, a := range batch.Assignments {
		if err := validate(a); err != nil {
			return Result{}, fmt.Errorf("%w: assignment %d: %s", models.ErrValidation, i+1, err)
		}
	}

	total, err := checkPercentages(batch.Assignments)
	if err != nil {
		return Result{}, err
	}

	allocations := make([]models.Allocation, 0, len(batch.Assignments))
	for i, a := range batch.Assignments {
		allocation, err := calculate(batch.ProjectID, a, rates)
		if err != nil {
			return Result{}, fmt.Errorf("%w: assignment %d: %w", models.ErrValidation, i+1, err)
		}
		allocations = append(allocations, allocation)
	}

	return Result{Allocations: allocations, TotalPercentage: total}, nil
}

func validate(a Assignment) error {
	var missing []string
	if strings.TrimSpace(a.PersonEID) == "" {
		missing = append(missing, "personId")
	}
	if !a.Percentage.Valid {
		missing = append(missing, "percentage")
	}
	if !a.BillingRate.Valid {
		missing = append(missing, "billingRate")
	}
	if a.StartDate.IsZero() {
		missing = append(missing, "startDate")
	}
	if a.EndDate.IsZero() {
		missing = append(missing, "endDate")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	if !a.Percentage.Decimal.IsPositive() || a.Percentage.Decimal.GreaterThan(hundred) {
		return fmt.Errorf("the percentage must be greater than 0 and at most 100, got %s", a.Percentage.Decimal)
	}

	if a.BillingRate.Decimal.IsNegative() {
		return fmt.Errorf("the billing rate must not be negative, got %s", a.BillingRate.Decimal)
	}

	if a.EndDate.Before(a.StartDate) {
		return fmt.Errorf("%w: %s is before %s", types.ErrDateRange, a.EndDate, a.StartDate)
	}

	return nil
}

// checkPercentages verifies that no person is allocated more than 100% in the
// batch and returns the sum of all percentages.
func checkPercentages(assignments []Assignment) (decimal.Decimal, error) {
	total := decimal.Zero
	perPerson := make(map[string]decimal.Decimal)
	order := make([]string, 0, len(assignments))

	for _, a := range assignments {
		total = total.Add(a.Percentage.Decimal)

		if _, ok := perPerson[a.PersonEID]; !ok {
			order = append(order, a.PersonEID)
		}
		perPerson[a.PersonEID] = perPerson[a.PersonEID].Add(a.Percentage.Decimal)
	}

	for _, eid := range order {
		if perPerson[eid].GreaterThan(hundred) {
			return decimal.Zero, &PercentageExceededError{PersonEID: eid, Total: perPerson[eid]}
		}
	}

	// A person has one allocation per project
	if len(order) != len(assignments) {
		seen := make(map[string]bool, len(assignments))
		for _, a := range assignments {
			if seen[a.PersonEID] {
				return decimal.Zero, fmt.Errorf("%w: %s is listed more than once, submit one assignment per person", models.ErrValidation, a.PersonEID)
			}
			seen[a.PersonEID] = true
		}
	}

	return total, nil
}

func calculate(projectID uint, a Assignment, rates RateLookup) (models.Allocation, error) {
	days, err := types.WorkingDays(a.StartDate, a.EndDate)
	if err != nil {
		return models.Allocation{}, err
	}

	hours := decimal.NewFromInt(int64(days * HoursPerDay)).Mul(a.Percentage.Decimal).Div(hundred)
	year := types.FinancialYearOf(a.StartDate).Label()

	hourlyCost, err := rates.HourlyCost(a.PersonEID, year)
	if err != nil {
		return models.Allocation{}, err
	}

	return models.Allocation{
		PersonEID:      a.PersonEID,
		ProjectID:      projectID,
		Percentage:     a.Percentage.Decimal,
		BillingRate:    a.BillingRate.Decimal,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		FinancialYear:  year,
		WorkingDays:    days,
		AllocatedHours: hours,
		BillableCost:   a.BillingRate.Decimal.Mul(hours).Round(2),
		ActualCost:     hourlyCost.Mul(hours).Round(2),
	}, nil
}
