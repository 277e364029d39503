package models

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/workforce-ledger/backend/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Allocation is the share of a person's working time committed to a
// project over a date range, with the derived hours and costs.
//
// There is at most one allocation per person and project.
type Allocation struct {
	DefaultModel
	PersonEID      string          `json:"personId" gorm:"column:person_eid;uniqueIndex:idx_allocation_person_project,priority:1"`
	Person         Person          `json:"-" gorm:"foreignKey:PersonEID;references:EID;constraint:OnDelete:CASCADE"`
	ProjectID      uint            `json:"projectId" gorm:"uniqueIndex:idx_allocation_person_project,priority:2;index"`
	Project        Project         `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Percentage     decimal.Decimal `json:"percentage" gorm:"type:DECIMAL(20,8)"`
	BillingRate    decimal.Decimal `json:"billingRate" gorm:"type:DECIMAL(20,8)"`
	StartDate      types.Date      `json:"startDate"`
	EndDate        types.Date      `json:"endDate"`
	FinancialYear  string          `json:"financialYear"`
	WorkingDays    int             `json:"workingDays"`
	AllocatedHours decimal.Decimal `json:"allocatedHours" gorm:"type:DECIMAL(20,8)"`
	BillableCost   decimal.Decimal `json:"billableCost" gorm:"type:DECIMAL(20,8)"`
	ActualCost     decimal.Decimal `json:"actualCost" gorm:"type:DECIMAL(20,8)"`
}

// Margin is the billable cost minus the actual cost.
func (a Allocation) Margin() decimal.Decimal {
	return a.BillableCost.Sub(a.ActualCost)
}

var allocationUpdateColumns = []string{
	"percentage",
	"billing_rate",
	"start_date",
	"end_date",
	"financial_year",
	"working_days",
	"allocated_hours",
	"billable_cost",
	"actual_cost",
	"updated_at",
}

// SaveAllocations stores the allocations for a project in one transaction.
// An existing allocation for the same person and project is updated in place.
//
// Every person is made a member of the project. roles maps employee ids to the
// membership role to set; people without an entry keep their role or become
// assignees.
func SaveAllocations(db *gorm.DB, projectID uint, allocations []Allocation, roles map[string]string) ([]Allocation, error) {
	saved := make([]Allocation, 0, len(allocations))

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, a := range allocations {
			a.ProjectID = projectID

			if _, err := ensureMembership(tx, projectID, a.PersonEID, roles[a.PersonEID]); err != nil {
				return err
			}

			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "person_eid"}, {Name: "project_id"}},
				DoUpdates: clause.AssignmentColumns(allocationUpdateColumns),
			}).Create(&a).Error
			if err != nil {
				return err
			}

			// The ID generated for the insert is discarded on conflict
			stored, err := GetAllocation(tx, projectID, a.PersonEID)
			if err != nil {
				return err
			}
			saved = append(saved, stored)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, a := range saved {
		RecordActivity(db, "Allocation", fmt.Sprintf("%s on project %d", a.PersonEID, projectID), "saved")
	}

	return saved, nil
}

// GetAllocation returns the allocation of a person on a project.
func GetAllocation(db *gorm.DB, projectID uint, eid string) (Allocation, error) {
	var a Allocation
	err := db.Where("project_id = ? AND person_eid = ?", projectID, eid).First(&a).Error
	return a, err
}

// AllocationFilter restricts the allocations returned by Allocations.
// Zero values do not filter.
type AllocationFilter struct {
	ProjectID uint
	PersonEID string
}

// Allocations returns the stored allocations matching the filter.
func Allocations(db *gorm.DB, filter AllocationFilter) ([]Allocation, error) {
	query := db.Order("project_id, person_eid")

	if filter.ProjectID != 0 {
		query = query.Where("project_id = ?", filter.ProjectID)
	}

	if filter.PersonEID != "" {
		query = query.Where("person_eid = ?", filter.PersonEID)
	}

	var allocations []Allocation
	err := query.Find(&allocations).Error
	return allocations, err
}
