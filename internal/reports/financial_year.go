package reports

import (
	"context"
	"fmt"

	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// FinancialYearQuery selects the projects of a financial year report.
type FinancialYearQuery struct {
	Window types.Window

	// NamePattern is a glob pattern projects names must match, e.g. "Apollo*"
	NamePattern string
}

// DepartmentRow is the roll-up of a department's projects in a report.
type DepartmentRow struct {
	DepartmentID uint   `json:"departmentId" example:"1"`
	Name         string `json:"name" example:"Engineering"`
	Totals
}

// FinancialYearReport lists the totals of every project active in a window.
type FinancialYearReport struct {
	Window      types.Window    `json:"window"`
	Projects    []ProjectTotals `json:"projects"`
	Departments []DepartmentRow `json:"departments"`
	Total       Totals          `json:"total"`
}

// FinancialYearReport reports all projects whose own date range overlaps the
// window. Every allocation of such a project counts, regardless of the
// allocation's dates. Projects without allocations are listed with zero totals.
func (e *Engine) FinancialYearReport(ctx context.Context, query FinancialYearQuery) (FinancialYearReport, error) {
	if query.Window.End.Before(query.Window.Start) {
		return FinancialYearReport{}, fmt.Errorf("%w: %w", models.ErrValidation, types.ErrDateRange)
	}

	key := fmt.Sprintf("financial-year:%s:%s:%s", query.Window.Start, query.Window.End, query.NamePattern)
	return cached(ctx, e, key, func(db *gorm.DB) (FinancialYearReport, error) {
		var all []models.Project
		if err := db.Order("id").Find(&all).Error; err != nil {
			return FinancialYearReport{}, err
		}

		// Overlap is evaluated here, date columns compare differently across drivers
		projects := make([]models.Project, 0, len(all))
		for _, p := range all {
			if query.Window.Overlaps(p.StartDate, p.EndDate) && matchesName(query.NamePattern, p.Name) {
				projects = append(projects, p)
			}
		}

		allocations, err := allocationsByProject(db, projectIDs(projects))
		if err != nil {
			return FinancialYearReport{}, err
		}

		names, err := departmentNames(db)
		if err != nil {
			return FinancialYearReport{}, err
		}

		report := FinancialYearReport{
			Window:      query.Window,
			Projects:    make([]ProjectTotals, 0, len(projects)),
			Departments: []DepartmentRow{},
		}

		departments := make(map[uint]int)
		for _, p := range projects {
			row := ProjectTotals{ProjectID: p.ID, Name: p.Name, DepartmentID: p.DepartmentID}
			for _, a := range allocations[p.ID] {
				row.Totals = row.Add(a)
			}
			report.Projects = append(report.Projects, row)
			report.Total = report.Total.Merge(row.Totals)

			i, ok := departments[p.DepartmentID]
			if !ok {
				i = len(report.Departments)
				departments[p.DepartmentID] = i
				report.Departments = append(report.Departments, DepartmentRow{DepartmentID: p.DepartmentID, Name: names[p.DepartmentID]})
			}
			report.Departments[i].Totals = report.Departments[i].Merge(row.Totals)
		}

		return report, nil
	})
}
