package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/workforce-ledger/backend/internal/models"
	"gorm.io/gorm"
)

// Scope is the organisational level of a month-wise report.
type Scope string

const (
	ScopeOrganisation Scope = "org"
	ScopeDepartment   Scope = "department"
	ScopeProject      Scope = "project"
)

// ParseScope parses a scope name.
func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeOrganisation, ScopeDepartment, ScopeProject:
		return Scope(s), nil
	case "":
		return ScopeOrganisation, nil
	}

	return "", fmt.Errorf("%w: the view must be one of org, department, project, got %q", models.ErrValidation, s)
}

// Months are totals per calendar month, keyed 1 to 12.
type Months map[int]Totals

// newMonths returns months with all twelve buckets set to zero.
func newMonths() Months {
	m := make(Months, 12)
	for month := 1; month <= 12; month++ {
		m[month] = Totals{}
	}
	return m
}

func (m Months) add(a models.Allocation) {
	month := int(a.StartDate.Month())
	m[month] = m[month].Add(a)
}

func (m Months) merge(o Months) {
	for month, t := range o {
		m[month] = m[month].Merge(t)
	}
}

// UnmarshalJSON keeps all twelve buckets when reading cached reports.
func (m *Months) UnmarshalJSON(data []byte) error {
	var raw map[string]Totals
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = newMonths()
	for k, t := range raw {
		month, err := strconv.Atoi(k)
		if err != nil || month < 1 || month > 12 {
			return fmt.Errorf("invalid month %q", k)
		}
		(*m)[month] = t
	}
	return nil
}

// MonthwiseQuery selects the allocations of a month-wise report.
type MonthwiseQuery struct {
	Scope Scope

	// ID is the department or project ID for the department and project scopes
	ID uint

	// FinancialYear restricts the report to allocations starting in that year when set
	FinancialYear string

	// NamePattern is a glob pattern projects names must match
	NamePattern string
}

// MonthwiseProject is the month-wise breakdown of one project.
type MonthwiseProject struct {
	ProjectID    uint   `json:"projectId" example:"1"`
	Name         string `json:"name" example:"Apollo"`
	DepartmentID uint   `json:"departmentId" example:"1"`
	Monthly      Months `json:"monthly"`
	Total        Totals `json:"total"`
}

// MonthwiseDepartment is the roll-up of a department's projects.
type MonthwiseDepartment struct {
	DepartmentID uint   `json:"departmentId" example:"1"`
	Name         string `json:"name" example:"Engineering"`
	Monthly      Months `json:"monthly"`
	Total        Totals `json:"total"`
}

// MonthwiseReport breaks revenue, cost and margin down by calendar month.
type MonthwiseReport struct {
	Scope       Scope                 `json:"view"`
	ID          uint                  `json:"id,omitempty"`
	Projects    []MonthwiseProject    `json:"projects"`
	Departments []MonthwiseDepartment `json:"departments"`
	Monthly     Months                `json:"monthly"`
	Total       Totals                `json:"total"`
}

// Monthwise buckets every allocation by the calendar month of its own start
// date. All twelve months are present in every breakdown, months without
// allocations are zero.
func (e *Engine) Monthwise(ctx context.Context, query MonthwiseQuery) (MonthwiseReport, error) {
	if query.Scope == "" {
		query.Scope = ScopeOrganisation
	}

	key := fmt.Sprintf("monthwise:%s:%d:%s:%s", query.Scope, query.ID, query.FinancialYear, query.NamePattern)
	return cached(ctx, e, key, func(db *gorm.DB) (MonthwiseReport, error) {
		projects, err := scopedProjects(db, query.Scope, query.ID)
		if err != nil {
			return MonthwiseReport{}, err
		}

		filtered := projects[:0]
		for _, p := range projects {
			if matchesName(query.NamePattern, p.Name) {
				filtered = append(filtered, p)
			}
		}
		projects = filtered

		allocations, err := allocationsByProject(db, projectIDs(projects))
		if err != nil {
			return MonthwiseReport{}, err
		}

		names, err := departmentNames(db)
		if err != nil {
			return MonthwiseReport{}, err
		}

		report := MonthwiseReport{
			Scope:       query.Scope,
			ID:          query.ID,
			Projects:    make([]MonthwiseProject, 0, len(projects)),
			Departments: []MonthwiseDepartment{},
			Monthly:     newMonths(),
		}

		departments := make(map[uint]int)
		for _, p := range projects {
			row := MonthwiseProject{ProjectID: p.ID, Name: p.Name, DepartmentID: p.DepartmentID, Monthly: newMonths()}
			for _, a := range allocations[p.ID] {
				if query.FinancialYear != "" && a.FinancialYear != query.FinancialYear {
					continue
				}
				row.Monthly.add(a)
				row.Total = row.Total.Add(a)
			}
			report.Projects = append(report.Projects, row)
			report.Monthly.merge(row.Monthly)
			report.Total = report.Total.Merge(row.Total)

			i, ok := departments[p.DepartmentID]
			if !ok {
				i = len(report.Departments)
				departments[p.DepartmentID] = i
				report.Departments = append(report.Departments, MonthwiseDepartment{DepartmentID: p.DepartmentID, Name: names[p.DepartmentID], Monthly: newMonths()})
			}
			report.Departments[i].Monthly.merge(row.Monthly)
			report.Departments[i].Total = report.Departments[i].Total.Merge(row.Total)
		}

		return report, nil
	})
}

// scopedProjects returns the projects of a scope, failing if the department
// or project does not exist.
func scopedProjects(db *gorm.DB, scope Scope, id uint) ([]models.Project, error) {
	var projects []models.Project

	switch scope {
	case ScopeProject:
		project, err := models.GetProject(db, id)
		if err != nil {
			return nil, err
		}
		return []models.Project{project}, nil

	case ScopeDepartment:
		if _, err := models.GetDepartment(db, id); err != nil {
			return nil, err
		}
		err := db.Where("department_id = ?", id).Order("id").Find(&projects).Error
		return projects, err

	case ScopeOrganisation:
		err := db.Order("id").Find(&projects).Error
		return projects, err
	}

	return nil, fmt.Errorf("%w: unknown view %q", models.ErrValidation, scope)
}
