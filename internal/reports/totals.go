package reports

import (
	"context"
	"fmt"

	"github.com/workforce-ledger/backend/internal/models"
	"gorm.io/gorm"
)

// ProjectTotals are the totals of one project.
type ProjectTotals struct {
	ProjectID    uint   `json:"projectId" example:"1"`
	Name         string `json:"name" example:"Apollo"`
	DepartmentID uint   `json:"departmentId" example:"1"`
	Totals
}

// ProjectTotals sums all allocations of a project. A project without
// allocations has zero totals.
func (e *Engine) ProjectTotals(ctx context.Context, projectID uint) (ProjectTotals, error) {
	return cached(ctx, e, fmt.Sprintf("project:%d", projectID), func(db *gorm.DB) (ProjectTotals, error) {
		project, err := models.GetProject(db, projectID)
		if err != nil {
			return ProjectTotals{}, err
		}

		allocations, err := allocationsByProject(db, []uint{project.ID})
		if err != nil {
			return ProjectTotals{}, err
		}

		totals := ProjectTotals{ProjectID: project.ID, Name: project.Name, DepartmentID: project.DepartmentID}
		for _, a := range allocations[project.ID] {
			totals.Totals = totals.Add(a)
		}

		return totals, nil
	})
}

// DepartmentScope selects departments either by ID or by a manager leading them.
type DepartmentScope struct {
	DepartmentID uint
	ManagerEID   string
}

func (s DepartmentScope) key() string {
	if s.ManagerEID != "" {
		return "manager:" + s.ManagerEID
	}
	return fmt.Sprintf("department:%d", s.DepartmentID)
}

// DepartmentTotals are the summed totals of all projects in a set of departments.
type DepartmentTotals struct {
	DepartmentIDs []uint          `json:"departmentIds"`
	Projects      []ProjectTotals `json:"projects"`
	Totals
}

// DepartmentTotals sums the allocations of all projects owned by the
// departments in scope. A manager without departments has zero totals.
func (e *Engine) DepartmentTotals(ctx context.Context, scope DepartmentScope) (DepartmentTotals, error) {
	return cached(ctx, e, scope.key(), func(db *gorm.DB) (DepartmentTotals, error) {
		var ids []uint

		if scope.ManagerEID != "" {
			var err error
			ids, err = models.ManagedDepartmentIDs(db, scope.ManagerEID)
			if err != nil {
				return DepartmentTotals{}, err
			}
		} else {
			department, err := models.GetDepartment(db, scope.DepartmentID)
			if err != nil {
				return DepartmentTotals{}, err
			}
			ids = []uint{department.ID}
		}

		result := DepartmentTotals{DepartmentIDs: ids, Projects: []ProjectTotals{}}
		if len(ids) == 0 {
			return result, nil
		}

		var projects []models.Project
		if err := db.Where("department_id IN ?", ids).Order("id").Find(&projects).Error; err != nil {
			return DepartmentTotals{}, err
		}

		allocations, err := allocationsByProject(db, projectIDs(projects))
		if err != nil {
			return DepartmentTotals{}, err
		}

		for _, p := range projects {
			row := ProjectTotals{ProjectID: p.ID, Name: p.Name, DepartmentID: p.DepartmentID}
			for _, a := range allocations[p.ID] {
				row.Totals = row.Add(a)
			}
			result.Projects = append(result.Projects, row)
			result.Totals = result.Merge(row.Totals)
		}

		return result, nil
	})
}
