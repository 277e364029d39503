package models

import (
	"fmt"

	"github.com/workforce-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// Project is a unit of work owned by a department with its own validity window.
type Project struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	Name         string     `json:"name"`
	DepartmentID uint       `json:"departmentId"`
	Department   Department `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	StartDate    types.Date `json:"startDate"`
	EndDate      types.Date `json:"endDate"`
	Timestamps
}

func (p *Project) BeforeSave(_ *gorm.DB) error {
	if !p.StartDate.IsZero() && !p.EndDate.IsZero() && p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: the project end date %s is before its start date %s", ErrValidation, p.EndDate, p.StartDate)
	}

	return nil
}

// GetProject returns the project with the given ID.
func GetProject(db *gorm.DB, id uint) (Project, error) {
	var p Project
	err := db.First(&p, id).Error
	return p, err
}

// DeleteProject deletes a project. Its memberships and allocations are
// removed by the database.
func DeleteProject(db *gorm.DB, id uint) (Project, error) {
	var project Project

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		project, err = GetProject(tx, id)
		if err != nil {
			return err
		}

		// Explicit deletes keep databases without foreign key enforcement consistent
		if err := tx.Where("project_id = ?", id).Delete(&Allocation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("project_id = ?", id).Delete(&Membership{}).Error; err != nil {
			return err
		}

		return tx.Delete(&project).Error
	})
	if err != nil {
		return Project{}, err
	}

	RecordActivity(db, "Project", project.Name, "deleted")
	return project, nil
}
