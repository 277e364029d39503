package models

import (
	"fmt"
	"slices"

	"gorm.io/gorm"
)

// PersonRole is the role tag of a person in the directory.
type PersonRole string

const (
	PersonRoleEmployee          PersonRole = "employee"
	PersonRoleDepartmentManager PersonRole = "department_manager"
	PersonRoleProjectManager    PersonRole = "project_manager"
	PersonRoleAdmin             PersonRole = "admin"
	PersonRoleFinancialAnalyst  PersonRole = "financial_analyst"
)

var personRoles = []PersonRole{
	PersonRoleEmployee,
	PersonRoleDepartmentManager,
	PersonRoleProjectManager,
	PersonRoleAdmin,
	PersonRoleFinancialAnalyst,
}

// Person is an entry of the person directory, identified by the employee id.
type Person struct {
	EID  string     `json:"eid" gorm:"column:eid;primaryKey"`
	Name string     `json:"name"`
	Role PersonRole `json:"role" gorm:"default:employee"`
	Timestamps
}

func (p *Person) BeforeSave(_ *gorm.DB) error {
	if p.EID == "" {
		return fmt.Errorf("%w: the employee id must not be empty", ErrValidation)
	}

	if p.Role == "" {
		p.Role = PersonRoleEmployee
	}

	if !slices.Contains(personRoles, p.Role) {
		return ErrPersonRoleInvalid
	}

	return nil
}

// GetPerson returns the person with the given employee id.
func GetPerson(db *gorm.DB, eid string) (Person, error) {
	var p Person
	err := db.First(&p, "eid = ?", eid).Error
	return p, err
}
