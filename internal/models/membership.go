package models

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"
)

const (
	// RoleProjectManager is the membership role held by at most one person per project.
	RoleProjectManager = "Project Manager"

	// RoleAssignee is the membership role given when no role is supplied.
	RoleAssignee = "assignee"
)

// Membership is the role of a person on a project.
type Membership struct {
	DefaultModel
	ProjectID uint    `json:"projectId" gorm:"uniqueIndex:idx_membership_project_person,priority:1"`
	Project   Project `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	PersonEID string  `json:"personId" gorm:"column:person_eid;uniqueIndex:idx_membership_project_person,priority:2"`
	Person    Person  `json:"-" gorm:"foreignKey:PersonEID;references:EID;constraint:OnDelete:CASCADE"`
	Role      string  `json:"role"`
}

// canonicalRole trims a role label. Any casing of the Project Manager role
// is stored as RoleProjectManager.
func canonicalRole(role string) string {
	role = strings.TrimSpace(role)

	fold := cases.Fold()
	if fold.String(role) == fold.String(RoleProjectManager) {
		return RoleProjectManager
	}

	return role
}

func (m *Membership) BeforeSave(_ *gorm.DB) error {
	m.Role = canonicalRole(m.Role)
	if m.Role == "" {
		return ErrMembershipRoleEmpty
	}

	return nil
}

// GetMembership returns the membership of the person on the project.
func GetMembership(db *gorm.DB, projectID uint, eid string) (Membership, error) {
	var m Membership
	err := db.Where(&Membership{ProjectID: projectID, PersonEID: eid}).First(&m).Error
	return m, err
}

// projectManager returns the EID of the project's Project Manager, or an
// empty string if the project has none.
func projectManager(db *gorm.DB, projectID uint) (string, error) {
	var m Membership
	err := db.Where(&Membership{ProjectID: projectID, Role: RoleProjectManager}).First(&m).Error
	if errors.Is(err, ErrResourceNotFound) {
		return "", nil
	}
	return m.PersonEID, err
}

// checkProjectManager fails when role is the Project Manager role and
// someone other than eid already holds it on the project.
func checkProjectManager(db *gorm.DB, projectID uint, eid, role string) error {
	if role != RoleProjectManager {
		return nil
	}

	current, err := projectManager(db, projectID)
	if err != nil {
		return err
	}

	if current != "" && current != eid {
		return fmt.Errorf("%w, %s holds the role", ErrProjectManagerExists, current)
	}

	return nil
}

// ensureMembership makes sure the person is a member of the project.
// An existing membership keeps its role unless a role is given. The Project
// Manager role is only handed over with ChangeMembershipRole.
func ensureMembership(tx *gorm.DB, projectID uint, eid, role string) (Membership, error) {
	role = canonicalRole(role)

	m, err := GetMembership(tx, projectID, eid)
	if err != nil && !errors.Is(err, ErrResourceNotFound) {
		return Membership{}, err
	}

	if err == nil && (role == "" || role == m.Role) {
		return m, nil
	}

	if err == nil && m.Role == RoleProjectManager {
		return Membership{}, ErrProjectManagerDemotion
	}

	if role == "" {
		role = RoleAssignee
	}

	if err := checkProjectManager(tx, projectID, eid, role); err != nil {
		return Membership{}, err
	}

	m.ProjectID = projectID
	m.PersonEID = eid
	m.Role = role

	return m, tx.Save(&m).Error
}

// AddMembership adds a person to a project. It fails with ErrAlreadyAssigned
// if the person already is a member. An empty role defaults to RoleAssignee.
func AddMembership(db *gorm.DB, projectID uint, eid, role string) (Membership, error) {
	if strings.TrimSpace(role) == "" {
		role = RoleAssignee
	}

	m := Membership{ProjectID: projectID, PersonEID: eid, Role: role}

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetProject(tx, projectID); err != nil {
			return err
		}

		if _, err := GetPerson(tx, eid); err != nil {
			return err
		}

		if err := checkProjectManager(tx, projectID, eid, canonicalRole(role)); err != nil {
			return err
		}

		return tx.Create(&m).Error
	})
	if err != nil {
		return Membership{}, err
	}

	RecordActivity(db, "Membership", fmt.Sprintf("%s on project %d", eid, projectID), "created")
	return m, nil
}

// ChangeMembershipRole sets the role of an existing membership. This is the
// way to hand the Project Manager role to someone else: demote the current
// Project Manager first, then promote the new one.
func ChangeMembershipRole(db *gorm.DB, projectID uint, eid, role string) (Membership, error) {
	var m Membership

	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		m, err = GetMembership(tx, projectID, eid)
		if err != nil {
			return err
		}

		role = canonicalRole(role)
		if err := checkProjectManager(tx, projectID, eid, role); err != nil {
			return err
		}

		m.Role = role
		return tx.Save(&m).Error
	})
	if err != nil {
		return Membership{}, err
	}

	RecordActivity(db, "Membership", fmt.Sprintf("%s on project %d", eid, projectID), "updated")
	return m, nil
}

// RemoveAssignment removes a person from a project, deleting both the
// membership and the allocation. Project Managers cannot be removed.
func RemoveAssignment(db *gorm.DB, projectID uint, eid string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		m, err := GetMembership(tx, projectID, eid)
		if err != nil && !errors.Is(err, ErrResourceNotFound) {
			return err
		}
		hasMembership := err == nil

		if hasMembership && m.Role == RoleProjectManager {
			return ErrProjectManagerRemoval
		}

		allocations := tx.Where("project_id = ? AND person_eid = ?", projectID, eid).Delete(&Allocation{})
		if allocations.Error != nil {
			return allocations.Error
		}

		if !hasMembership && allocations.RowsAffected == 0 {
			return fmt.Errorf("%w assignment of %s on project %d", ErrResourceNotFound, eid, projectID)
		}

		if hasMembership {
			return tx.Delete(&m).Error
		}

		return nil
	})
	if err != nil {
		return err
	}

	RecordActivity(db, "Assignment", fmt.Sprintf("%s on project %d", eid, projectID), "deleted")
	return nil
}

// Assignee is a project member with their allocation figures, if any.
type Assignee struct {
	Person     Person      `json:"person"`
	Role       string      `json:"role"`
	Allocation *Allocation `json:"allocation"`
}

// ProjectAssignees returns all members of a project ordered by employee id.
func ProjectAssignees(db *gorm.DB, projectID uint) ([]Assignee, error) {
	if _, err := GetProject(db, projectID); err != nil {
		return nil, err
	}

	var memberships []Membership
	if err := db.Preload("Person").Where("project_id = ?", projectID).Order("person_eid").Find(&memberships).Error; err != nil {
		return nil, err
	}

	var allocations []Allocation
	if err := db.Where("project_id = ?", projectID).Find(&allocations).Error; err != nil {
		return nil, err
	}

	byPerson := make(map[string]Allocation, len(allocations))
	for _, a := range allocations {
		byPerson[a.PersonEID] = a
	}

	assignees := make([]Assignee, 0, len(memberships))
	for _, m := range memberships {
		a := Assignee{Person: m.Person, Role: m.Role}
		if alloc, ok := byPerson[m.PersonEID]; ok {
			a.Allocation = &alloc
		}
		assignees = append(assignees, a)
	}

	return assignees, nil
}
