package models

import "gorm.io/gorm"

// Department owns projects and is led by one or more managers.
type Department struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	Name     string   `json:"name"`
	Managers []Person `json:"managers,omitempty" gorm:"many2many:department_managers;joinForeignKey:DepartmentID;joinReferences:PersonEid"`
	Timestamps
}

// GetDepartment returns the department with the given ID.
func GetDepartment(db *gorm.DB, id uint) (Department, error) {
	var d Department
	err := db.First(&d, id).Error
	return d, err
}

// ManagedDepartmentIDs returns the IDs of all departments the person manages.
//
// An unknown person is an error, a person managing no department is not.
func ManagedDepartmentIDs(db *gorm.DB, eid string) ([]uint, error) {
	if _, err := GetPerson(db, eid); err != nil {
		return nil, err
	}

	var ids []uint
	err := db.Table("department_managers").Where("person_eid = ?", eid).Order("department_id").Pluck("department_id", &ids).Error
	return ids, err
}
