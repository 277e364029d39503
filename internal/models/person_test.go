package models_test

import (
	"github.com/workforce-ledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestPersonDefaultRole() {
	p := suite.createTestPerson(models.Person{EID: "E1"})
	suite.Assert().Equal(models.PersonRoleEmployee, p.Role)
}

func (suite *TestSuiteStandard) TestPersonInvalidRole() {
	err := suite.db.Create(&models.Person{EID: "E1", Role: "janitor"}).Error
	suite.Assert().ErrorIs(err, models.ErrPersonRoleInvalid)
}

func (suite *TestSuiteStandard) TestPersonEmptyEID() {
	err := suite.db.Create(&models.Person{Name: "Nobody"}).Error
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestManagedDepartmentIDs() {
	manager := suite.createTestPerson(models.Person{EID: "M1", Role: models.PersonRoleDepartmentManager})
	suite.createTestPerson(models.Person{EID: "E1"})

	first := suite.createTestDepartment(models.Department{Name: "Sales", Managers: []models.Person{manager}})
	second := suite.createTestDepartment(models.Department{Name: "Support", Managers: []models.Person{manager}})
	suite.createTestDepartment(models.Department{Name: "Legal"})

	ids, err := models.ManagedDepartmentIDs(suite.db, "M1")
	suite.Require().Nil(err)
	suite.Assert().Equal([]uint{first.ID, second.ID}, ids)

	ids, err = models.ManagedDepartmentIDs(suite.db, "E1")
	suite.Require().Nil(err)
	suite.Assert().Len(ids, 0)

	_, err = models.ManagedDepartmentIDs(suite.db, "E404")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
