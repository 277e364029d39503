package models_test

import (
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/internal/types"
)

func (suite *TestSuiteStandard) TestProjectDatesValidated() {
	department := suite.createTestDepartment(models.Department{Name: "Engineering"})

	err := suite.db.Create(&models.Project{
		Name:         "Backwards",
		DepartmentID: department.ID,
		StartDate:    types.NewDate(2024, 5, 1),
		EndDate:      types.NewDate(2024, 4, 1),
	}).Error
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestDeleteProjectCascades() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	other := suite.createTestProject(models.Project{Name: "Gemini"})
	suite.createTestPerson(models.Person{EID: "E1"})

	_, err := models.SaveAllocations(suite.db, project.ID, []models.Allocation{testAllocation("E1")}, map[string]string{"E1": models.RoleProjectManager})
	suite.Require().Nil(err)
	_, err = models.SaveAllocations(suite.db, other.ID, []models.Allocation{testAllocation("E1")}, nil)
	suite.Require().Nil(err)

	deleted, err := models.DeleteProject(suite.db, project.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Apollo", deleted.Name)

	_, err = models.GetProject(suite.db, project.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.GetMembership(suite.db, project.ID, "E1")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	suite.Assert().Equal(int64(1), suite.countAllocations())

	_, err = models.DeleteProject(suite.db, project.ID)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}
