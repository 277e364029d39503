package models_test

import (
	"github.com/workforce-ledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestMembershipSingleProjectManager() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})
	suite.createTestPerson(models.Person{EID: "E2"})

	_, err := models.AddMembership(suite.db, project.ID, "E1", models.RoleProjectManager)
	suite.Require().Nil(err)

	_, err = models.AddMembership(suite.db, project.ID, "E2", models.RoleProjectManager)
	suite.Assert().ErrorIs(err, models.ErrProjectManagerExists)
	suite.Assert().ErrorIs(err, models.ErrConflict)
}

// TestMembershipSingleProjectManagerStorage verifies that the database
// rejects a second Project Manager written past the store functions.
func (suite *TestSuiteStandard) TestMembershipSingleProjectManagerStorage() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})
	suite.createTestPerson(models.Person{EID: "E2"})

	err := suite.db.Create(&models.Membership{ProjectID: project.ID, PersonEID: "E1", Role: models.RoleProjectManager}).Error
	suite.Require().Nil(err)

	err = suite.db.Create(&models.Membership{ProjectID: project.ID, PersonEID: "E2", Role: models.RoleProjectManager}).Error
	suite.Assert().ErrorIs(err, models.ErrProjectManagerExists)

	err = suite.db.Create(&models.Membership{ProjectID: project.ID, PersonEID: "E1", Role: models.RoleAssignee}).Error
	suite.Assert().ErrorIs(err, models.ErrAlreadyAssigned)
}

func (suite *TestSuiteStandard) TestMembershipAlreadyAssigned() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})

	_, err := models.AddMembership(suite.db, project.ID, "E1", "Developer")
	suite.Require().Nil(err)

	_, err = models.AddMembership(suite.db, project.ID, "E1", "Tester")
	suite.Assert().ErrorIs(err, models.ErrAlreadyAssigned)
}

func (suite *TestSuiteStandard) TestMembershipUnknownReferences() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})

	_, err := models.AddMembership(suite.db, project.ID, "E404", "Developer")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.AddMembership(suite.db, 404, "E1", "Developer")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

}

func (suite *TestSuiteStandard) TestMembershipDefaultRole() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})

	m, err := models.AddMembership(suite.db, project.ID, "E1", " ")
	suite.Require().Nil(err)
	suite.Assert().Equal(models.RoleAssignee, m.Role)

	_, err = models.ChangeMembershipRole(suite.db, project.ID, "E1", "")
	suite.Assert().ErrorIs(err, models.ErrValidation, "Changing to an empty role must fail")
}

func (suite *TestSuiteStandard) TestMembershipHandOverProjectManager() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})
	suite.createTestPerson(models.Person{EID: "E2"})

	_, err := models.AddMembership(suite.db, project.ID, "E1", models.RoleProjectManager)
	suite.Require().Nil(err)
	_, err = models.AddMembership(suite.db, project.ID, "E2", "Developer")
	suite.Require().Nil(err)

	_, err = models.ChangeMembershipRole(suite.db, project.ID, "E2", models.RoleProjectManager)
	suite.Require().ErrorIs(err, models.ErrProjectManagerExists)

	// Re-asserting the role for the holder is fine
	_, err = models.ChangeMembershipRole(suite.db, project.ID, "E1", models.RoleProjectManager)
	suite.Require().Nil(err)

	_, err = models.ChangeMembershipRole(suite.db, project.ID, "E1", "Architect")
	suite.Require().Nil(err)

	m, err := models.ChangeMembershipRole(suite.db, project.ID, "E2", models.RoleProjectManager)
	suite.Require().Nil(err)
	suite.Assert().Equal(models.RoleProjectManager, m.Role)

	_, err = models.ChangeMembershipRole(suite.db, project.ID, "E404", "Developer")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestRemoveAssignmentProjectManager() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})

	_, err := models.AddMembership(suite.db, project.ID, "E1", models.RoleProjectManager)
	suite.Require().Nil(err)

	err = models.RemoveAssignment(suite.db, project.ID, "E1")
	suite.Assert().ErrorIs(err, models.ErrProjectManagerRemoval)
	suite.Assert().ErrorIs(err, models.ErrForbidden)

	_, err = models.GetMembership(suite.db, project.ID, "E1")
	suite.Assert().Nil(err)
}

func (suite *TestSuiteStandard) TestRemoveAssignment() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})

	_, err := models.SaveAllocations(suite.db, project.ID, []models.Allocation{testAllocation("E1")}, nil)
	suite.Require().Nil(err)

	suite.Require().Nil(models.RemoveAssignment(suite.db, project.ID, "E1"))

	_, err = models.GetMembership(suite.db, project.ID, "E1")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	_, err = models.GetAllocation(suite.db, project.ID, "E1")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	err = models.RemoveAssignment(suite.db, project.ID, "E1")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestProjectAssignees() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1", Name: "Ada"})
	suite.createTestPerson(models.Person{EID: "E2", Name: "Grace"})

	_, err := models.SaveAllocations(suite.db, project.ID, []models.Allocation{testAllocation("E2")}, nil)
	suite.Require().Nil(err)
	_, err = models.AddMembership(suite.db, project.ID, "E1", models.RoleProjectManager)
	suite.Require().Nil(err)

	assignees, err := models.ProjectAssignees(suite.db, project.ID)
	suite.Require().Nil(err)
	suite.Require().Len(assignees, 2)

	suite.Assert().Equal("Ada", assignees[0].Person.Name)
	suite.Assert().Equal(models.RoleProjectManager, assignees[0].Role)
	suite.Assert().Nil(assignees[0].Allocation)

	suite.Assert().Equal("Grace", assignees[1].Person.Name)
	suite.Assert().Equal(models.RoleAssignee, assignees[1].Role)
	suite.Require().NotNil(assignees[1].Allocation)
	suite.Assert().Equal("E2", assignees[1].Allocation.PersonEID)

	_, err = models.ProjectAssignees(suite.db, 404)
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestMembershipProjectManagerCasing() {
	project := suite.createTestProject(models.Project{Name: "Apollo"})
	suite.createTestPerson(models.Person{EID: "E1"})
	suite.createTestPerson(models.Person{EID: "E2"})

	m, err := models.AddMembership(suite.db, project.ID, "E1", "project manager")
	suite.Require().Nil(err)
	suite.Assert().Equal(models.RoleProjectManager, m.Role)

	_, err = models.AddMembership(suite.db, project.ID, "E2", " PROJECT MANAGER ")
	suite.Assert().ErrorIs(err, models.ErrProjectManagerExists)
}
