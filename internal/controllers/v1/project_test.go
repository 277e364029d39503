package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/workforce-ledger/backend/internal/controllers/v1"
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/test"
)

func (suite *TestSuiteStandard) assigneesURL(eid ...string) string {
	url := fmt.Sprintf("/v1/projects/%d/assignees", suite.apollo.ID)
	if len(eid) > 0 {
		url += "/" + eid[0]
	}
	return url
}

func (suite *TestSuiteStandard) TestProjectAssignees() {
	recorder := suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E1", Role: "project manager"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var membership v1.MembershipResponse
	test.DecodeResponse(suite.T(), &recorder, &membership)
	suite.Assert().Equal(models.RoleProjectManager, membership.Data.Role)

	// A second Project Manager is rejected
	recorder = suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E2", Role: models.RoleProjectManager})
	suite.assertError(&recorder, http.StatusConflict, "conflict")

	recorder = suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E2", Role: "Developer"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	// Adding the same person again is a conflict
	recorder = suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E2", Role: "Developer"})
	suite.assertError(&recorder, http.StatusConflict, "conflict")

	suite.submit()

	recorder = suite.request(http.MethodGet, suite.assigneesURL(), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var assignees v1.AssigneeListResponse
	test.DecodeResponse(suite.T(), &recorder, &assignees)
	suite.Require().Len(assignees.Data, 2)
	suite.Assert().Equal("E1", assignees.Data[0].Person.EID)
	suite.Assert().Equal(models.RoleProjectManager, assignees.Data[0].Role, "Submitting allocations must keep existing roles")
	suite.Assert().Equal("Developer", assignees.Data[1].Role)
	suite.Require().NotNil(assignees.Data[1].Allocation)
	suite.assertDecimal("1440", assignees.Data[1].Allocation.BillableCost)
}

func (suite *TestSuiteStandard) TestProjectAssigneesUnknownReferences() {
	recorder := suite.request(http.MethodGet, "/v1/projects/9999/assignees", nil)
	suite.assertError(&recorder, http.StatusNotFound, "not_found")

	recorder = suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "X9"})
	suite.assertError(&recorder, http.StatusNotFound, "not_found")

	recorder = suite.request(http.MethodPost, suite.assigneesURL(), map[string]any{"role": "Developer"})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")

	recorder = suite.request(http.MethodGet, "/v1/projects/abc/assignees", nil)
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
}

func (suite *TestSuiteStandard) TestUpdateProjectAssignee() {
	recorder := suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E1", Role: models.RoleProjectManager})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
	recorder = suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E2"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = suite.request(http.MethodPatch, suite.assigneesURL("E2"), v1.AssigneeEditable{Role: models.RoleProjectManager})
	suite.assertError(&recorder, http.StatusConflict, "conflict")

	// Hand over the role
	recorder = suite.request(http.MethodPatch, suite.assigneesURL("E1"), v1.AssigneeEditable{Role: "Developer"})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	recorder = suite.request(http.MethodPatch, suite.assigneesURL("E2"), v1.AssigneeEditable{Role: models.RoleProjectManager})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var membership v1.MembershipResponse
	test.DecodeResponse(suite.T(), &recorder, &membership)
	suite.Assert().Equal(models.RoleProjectManager, membership.Data.Role)

	recorder = suite.request(http.MethodPatch, suite.assigneesURL("M1"), v1.AssigneeEditable{Role: "Developer"})
	suite.assertError(&recorder, http.StatusNotFound, "not_found")

	recorder = suite.request(http.MethodPatch, suite.assigneesURL("E1"), map[string]any{})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
}

func (suite *TestSuiteStandard) TestDeleteProjectAssignee() {
	recorder := suite.request(http.MethodPost, suite.assigneesURL(), v1.AssigneeCreate{EID: "E1", Role: models.RoleProjectManager})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)
	suite.submit()

	recorder = suite.request(http.MethodDelete, suite.assigneesURL("E1"), nil)
	suite.assertError(&recorder, http.StatusForbidden, "forbidden")

	recorder = suite.request(http.MethodDelete, suite.assigneesURL("E2"), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodDelete, suite.assigneesURL("E2"), nil)
	suite.assertError(&recorder, http.StatusNotFound, "not_found")

	// Only the allocation of E1 is left
	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/projects/%d/totals", suite.apollo.ID), nil)
	var totals v1.ProjectTotalsResponse
	test.DecodeResponse(suite.T(), &recorder, &totals)
	suite.assertDecimal("1200", totals.Data.Revenue)
}

func (suite *TestSuiteStandard) TestProjectTotals() {
	url := fmt.Sprintf("/v1/projects/%d/totals", suite.apollo.ID)

	recorder := suite.request(http.MethodGet, url, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var totals v1.ProjectTotalsResponse
	test.DecodeResponse(suite.T(), &recorder, &totals)
	suite.assertDecimal("0", totals.Data.Revenue, "A project without allocations has zero totals")

	suite.submit()

	recorder = suite.request(http.MethodGet, url, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &totals)
	suite.Assert().Equal("Apollo", totals.Data.Name)
	suite.assertDecimal("2640", totals.Data.Revenue)
	suite.assertDecimal("1056", totals.Data.Cost)
	suite.assertDecimal("1584", totals.Data.Margin)

	recorder = suite.request(http.MethodGet, "/v1/projects/9999/totals", nil)
	suite.assertError(&recorder, http.StatusNotFound, "not_found")

	recorder = suite.request(http.MethodGet, "/v1/projects/0/totals", nil)
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
}

func (suite *TestSuiteStandard) TestDeleteProject() {
	suite.submit()

	url := fmt.Sprintf("/v1/projects/%d", suite.apollo.ID)
	recorder := suite.request(http.MethodDelete, url, nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var project v1.ProjectResponse
	test.DecodeResponse(suite.T(), &recorder, &project)
	suite.Assert().Equal("Apollo", project.Data.Name)

	recorder = suite.request(http.MethodGet, "/v1/allocations", nil)
	var allocations v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &recorder, &allocations)
	suite.Assert().Len(allocations.Data, 0, "Allocations must be deleted with the project")

	recorder = suite.request(http.MethodDelete, url, nil)
	suite.assertError(&recorder, http.StatusNotFound, "not_found")
}
