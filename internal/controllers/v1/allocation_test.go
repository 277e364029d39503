package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/workforce-ledger/backend/internal/controllers/v1"
	"github.com/workforce-ledger/backend/internal/models"
	"github.com/workforce-ledger/backend/test"
)

func (suite *TestSuiteStandard) TestCreateAllocations() {
	response := suite.submit()

	suite.Require().Len(response.Data.Allocations, 2)
	suite.assertDecimal("110", response.Data.TotalPercentage)

	e1 := response.Data.Allocations[0]
	suite.Assert().Equal("E1", e1.PersonEID)
	suite.Assert().Equal(3, e1.WorkingDays)
	suite.Assert().Equal("2024-2025", e1.FinancialYear)
	suite.assertDecimal("12", e1.AllocatedHours)
	suite.assertDecimal("1200", e1.BillableCost)
	suite.assertDecimal("480", e1.ActualCost)

	e2 := response.Data.Allocations[1]
	suite.assertDecimal("14.4", e2.AllocatedHours)
	suite.assertDecimal("1440", e2.BillableCost)
	suite.assertDecimal("576", e2.ActualCost)
}

func (suite *TestSuiteStandard) TestCreateAllocationsResubmit() {
	suite.submit()
	suite.submit()

	recorder := suite.request(http.MethodGet, "/v1/allocations", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 2, "Resubmitting must update the allocations in place")
}

func (suite *TestSuiteStandard) TestCreateAllocationsPercentageExceeded() {
	recorder := suite.request(http.MethodPost, "/v1/allocations", map[string]any{
		"projectId":   suite.apollo.ID,
		"assignments": []any{assignment("E1", 60), assignment("E1", 50)},
	})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
	suite.Assert().Contains(recorder.Body.String(), "110%")

	recorder = suite.request(http.MethodGet, "/v1/allocations", nil)
	var response v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 0, "A rejected batch must not write anything")
}

func (suite *TestSuiteStandard) TestCreateAllocationsErrors() {
	tests := []struct {
		name   string
		body   any
		status int
		kind   string
	}{
		{"Empty body", "", http.StatusBadRequest, "validation"},
		{"Broken JSON", `{"projectId": `, http.StatusBadRequest, "validation"},
		{"Missing project", map[string]any{"assignments": []any{assignment("E1", 50)}}, http.StatusBadRequest, "validation"},
		{"No assignments", map[string]any{"projectId": suite.apollo.ID, "assignments": []any{}}, http.StatusBadRequest, "validation"},
		{"Unknown project", map[string]any{"projectId": 9999, "assignments": []any{assignment("E1", 50)}}, http.StatusNotFound, "not_found"},
		{"Unknown person", map[string]any{"projectId": suite.apollo.ID, "assignments": []any{assignment("X9", 50)}}, http.StatusNotFound, "not_found"},
		{"Percentage above 100", map[string]any{"projectId": suite.apollo.ID, "assignments": []any{assignment("E1", 101)}}, http.StatusBadRequest, "validation"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			recorder := test.Request(t, suite.router, http.MethodPost, "/v1/allocations", tt.body)
			test.AssertHTTPStatus(t, &recorder, tt.status)
			suite.Assert().Contains(recorder.Body.String(), fmt.Sprintf(`"kind":"%s"`, tt.kind))
		})
	}
}

func (suite *TestSuiteStandard) TestCreateAllocationsMissingRate() {
	suite.Require().Nil(suite.db.Create(&models.Person{EID: "E3", Name: "E3"}).Error)

	recorder := suite.request(http.MethodPost, "/v1/allocations", map[string]any{
		"projectId":   suite.apollo.ID,
		"assignments": []any{assignment("E1", 50), assignment("E3", 50)},
	})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
	suite.Assert().Contains(recorder.Body.String(), "E3")
}

func (suite *TestSuiteStandard) TestGetAllocationsFilter() {
	suite.submit()

	recorder := suite.request(http.MethodGet, "/v1/allocations?person=E2", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.AllocationListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().Len(response.Data, 1)
	suite.Assert().Equal("E2", response.Data[0].PersonEID)

	recorder = suite.request(http.MethodGet, fmt.Sprintf("/v1/allocations?project=%d", suite.apollo.ID+1), nil)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 0)

	recorder = suite.request(http.MethodGet, "/v1/allocations?project=abc", nil)
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
}

func (suite *TestSuiteStandard) TestAllocationsDBClosed() {
	suite.CloseDB()

	recorder := suite.request(http.MethodGet, "/v1/allocations", nil)
	suite.assertError(&recorder, http.StatusInternalServerError, "internal")
}

func (suite *TestSuiteStandard) TestCreateAllocationsProjectManagerDemotion() {
	_, err := models.AddMembership(suite.db, suite.apollo.ID, "E1", models.RoleProjectManager)
	suite.Require().Nil(err)

	demoted := assignment("E1", 50)
	demoted["role"] = "Developer"
	recorder := suite.request(http.MethodPost, "/v1/allocations", map[string]any{
		"projectId":   suite.apollo.ID,
		"assignments": []any{demoted},
	})
	suite.assertError(&recorder, http.StatusForbidden, "forbidden")

	recorder = suite.request(http.MethodDelete, suite.assigneesURL("E1"), nil)
	suite.assertError(&recorder, http.StatusForbidden, "forbidden")
}
