package v1_test

import (
	"fmt"
	"net/http"

	v1 "github.com/workforce-ledger/backend/internal/controllers/v1"
	"github.com/workforce-ledger/backend/test"
)

func (suite *TestSuiteStandard) TestFinancialYears() {
	recorder := suite.request(http.MethodPost, "/v1/financial-years", v1.FinancialYearCreate{StartYear: 2024})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	var created v1.FinancialYearResponse
	test.DecodeResponse(suite.T(), &recorder, &created)
	suite.Assert().Equal("2024-2025", created.Data.Label)

	recorder = suite.request(http.MethodPost, "/v1/financial-years", v1.FinancialYearCreate{StartYear: 2024})
	suite.assertError(&recorder, http.StatusConflict, "conflict")

	recorder = suite.request(http.MethodPost, "/v1/financial-years", v1.FinancialYearCreate{StartYear: 2025})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusCreated)

	recorder = suite.request(http.MethodPost, "/v1/financial-years", map[string]any{"startYear": 12})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")

	recorder = suite.request(http.MethodGet, "/v1/financial-years", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var list v1.FinancialYearListResponse
	test.DecodeResponse(suite.T(), &recorder, &list)
	suite.Require().Len(list.Data, 2)
	suite.Assert().Equal("2025-2026", list.Data[0].Label, "Financial years must be sorted latest first")

	recorder = suite.request(http.MethodDelete, fmt.Sprintf("/v1/financial-years/%d", created.Data.ID), nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodDelete, fmt.Sprintf("/v1/financial-years/%d", created.Data.ID), nil)
	suite.assertError(&recorder, http.StatusNotFound, "not_found")
}

func (suite *TestSuiteStandard) TestSetFinancialRate() {
	recorder := suite.request(http.MethodPost, "/v1/financial-rates/E1", map[string]any{
		"financialYear":  "2025-2026",
		"salary":         8800,
		"infrastructure": 0,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var rate v1.FinancialRateResponse
	test.DecodeResponse(suite.T(), &recorder, &rate)
	suite.Require().True(rate.Data.HourlyCost.Valid)
	suite.assertDecimal("50", rate.Data.HourlyCost.Decimal)

	// Without infrastructure cost, there is no hourly cost
	recorder = suite.request(http.MethodPost, "/v1/financial-rates/E2", map[string]any{
		"financialYear": "2025-2026",
		"salary":        8800,
	})
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &rate)
	suite.Assert().False(rate.Data.HourlyCost.Valid)

	recorder = suite.request(http.MethodPost, "/v1/financial-rates/X9", map[string]any{"financialYear": "2025-2026", "salary": 1})
	suite.assertError(&recorder, http.StatusNotFound, "not_found")

	recorder = suite.request(http.MethodPost, "/v1/financial-rates/E1", map[string]any{"financialYear": "2025", "salary": 1})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")

	recorder = suite.request(http.MethodPost, "/v1/financial-rates/E1", map[string]any{"financialYear": "2025-2026", "salary": -1})
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
}

func (suite *TestSuiteStandard) TestGetFinancialRates() {
	recorder := suite.request(http.MethodGet, "/v1/financial-rates?year=2024-2025", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.FinancialRateListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)

	// E1, E2 and M1, sorted by employee ID
	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("E1", response.Data[0].EID)
	suite.assertDecimal("40", response.Data[0].HourlyCost.Decimal)
	suite.Assert().Equal("M1", response.Data[2].EID)
	suite.Assert().False(response.Data[2].HourlyCost.Valid, "People without a rate have no hourly cost")

	recorder = suite.request(http.MethodGet, "/v1/financial-rates", nil)
	suite.assertError(&recorder, http.StatusBadRequest, "validation")

	recorder = suite.request(http.MethodGet, "/v1/financial-rates?year=2024-2026", nil)
	suite.assertError(&recorder, http.StatusBadRequest, "validation")
}
