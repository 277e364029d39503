package v1_test

import (
	"net/http"

	v1 "github.com/workforce-ledger/backend/internal/controllers/v1"
	"github.com/workforce-ledger/backend/test"
)

func (suite *TestSuiteStandard) TestGetActivities() {
	suite.submit()

	recorder := suite.request(http.MethodGet, "/v1/activities", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)

	var response v1.ActivityListResponse
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Require().NotEmpty(response.Data)
	suite.Assert().Equal("Allocation", response.Data[0].Type, "The latest activity must be listed first")

	recorder = suite.request(http.MethodGet, "/v1/activities?limit=1", nil)
	test.AssertHTTPStatus(suite.T(), &recorder, http.StatusOK)
	test.DecodeResponse(suite.T(), &recorder, &response)
	suite.Assert().Len(response.Data, 1)

	for _, url := range []string{"/v1/activities?limit=1000", "/v1/activities?limit=-1", "/v1/activities?limit=many"} {
		recorder = suite.request(http.MethodGet, url, nil)
		suite.assertError(&recorder, http.StatusBadRequest, "validation")
	}
}
