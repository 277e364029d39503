package models_test

import (
	"github.com/workforce-ledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestRecentActivities() {
	models.RecordActivity(suite.db, "Project", "Apollo", "created")
	models.RecordActivity(suite.db, "Project", "Gemini", "created")
	models.RecordActivity(suite.db, "Project", "Apollo", "deleted")

	entries, err := models.RecentActivities(suite.db, 2)
	suite.Require().Nil(err)
	suite.Require().Len(entries, 2)
	suite.Assert().Equal("deleted", entries[0].Action)
	suite.Assert().Equal("Gemini", entries[1].Name)
}

func (suite *TestSuiteStandard) TestRecordActivityClosedDatabase() {
	suite.CloseDB()

	suite.Assert().NotPanics(func() {
		models.RecordActivity(suite.db, "Project", "Apollo", "created")
	})
}
