package models_test

import (
	"github.com/shopspring/decimal"
	"github.com/workforce-ledger/backend/internal/models"
)

func (suite *TestSuiteStandard) TestFinancialRateHourlyCost() {
	suite.createTestPerson(models.Person{EID: "E1"})
	rate := suite.createTestRate("E1", "2024-2025", 17000, 600)

	suite.Require().True(rate.HourlyCost.Valid)
	suite.Assert().True(rate.HourlyCost.Decimal.Equal(decimal.NewFromInt(100)), "hourly cost is %s", rate.HourlyCost.Decimal)

	cost, err := models.HourlyCost(suite.db, "E1", "2024-2025")
	suite.Require().Nil(err)
	suite.Assert().True(cost.Equal(decimal.NewFromInt(100)), "hourly cost is %s", cost)
}

func (suite *TestSuiteStandard) TestFinancialRateHourlyCostUnset() {
	suite.createTestPerson(models.Person{EID: "E1"})

	rate, err := models.SetFinancialRate(suite.db, "E1", "2024-2025", decimal.NewNullDecimal(decimal.NewFromInt(17000)), decimal.NullDecimal{})
	suite.Require().Nil(err)
	suite.Assert().False(rate.HourlyCost.Valid)

	_, err = models.HourlyCost(suite.db, "E1", "2024-2025")
	suite.Assert().ErrorIs(err, models.ErrHourlyCostNotSet)
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestFinancialRateRecomputed() {
	suite.createTestPerson(models.Person{EID: "E1"})
	first := suite.createTestRate("E1", "2024-2025", 17000, 600)
	second := suite.createTestRate("E1", "2024-2025", 34600, 600)

	suite.Assert().Equal(first.ID, second.ID)
	suite.Assert().True(second.HourlyCost.Decimal.Equal(decimal.NewFromInt(200)), "hourly cost is %s", second.HourlyCost.Decimal)

	var count int64
	suite.Require().Nil(suite.db.Model(&models.FinancialRate{}).Count(&count).Error)
	suite.Assert().Equal(int64(1), count)
}

func (suite *TestSuiteStandard) TestFinancialRateNotFound() {
	suite.createTestPerson(models.Person{EID: "E1"})
	suite.createTestRate("E1", "2024-2025", 17000, 600)

	_, err := models.HourlyCost(suite.db, "E1", "2025-2026")
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestFinancialRateValidation() {
	suite.createTestPerson(models.Person{EID: "E1"})

	_, err := models.SetFinancialRate(suite.db, "E1", "2024-2026", decimal.NullDecimal{}, decimal.NullDecimal{})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = models.SetFinancialRate(suite.db, "E1", "2024-2025", decimal.NewNullDecimal(decimal.NewFromInt(-1)), decimal.NullDecimal{})
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = models.SetFinancialRate(suite.db, "E404", "2024-2025", decimal.NullDecimal{}, decimal.NullDecimal{})
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestFinancialRates() {
	suite.createTestPerson(models.Person{EID: "E1"})
	suite.createTestPerson(models.Person{EID: "E2"})
	suite.createTestRate("E1", "2024-2025", 17000, 600)
	suite.createTestRate("E2", "2023-2024", 17000, 600)

	rates, err := models.FinancialRates(suite.db, "2024-2025")
	suite.Require().Nil(err)
	suite.Require().Len(rates, 2)

	suite.Assert().Equal("E1", rates[0].EID)
	suite.Assert().True(rates[0].HourlyCost.Valid)
	suite.Assert().Equal("E2", rates[1].EID)
	suite.Assert().False(rates[1].Salary.Valid)
	suite.Assert().False(rates[1].HourlyCost.Valid)

	_, err = models.FinancialRates(suite.db, "2024")
	suite.Assert().ErrorIs(err, models.ErrValidation)
}

func (suite *TestSuiteStandard) TestFinancialYears() {
	first, err := models.CreateFinancialYear(suite.db, 2024)
	suite.Require().Nil(err)
	suite.Assert().Equal("2024-2025", first.Label)
	suite.Assert().Equal("2024-04-01", first.StartDate.String())
	suite.Assert().Equal("2025-03-31", first.EndDate.String())

	_, err = models.CreateFinancialYear(suite.db, 2024)
	suite.Assert().ErrorIs(err, models.ErrFinancialYearExists)

	_, err = models.CreateFinancialYear(suite.db, 12)
	suite.Assert().ErrorIs(err, models.ErrValidation)

	_, err = models.CreateFinancialYear(suite.db, 2025)
	suite.Require().Nil(err)

	years, err := models.FinancialYears(suite.db)
	suite.Require().Nil(err)
	suite.Require().Len(years, 2)
	suite.Assert().Equal("2025-2026", years[0].Label)

	suite.Require().Nil(models.DeleteFinancialYear(suite.db, first.ID))
	suite.Assert().ErrorIs(models.DeleteFinancialYear(suite.db, first.ID), models.ErrResourceNotFound)
}
