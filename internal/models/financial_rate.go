package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/workforce-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// MonthlyHours is the divisor turning monthly salary and infrastructure
// cost into an hourly cost.
var MonthlyHours = decimal.NewFromInt(176)

// FinancialRate holds the cost figures of one person for one financial year.
type FinancialRate struct {
	DefaultModel
	PersonEID      string              `json:"personId" gorm:"column:person_eid;uniqueIndex:idx_financial_rate_person_year,priority:1"`
	Person         Person              `json:"-" gorm:"foreignKey:PersonEID;references:EID;constraint:OnDelete:CASCADE"`
	FinancialYear  string              `json:"financialYear" gorm:"uniqueIndex:idx_financial_rate_person_year,priority:2"`
	Salary         decimal.NullDecimal `json:"salary" gorm:"type:DECIMAL(20,8)"`
	Infrastructure decimal.NullDecimal `json:"infrastructure" gorm:"type:DECIMAL(20,8)"`
	HourlyCost     decimal.NullDecimal `json:"hourlyCost" gorm:"type:DECIMAL(20,8)"`
}

// BeforeSave derives the hourly cost. It stays unset until both salary and
// infrastructure are known.
func (r *FinancialRate) BeforeSave(_ *gorm.DB) error {
	if _, err := types.ParseFinancialYear(r.FinancialYear); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}

	for name, v := range map[string]decimal.NullDecimal{"salary": r.Salary, "infrastructure": r.Infrastructure} {
		if v.Valid && v.Decimal.IsNegative() {
			return fmt.Errorf("%w: %s must not be negative", ErrValidation, name)
		}
	}

	r.HourlyCost = decimal.NullDecimal{}
	if r.Salary.Valid && r.Infrastructure.Valid {
		r.HourlyCost = decimal.NewNullDecimal(r.Salary.Decimal.Add(r.Infrastructure.Decimal).DivRound(MonthlyHours, 8))
	}

	return nil
}

// GetFinancialRate returns the rate for the exact person and financial year.
func GetFinancialRate(db *gorm.DB, eid, year string) (FinancialRate, error) {
	var rate FinancialRate
	err := db.Where(&FinancialRate{PersonEID: eid, FinancialYear: year}).First(&rate).Error
	if errors.Is(err, ErrResourceNotFound) {
		return FinancialRate{}, fmt.Errorf("%w financial rate for %s in %s", ErrResourceNotFound, eid, year)
	}
	return rate, err
}

// HourlyCost resolves the hourly cost of a person in a financial year.
func HourlyCost(db *gorm.DB, eid, year string) (decimal.Decimal, error) {
	rate, err := GetFinancialRate(db, eid, year)
	if err != nil {
		return decimal.Zero, err
	}

	if !rate.HourlyCost.Valid {
		return decimal.Zero, fmt.Errorf("%w for %s in %s", ErrHourlyCostNotSet, eid, year)
	}

	return rate.HourlyCost.Decimal, nil
}

// RateResolver resolves hourly costs from the database.
type RateResolver struct {
	DB *gorm.DB
}

func (r RateResolver) HourlyCost(eid, year string) (decimal.Decimal, error) {
	return HourlyCost(r.DB, eid, year)
}

// SetFinancialRate creates or updates the rate of a person for a financial year.
func SetFinancialRate(db *gorm.DB, eid, year string, salary, infrastructure decimal.NullDecimal) (FinancialRate, error) {
	var rate FinancialRate

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := GetPerson(tx, eid); err != nil {
			return err
		}

		err := tx.Where(&FinancialRate{PersonEID: eid, FinancialYear: year}).First(&rate).Error
		if err != nil && !errors.Is(err, ErrResourceNotFound) {
			return err
		}

		rate.PersonEID = eid
		rate.FinancialYear = year
		rate.Salary = salary
		rate.Infrastructure = infrastructure

		return tx.Save(&rate).Error
	})
	if err != nil {
		return FinancialRate{}, err
	}

	RecordActivity(db, "FinancialRate", fmt.Sprintf("%s %s", eid, year), "updated")
	return rate, nil
}

// PersonFinancials is a person with their rate for one financial year.
// The figures are unset when no rate is stored.
type PersonFinancials struct {
	EID            string              `json:"eid"`
	Name           string              `json:"name"`
	FinancialYear  string              `json:"financialYear"`
	Salary         decimal.NullDecimal `json:"salary"`
	Infrastructure decimal.NullDecimal `json:"infrastructure"`
	HourlyCost     decimal.NullDecimal `json:"hourlyCost"`
}

// FinancialRates lists every person with their rate for the financial year.
func FinancialRates(db *gorm.DB, year string) ([]PersonFinancials, error) {
	if _, err := types.ParseFinancialYear(year); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	var people []Person
	if err := db.Order("eid").Find(&people).Error; err != nil {
		return nil, err
	}

	var rates []FinancialRate
	if err := db.Where("financial_year = ?", year).Find(&rates).Error; err != nil {
		return nil, err
	}

	byPerson := make(map[string]FinancialRate, len(rates))
	for _, r := range rates {
		byPerson[r.PersonEID] = r
	}

	result := make([]PersonFinancials, 0, len(people))
	for _, p := range people {
		r := byPerson[p.EID]
		result = append(result, PersonFinancials{
			EID:            p.EID,
			Name:           p.Name,
			FinancialYear:  year,
			Salary:         r.Salary,
			Infrastructure: r.Infrastructure,
			HourlyCost:     r.HourlyCost,
		})
	}

	return result, nil
}
