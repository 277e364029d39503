package models

import (
	"fmt"

	"github.com/workforce-ledger/backend/internal/types"
	"gorm.io/gorm"
)

// FinancialYear is a registered financial year.
type FinancialYear struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Label     string     `json:"label" gorm:"uniqueIndex:idx_financial_years_label"`
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	Timestamps
}

// CreateFinancialYear registers the financial year starting in April of startYear.
func CreateFinancialYear(db *gorm.DB, startYear int) (FinancialYear, error) {
	if startYear < 1900 || startYear > 9998 {
		return FinancialYear{}, ErrFinancialYearStartInvalid
	}

	fy := types.FinancialYear{StartYear: startYear}
	year := FinancialYear{
		Label:     fy.Label(),
		StartDate: fy.Start(),
		EndDate:   fy.End(),
	}

	if err := db.Create(&year).Error; err != nil {
		return FinancialYear{}, err
	}

	RecordActivity(db, "FinancialYear", year.Label, "created")
	return year, nil
}

// FinancialYears returns all registered financial years, latest first.
func FinancialYears(db *gorm.DB) ([]FinancialYear, error) {
	var years []FinancialYear
	err := db.Order("start_date DESC").Find(&years).Error
	return years, err
}

// DeleteFinancialYear removes a financial year from the registry.
// Rates stored for its label are kept.
func DeleteFinancialYear(db *gorm.DB, id uint) error {
	var year FinancialYear
	if err := db.First(&year, id).Error; err != nil {
		return err
	}

	if err := db.Delete(&year).Error; err != nil {
		return fmt.Errorf("deleting financial year %s: %w", year.Label, err)
	}

	RecordActivity(db, "FinancialYear", year.Label, "deleted")
	return nil
}
