package reports

import (
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const monthwiseSheet = "Monthwise"

// CurrencySymbol returns the narrow currency symbol of the currency used in
// a locale such as "en-IN".
func CurrencySymbol(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("parsing locale %q: %w", locale, err)
	}

	unit, confidence := currency.FromTag(tag)
	if confidence == language.No {
		return "", fmt.Errorf("no currency known for locale %q", locale)
	}

	return message.NewPrinter(tag).Sprint(currency.NarrowSymbol(unit)), nil
}

// WriteMonthwiseXLSX writes the report as a spreadsheet with one block of
// revenue, cost and margin rows per project, followed by the department
// and overall totals.
func WriteMonthwiseXLSX(w io.Writer, report MonthwiseReport, currencySymbol string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", monthwiseSheet); err != nil {
		return err
	}

	header := []any{"Project", "Department", "Figure"}
	for month := time.January; month <= time.December; month++ {
		header = append(header, month.String()[:3])
	}
	header = append(header, "Total")

	if err := f.SetSheetRow(monthwiseSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	numFmt := fmt.Sprintf(`"%s"#,##0.00`, currencySymbol)
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}

	departmentNames := make(map[uint]string, len(report.Departments))
	for _, d := range report.Departments {
		departmentNames[d.DepartmentID] = d.Name
	}

	row := 2
	writeBlock := func(project, department string, monthly Months, total Totals) error {
		figures := []struct {
			name  string
			value func(Totals) decimal.Decimal
		}{
			{"Revenue", func(t Totals) decimal.Decimal { return t.Revenue }},
			{"Cost", func(t Totals) decimal.Decimal { return t.Cost }},
			{"Margin", func(t Totals) decimal.Decimal { return t.Margin }},
		}

		for _, figure := range figures {
			values := []any{project, department, figure.name}
			for month := 1; month <= 12; month++ {
				values = append(values, figure.value(monthly[month]).InexactFloat64())
			}
			values = append(values, figure.value(total).InexactFloat64())

			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(monthwiseSheet, cell, &values); err != nil {
				return err
			}
			row++
		}

		return nil
	}

	for _, p := range report.Projects {
		if err := writeBlock(p.Name, departmentNames[p.DepartmentID], p.Monthly, p.Total); err != nil {
			return err
		}
	}

	totalsStart := row
	for _, d := range report.Departments {
		if err := writeBlock("", d.Name, d.Monthly, d.Total); err != nil {
			return err
		}
	}

	scope := cases.Title(language.English).String(string(report.Scope))
	if err := writeBlock(fmt.Sprintf("Total (%s)", scope), "", report.Monthly, report.Total); err != nil {
		return err
	}

	last, err := excelize.CoordinatesToCellName(16, row-1)
	if err != nil {
		return err
	}

	if err := f.SetCellStyle(monthwiseSheet, "D2", last, money); err != nil {
		return err
	}

	if err := f.SetCellStyle(monthwiseSheet, "A1", "P1", bold); err != nil {
		return err
	}

	first, err := excelize.CoordinatesToCellName(1, totalsStart)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(monthwiseSheet, first, fmt.Sprintf("C%d", row-1), bold); err != nil {
		return err
	}

	if err := f.SetColWidth(monthwiseSheet, "A", "B", 24); err != nil {
		return err
	}

	return f.Write(w)
}
