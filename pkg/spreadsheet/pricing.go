package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 요금제 시트 컬럼 순서 (첫 행은 헤더)
const (
	colName = iota
	colDisplayName
	colDescription
	colMonthly
	colYearly
	colCancelledMonthly
	colCancelledYearly
	colPopular
	colActive
	minPricingColumns = colYearly + 1
)

// ReadPricingPlans parses the first sheet of an xlsx workbook into plans.
// Blank rows are skipped; any malformed row fails the whole read.
func ReadPricingPlans(r io.Reader) ([]model.PricingPlan, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	plans := make([]model.PricingPlan, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		if isBlankRow(row) {
			continue
		}
		if len(row) < minPricingColumns {
			return nil, fmt.Errorf("row %d: expected at least %d columns, got %d", line, minPricingColumns, len(row))
		}

		plan, err := parsePlanRow(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func parsePlanRow(row []string) (model.PricingPlan, error) {
	name := model.PlanName(strings.ToLower(cell(row, colName)))
	if !name.IsValid() {
		return model.PricingPlan{}, fmt.Errorf("unknown plan name %q", cell(row, colName))
	}

	monthly, err := decimal.NewFromString(cell(row, colMonthly))
	if err != nil {
		return model.PricingPlan{}, fmt.Errorf("invalid monthly price: %w", err)
	}
	yearly, err := decimal.NewFromString(cell(row, colYearly))
	if err != nil {
		return model.PricingPlan{}, fmt.Errorf("invalid yearly price: %w", err)
	}
	cancelledMonthly, err := optionalDecimal(cell(row, colCancelledMonthly))
	if err != nil {
		return model.PricingPlan{}, fmt.Errorf("invalid cancelled monthly price: %w", err)
	}
	cancelledYearly, err := optionalDecimal(cell(row, colCancelledYearly))
	if err != nil {
		return model.PricingPlan{}, fmt.Errorf("invalid cancelled yearly price: %w", err)
	}
	popular, err := optionalBool(cell(row, colPopular), false)
	if err != nil {
		return model.PricingPlan{}, fmt.Errorf("invalid popular flag: %w", err)
	}
	active, err := optionalBool(cell(row, colActive), true)
	if err != nil {
		return model.PricingPlan{}, fmt.Errorf("invalid active flag: %w", err)
	}

	return model.PricingPlan{
		Name:                  name,
		DisplayName:           cell(row, colDisplayName),
		Description:           cell(row, colDescription),
		MonthlyPrice:          monthly.Round(2),
		YearlyPrice:           yearly.Round(2),
		CancelledMonthlyPrice: cancelledMonthly,
		CancelledYearlyPrice:  cancelledYearly,
		IsPopular:             popular,
		IsActive:              active,
	}, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func optionalDecimal(s string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	d = d.Round(2)
	return &d, nil
}

func optionalBool(s string, fallback bool) (bool, error) {
	switch strings.ToLower(s) {
	case "":
		return fallback, nil
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}
