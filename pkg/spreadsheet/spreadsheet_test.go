package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/oysloe/oysloe-backend/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteSellers(t *testing.T) {
	reviewedAt := time.Date(2024, 3, 2, 9, 30, 0, 0, time.UTC)
	sellers := []model.Seller{
		{
			ID:              1,
			BusinessName:    "Kofi Wares",
			BusinessType:    model.BusinessTypeRetailer,
			OwnerName:       "Kofi Mensah",
			EmailAddress:    "kofi@example.com",
			PhoneNumber:     "+233200000000",
			Location:        "Accra",
			ExperienceLevel: model.ExperienceExpert,
			InventorySize:   model.InventoryLarge,
			Status:          model.SellerStatusApproved,
			CreatedAt:       time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			ReviewedBy:      &model.User{Email: "staff@example.com"},
			ReviewedAt:      &reviewedAt,
			ReviewNotes:     "looks good",
			Assignees:       []model.User{{Email: "a@example.com"}, {Email: "b@example.com"}},
		},
		{
			ID:           2,
			BusinessName: "Ama Fabrics",
			Status:       model.SellerStatusPending,
			CreatedAt:    time.Date(2024, 3, 3, 8, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteSellers(&buf, sellers, time.UTC))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sellers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, sellerHeaders, rows[0])

	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Kofi Wares", rows[1][1])
	assert.Equal(t, "Approved", rows[1][9])
	assert.Equal(t, "2024-03-01 12:00:00", rows[1][10])
	assert.Equal(t, "staff@example.com", rows[1][11])
	assert.Equal(t, "2024-03-02 09:30:00", rows[1][12])
	assert.Equal(t, "a@example.com, b@example.com", rows[1][14])

	assert.Equal(t, "Pending", rows[2][9])
}

func TestWriteSellers_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSellers(&buf, nil, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sellers")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func pricingWorkbook(t *testing.T, rows [][]interface{}) *bytes.Reader {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := []interface{}{"name", "display_name", "description", "monthly_price", "yearly_price",
		"cancelled_monthly_price", "cancelled_yearly_price", "is_popular", "is_active"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return bytes.NewReader(buf.Bytes())
}

func TestReadPricingPlans(t *testing.T) {
	r := pricingWorkbook(t, [][]interface{}{
		{"basic", "Basic 3x", "Starter", "567.00", "5440.00", "750", "9000", "no", "yes"},
		{},
		{"Business", "Business 4x", "Growing", "600", "6000", "", "", "true", ""},
	})

	plans, err := ReadPricingPlans(r)
	require.NoError(t, err)
	require.Len(t, plans, 2)

	assert.Equal(t, model.PlanBasic, plans[0].Name)
	assert.True(t, plans[0].MonthlyPrice.Equal(decimal.RequireFromString("567")))
	require.NotNil(t, plans[0].CancelledYearlyPrice)
	assert.True(t, plans[0].CancelledYearlyPrice.Equal(decimal.NewFromInt(9000)))
	assert.False(t, plans[0].IsPopular)
	assert.True(t, plans[0].IsActive)

	assert.Equal(t, model.PlanBusiness, plans[1].Name)
	assert.Nil(t, plans[1].CancelledMonthlyPrice)
	assert.True(t, plans[1].IsPopular)
	assert.True(t, plans[1].IsActive)
}

func TestReadPricingPlans_Errors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]interface{}
	}{
		{name: "Unknown plan", rows: [][]interface{}{{"gold", "Gold", "x", "1", "10"}}},
		{name: "Bad price", rows: [][]interface{}{{"basic", "Basic", "x", "cheap", "10"}}},
		{name: "Too few columns", rows: [][]interface{}{{"basic", "Basic"}}},
		{name: "Header only", rows: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadPricingPlans(pricingWorkbook(t, tt.rows))
			assert.Error(t, err)
		})
	}
}
