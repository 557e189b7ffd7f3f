package documents

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
)

func TestReceiptNumber(t *testing.T) {
	bill := models.Bill{ID: 42, IssuedAt: time.Date(2026, 3, 9, 22, 30, 0, 0, time.UTC)}
	assert.Equal(t, "BILL/20260309/000042", ReceiptNumber(bill, time.UTC))

	moscow := time.FixedZone("MSK", 3*60*60)
	assert.Equal(t, "BILL/20260310/000042", ReceiptNumber(bill, moscow))
}

func TestWriteBillReceipt(t *testing.T) {
	card := "card"
	bill := models.Bill{
		ID:            7,
		OrderID:       3,
		IssuedAt:      time.Now().UTC(),
		Total:         decimal.NewFromInt(600),
		Paid:          true,
		PaymentMethod: &card,
		Order: &models.Order{ID: 3, Items: []models.OrderItem{
			{ID: 1, Quantity: 2, Price: decimal.NewFromInt(150), MenuItem: &models.MenuItem{Name: "Borscht"}},
			{ID: 2, Quantity: 1, Price: decimal.NewFromInt(300)},
		}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteBillReceipt(&buf, bill, nil))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteDailyReport(t *testing.T) {
	report := services.DailyReport{
		Date:          "2026-03-10",
		DayTurnover:   decimal.RequireFromString("360.50"),
		MonthTurnover: decimal.RequireFromString("400.50"),
		BillsCount:    4,
		PopularDishes: []services.DishPopularity{{Name: "Borscht", Quantity: 11}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDailyReport(&buf, report))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteTopDishesChart(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTopDishesChart(&buf, []services.DishPopularity{
		{Name: "Borscht", Quantity: 11},
		{Name: "Pelmeni", Quantity: 7},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	assert.ErrorIs(t, WriteTopDishesChart(&buf, nil), ErrNoData)
}
