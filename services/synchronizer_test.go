package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/config"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
)

func TestStrictStatusPolicy(t *testing.T) {
	policy := services.StrictStatusPolicy{}
	tests := []struct {
		reservation string
		table       string
		changes     bool
	}{
		{models.ReservationStatusConfirmed, models.TableStatusOccupied, true},
		{models.ReservationStatusCancelled, models.TableStatusFree, true},
		{models.ReservationStatusPending, "", false},
		{models.ReservationStatusCompleted, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.reservation, func(t *testing.T) {
			status, ok := policy.TableStatusFor(tt.reservation)
			assert.Equal(t, tt.changes, ok)
			assert.Equal(t, tt.table, status)
		})
	}
}

func TestBinaryStatusPolicy(t *testing.T) {
	policy := services.BinaryStatusPolicy{}
	status, ok := policy.TableStatusFor(models.ReservationStatusConfirmed)
	assert.True(t, ok)
	assert.Equal(t, models.TableStatusOccupied, status)

	for _, s := range []string{models.ReservationStatusPending, models.ReservationStatusCancelled, models.ReservationStatusCompleted} {
		status, ok := policy.TableStatusFor(s)
		assert.True(t, ok)
		assert.Equal(t, models.TableStatusFree, status, s)
	}
}

func TestPriceSources(t *testing.T) {
	item := models.OrderItem{Price: decimal.NewFromInt(150), Quantity: 2}
	requireDecimal(t, "150", services.SnapshotPrice{}.UnitPrice(item))
	requireDecimal(t, "150", services.LivePrice{}.UnitPrice(item))

	item.MenuItem = &models.MenuItem{Price: decimal.NewFromInt(200)}
	requireDecimal(t, "150", services.SnapshotPrice{}.UnitPrice(item))
	requireDecimal(t, "200", services.LivePrice{}.UnitPrice(item))

	assert.False(t, services.SnapshotPrice{}.NeedsMenuItem())
	assert.True(t, services.LivePrice{}.NeedsMenuItem())
}

func TestSynchronizerFromConfig(t *testing.T) {
	_, err := services.SynchronizerFromConfig(config.SyncConfig{TableStatusPolicy: "binary", BillPriceSource: "live"})
	assert.NoError(t, err)

	_, err = services.SynchronizerFromConfig(config.SyncConfig{TableStatusPolicy: "loose"})
	assert.Error(t, err)

	_, err = services.SynchronizerFromConfig(config.SyncConfig{BillPriceSource: "average"})
	assert.Error(t, err)
}

func TestReservationSavedWithoutTableIsNoop(t *testing.T) {
	db := setupTestDB(t)
	sync := services.DefaultSynchronizer()

	table, err := sync.ReservationSaved(db, &models.Reservation{Status: models.ReservationStatusConfirmed})
	require.NoError(t, err)
	assert.Nil(t, table)
}

func TestReservationSavedMissingTableIsNoop(t *testing.T) {
	db := setupTestDB(t)
	sync := services.DefaultSynchronizer()

	table, err := sync.ReservationSaved(db, &models.Reservation{TableID: ptr(uint(999)), Status: models.ReservationStatusConfirmed})
	require.NoError(t, err)
	assert.Nil(t, table)
}

func TestOrderItemChangedWithoutBillIsNoop(t *testing.T) {
	db := setupTestDB(t)
	sync := services.DefaultSynchronizer()

	order := models.Order{Status: models.OrderStatusOpen}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, Quantity: 2, Price: decimal.NewFromInt(150)}).Error)

	bill, err := sync.OrderItemChanged(db, order.ID)
	require.NoError(t, err)
	assert.Nil(t, bill)

	var count int64
	db.Model(&models.Bill{}).Count(&count)
	assert.Zero(t, count)
}

func TestOrderItemChangedUpdatesFirstBillOnly(t *testing.T) {
	db := setupTestDB(t)
	sync := services.DefaultSynchronizer()

	order := models.Order{Status: models.OrderStatusOpen}
	require.NoError(t, db.Create(&order).Error)
	first := models.Bill{OrderID: order.ID, Total: decimal.Zero}
	second := models.Bill{OrderID: order.ID, Total: decimal.NewFromInt(7)}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, Quantity: 3, Price: decimal.RequireFromString("10.50")}).Error)

	bill, err := sync.OrderItemChanged(db, order.ID)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.Equal(t, first.ID, bill.ID)

	requireDecimal(t, "31.5", billTotal(t, db, first.ID))
	requireDecimal(t, "7", billTotal(t, db, second.ID))
}

func TestLivePriceFollowsMenuAndFallsBack(t *testing.T) {
	db := setupTestDB(t)
	sync := services.NewSynchronizer(services.StrictStatusPolicy{}, services.LivePrice{}, true)
	orders := services.NewOrderService(db, sync, nil)
	bills := services.NewBillService(db, sync)
	catalog := services.NewCatalogService(db)
	ctx := context.Background()

	soup := seedMenuItem(t, db, "Borscht", "150")
	tea := seedMenuItem(t, db, "Tea", "50")
	order, err := orders.Create(ctx, services.OrderInput{Items: []services.OrderItemInput{
		{MenuItemID: &soup.ID, Quantity: ptr(2)},
		{MenuItemID: &tea.ID, Quantity: ptr(1)},
	}})
	require.NoError(t, err)
	bill, err := bills.Create(ctx, services.BillInput{OrderID: order.ID})
	require.NoError(t, err)
	requireDecimal(t, "350", bill.Total)

	require.NoError(t, db.Model(&soup).Update("price", decimal.NewFromInt(200)).Error)
	_, err = orders.UpdateItem(ctx, order.ID, order.Items[1].ID, services.OrderItemInput{Quantity: ptr(2)})
	require.NoError(t, err)
	requireDecimal(t, "500", billTotal(t, db, bill.ID))

	// without the menu reference the stored price is used again
	require.NoError(t, catalog.DeleteMenuItem(ctx, soup.ID))
	require.NoError(t, orders.DeleteItem(ctx, order.ID, order.Items[1].ID))
	requireDecimal(t, "300", billTotal(t, db, bill.ID))
}

// halfPrice charges half the current menu price.
type halfPrice struct{ calls int }

func (p *halfPrice) UnitPrice(item models.OrderItem) decimal.Decimal {
	p.calls++
	if item.MenuItem == nil {
		return item.Price
	}
	return item.MenuItem.Price.Div(decimal.NewFromInt(2))
}

func (p *halfPrice) NeedsMenuItem() bool { return true }

func TestOrderTotalPreloadsMenuItemForCustomPriceSource(t *testing.T) {
	db := setupTestDB(t)
	source := &halfPrice{}
	sync := services.NewSynchronizer(services.StrictStatusPolicy{}, source, true)

	soup := seedMenuItem(t, db, "Borscht", "300")
	order := models.Order{Status: models.OrderStatusOpen}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, MenuItemID: &soup.ID, Quantity: 2, Price: decimal.NewFromInt(100)}).Error)

	total, err := sync.OrderTotal(db, order.ID)
	require.NoError(t, err)
	requireDecimal(t, "300", total)
	assert.Equal(t, 1, source.calls)
}
