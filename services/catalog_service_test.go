package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
)

func TestDeleteTableNullsReferences(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewCatalogService(db)
	customer := seedCustomer(t, db, "+79990000001")
	table := seedTable(t, db, 9)

	r := models.Reservation{CustomerID: customer.ID, TableID: &table.ID, ReservedAt: tomorrowAt(18), Guests: 2, Status: models.ReservationStatusPending}
	require.NoError(t, db.Create(&r).Error)
	order := models.Order{TableID: &table.ID, Status: models.OrderStatusOpen}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, svc.DeleteTable(context.Background(), table.ID))

	require.NoError(t, db.First(&r, r.ID).Error)
	assert.Nil(t, r.TableID)
	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Nil(t, order.TableID)
	assert.ErrorIs(t, svc.DeleteTable(context.Background(), table.ID), services.ErrNotFound)
}

func TestDeleteMenuItemKeepsStoredPrice(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewCatalogService(db)
	soup := seedMenuItem(t, db, "Borscht", "150")

	order := models.Order{Status: models.OrderStatusOpen}
	require.NoError(t, db.Create(&order).Error)
	item := models.OrderItem{OrderID: order.ID, MenuItemID: &soup.ID, Quantity: 1, Price: decimal.NewFromInt(150)}
	require.NoError(t, db.Create(&item).Error)

	require.NoError(t, svc.DeleteMenuItem(context.Background(), soup.ID))

	require.NoError(t, db.First(&item, item.ID).Error)
	assert.Nil(t, item.MenuItemID)
	requireDecimal(t, "150", item.Price)
}

func TestDeleteEmployeeNullsOrders(t *testing.T) {
	db := setupTestDB(t)
	svc := services.NewCatalogService(db)
	waiter := models.Employee{Name: "Olga", Role: "waiter"}
	require.NoError(t, db.Create(&waiter).Error)
	order := models.Order{EmployeeID: &waiter.ID, Status: models.OrderStatusOpen}
	require.NoError(t, db.Create(&order).Error)

	require.NoError(t, svc.DeleteEmployee(context.Background(), waiter.ID))

	require.NoError(t, db.First(&order, order.ID).Error)
	assert.Nil(t, order.EmployeeID)
}
