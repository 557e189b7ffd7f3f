package services_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/database"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteMemory(strings.ReplaceAll(t.Name(), "/", "_"))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, phone string) models.Customer {
	t.Helper()
	c := models.Customer{Name: "Ivan Petrov", Phone: phone}
	require.NoError(t, db.Create(&c).Error)
	return c
}

func seedTable(t *testing.T, db *gorm.DB, number int) models.Table {
	t.Helper()
	table := models.Table{Number: number, Seats: 4, Status: models.TableStatusFree}
	require.NoError(t, db.Create(&table).Error)
	return table
}

func seedMenuItem(t *testing.T, db *gorm.DB, name, price string) models.MenuItem {
	t.Helper()
	m := models.MenuItem{Name: name, Price: decimal.RequireFromString(price), Available: true}
	require.NoError(t, db.Create(&m).Error)
	return m
}

func tableStatus(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var table models.Table
	require.NoError(t, db.First(&table, id).Error)
	return table.Status
}

func billTotal(t *testing.T, db *gorm.DB, id uint) decimal.Decimal {
	t.Helper()
	var bill models.Bill
	require.NoError(t, db.First(&bill, id).Error)
	return bill.Total
}

func requireDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	require.Truef(t, decimal.RequireFromString(expected).Equal(actual), "expected %s, got %s", expected, actual)
}

func ptr[T any](v T) *T {
	return &v
}

func tomorrowAt(hour int) time.Time {
	d := time.Now().UTC().AddDate(0, 0, 1)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, time.UTC)
}

// recordingNotifier remembers every change it is told about.
type recordingNotifier struct {
	tables []models.Table
	bills  []models.Bill
}

func (n *recordingNotifier) TableStatusChanged(table models.Table) {
	n.tables = append(n.tables, table)
}

func (n *recordingNotifier) BillTotalChanged(bill models.Bill) {
	n.bills = append(n.bills, bill)
}
