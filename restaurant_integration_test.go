package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/config"
	"github.com/yeremiapane/restaurant-frontdesk/database"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/router"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	utils.RegisterValidators()
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Seed admin, login -> token
// 1. Customer + table, reservation confirmed -> table occupied
// 2. Order 2×150 + 1×300, bill -> 600
// 3. Delete first item -> 300
// 4. Pay bill -> report shows turnover
// 5. Delete reservation -> table free
func TestEndToEndIntegration(t *testing.T) {
	db := setupTestDB(t)
	cfg := config.Default()
	sync, err := services.SynchronizerFromConfig(cfg.Sync)
	require.NoError(t, err)
	r := router.SetupRouter(router.Options{DB: db, Config: cfg, Sync: sync})

	token := loginTest(t, r)

	customerID := createTest(t, r, token, "/admin/customers", map[string]interface{}{
		"name":  "Anna Ivanova",
		"phone": "+79991234567",
	})
	tableID := createTest(t, r, token, "/admin/tables", map[string]interface{}{"number": 1, "seats": 4})
	borschtID := createTest(t, r, token, "/admin/menu-items", map[string]interface{}{"name": "Borscht", "price": "150.00"})
	pelmeniID := createTest(t, r, token, "/admin/menu-items", map[string]interface{}{"name": "Pelmeni", "price": "300.00"})

	reservationID := createTest(t, r, token, "/admin/reservations", map[string]interface{}{
		"customer_id": customerID,
		"table_id":    tableID,
		"reserved_at": time.Now().UTC().Add(2 * time.Hour).Format(time.RFC3339),
		"guests":      2,
		"status":      "confirmed",
	})
	assert.Equal(t, models.TableStatusOccupied, tableStatusTest(t, db, tableID))

	orderID := createTest(t, r, token, "/admin/orders", map[string]interface{}{
		"customer_id":    customerID,
		"table_id":       tableID,
		"reservation_id": reservationID,
		"items": []map[string]interface{}{
			{"menu_item_id": borschtID, "quantity": 2},
			{"menu_item_id": pelmeniID, "quantity": 1},
		},
	})
	billID := createTest(t, r, token, "/admin/bills", map[string]interface{}{"order_id": orderID})
	assertTotal(t, db, billID, "600")

	// 3. remove the borscht row
	w := request(t, r, token, http.MethodGet, fmt.Sprintf("/admin/orders/%d", orderID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := responseData(t, w)["items"].([]interface{})
	firstItem := uint(items[0].(map[string]interface{})["id"].(float64))

	w = request(t, r, token, http.MethodDelete, fmt.Sprintf("/admin/orders/%d/items/%d", orderID, firstItem), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assertTotal(t, db, billID, "300")

	// 4. pay and report
	w = request(t, r, token, http.MethodPatch, fmt.Sprintf("/admin/bills/%d", billID), map[string]interface{}{
		"paid":           true,
		"payment_method": "cash",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = request(t, r, token, http.MethodGet, "/admin/reports", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := responseData(t, w)
	assert.True(t, decimal.RequireFromString("300").Equal(decimal.RequireFromString(report["day_turnover"].(string))))
	assert.Equal(t, float64(1), report["bills_count"])

	// 5. deleting the reservation frees the table and detaches the order
	w = request(t, r, token, http.MethodDelete, fmt.Sprintf("/admin/reservations/%d", reservationID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, models.TableStatusFree, tableStatusTest(t, db, tableID))

	var order models.Order
	require.NoError(t, db.First(&order, orderID).Error)
	assert.Nil(t, order.ReservationID)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteMemory(t.Name())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	require.NoError(t, database.SeedAdmin(db, "admin@example.com", "admin-password"))
	return db
}

func loginTest(t *testing.T, r *gin.Engine) string {
	t.Helper()
	w := request(t, r, "", http.MethodPost, "/login", map[string]string{
		"email":    "admin@example.com",
		"password": "admin-password",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, ok := responseData(t, w)["token"].(string)
	require.True(t, ok)
	return token
}

func createTest(t *testing.T, r *gin.Engine, token, path string, body interface{}) uint {
	t.Helper()
	w := request(t, r, token, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, w.Code, "%s: %s", path, w.Body.String())
	return uint(responseData(t, w)["id"].(float64))
}

func request(t *testing.T, r *gin.Engine, token, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func responseData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data, ok := response["data"].(map[string]interface{})
	require.True(t, ok, w.Body.String())
	return data
}

func tableStatusTest(t *testing.T, db *gorm.DB, id uint) string {
	t.Helper()
	var table models.Table
	require.NoError(t, db.First(&table, id).Error)
	return table.Status
}

func assertTotal(t *testing.T, db *gorm.DB, billID uint, expected string) {
	t.Helper()
	var bill models.Bill
	require.NoError(t, db.First(&bill, billID).Error)
	assert.Truef(t, decimal.RequireFromString(expected).Equal(bill.Total), "expected %s, got %s", expected, bill.Total)
}
