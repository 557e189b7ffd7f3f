package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

func TestCreateCustomer(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/admin/customers", map[string]string{
		"name":  "Anna Ivanova",
		"phone": "+79991234567",
		"email": "anna@example.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	response := decode(t, w)
	assert.Equal(t, "Customer created successfully", response["message"])
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "+79991234567", data["phone"])
	assert.NotEmpty(t, data["registered_at"])
}

func TestCreateCustomerRejectsBadPhone(t *testing.T) {
	s := newTestServer(t)

	for _, phone := range []string{"89991234567", "+7999123456", "+799912345678", "+7999123456a"} {
		w := s.do(http.MethodPost, "/admin/customers", map[string]string{"name": "Anna", "phone": phone})
		require.Equal(t, http.StatusBadRequest, w.Code, phone)
		assert.Equal(t, utils.PhoneFormatMessage, fieldErrors(t, w)["phone"], phone)
	}

	var count int64
	s.db.Model(&models.Customer{}).Count(&count)
	assert.Zero(t, count)
}

func TestCreateCustomerDuplicatePhone(t *testing.T) {
	s := newTestServer(t)
	s.seedCustomer("+79991234567")

	w := s.do(http.MethodPost, "/admin/customers", map[string]string{"name": "Other", "phone": "+79991234567"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation failed", decode(t, w)["message"])
	assert.Contains(t, fieldErrors(t, w), "phone")
}

func TestSearchCustomers(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.db.Create(&models.Customer{Name: "Boris Orlov", Phone: "+79990000001"}).Error)
	require.NoError(t, s.db.Create(&models.Customer{Name: "Anna Borisova", Phone: "+79990000002"}).Error)
	require.NoError(t, s.db.Create(&models.Customer{Name: "Pavel", Phone: "+79990000003"}).Error)

	w := s.do(http.MethodGet, "/admin/customers?search=boris", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, listOf(t, w), 2)

	w = s.do(http.MethodGet, "/admin/customers", nil)
	assert.Len(t, listOf(t, w), 3)
}

func TestUpdateCustomerPartial(t *testing.T) {
	s := newTestServer(t)
	customer := s.seedCustomer("+79991234567")

	w := s.do(http.MethodPatch, fmt.Sprintf("/admin/customers/%d", customer.ID), map[string]string{"name": "Anna Smirnova"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataOf(t, w)
	assert.Equal(t, "Anna Smirnova", data["name"])
	assert.Equal(t, "+79991234567", data["phone"])
}

func TestDeleteCustomerCascadesReservations(t *testing.T) {
	s := newTestServer(t)
	customer := s.seedCustomer("+79991234567")
	table := s.seedTable(1)
	reservation := models.Reservation{
		CustomerID: customer.ID,
		TableID:    &table.ID,
		ReservedAt: tomorrow(),
		Guests:     2,
		Status:     models.ReservationStatusConfirmed,
	}
	require.NoError(t, s.db.Create(&reservation).Error)
	require.NoError(t, s.db.Model(&table).Update("status", models.TableStatusOccupied).Error)

	w := s.do(http.MethodDelete, fmt.Sprintf("/admin/customers/%d", customer.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var count int64
	s.db.Model(&models.Reservation{}).Count(&count)
	assert.Zero(t, count)
	assert.Equal(t, models.TableStatusFree, s.tableStatus(table.ID))
}

func TestCustomerNotFound(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/admin/customers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/admin/customers/abc", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, "/admin/customers/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
