package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/models"
)

func TestEmployeeLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/admin/employees", map[string]string{"name": "Sergey", "role": "waiter", "phone": ""})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := idOf(t, w)
	assert.NotContains(t, dataOf(t, w), "phone")

	path := fmt.Sprintf("/admin/employees/%d", id)
	w = s.do(http.MethodPatch, path, map[string]string{"role": "host"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "host", dataOf(t, w)["role"])

	order := models.Order{EmployeeID: &id, Status: models.OrderStatusOpen}
	require.NoError(t, s.db.Create(&order).Error)

	w = s.do(http.MethodDelete, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var reloaded models.Order
	require.NoError(t, s.db.First(&reloaded, order.ID).Error)
	assert.Nil(t, reloaded.EmployeeID)

	w = s.do(http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateEmployeeRequiresNameAndRole(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/admin/employees", map[string]string{})
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := fieldErrors(t, w)
	assert.Contains(t, errs, "name")
	assert.Contains(t, errs, "role")
}
