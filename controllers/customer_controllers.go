package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

type CustomerController struct {
	Customers *services.CustomerService
}

func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{Customers: customers}
}

type customerRequest struct {
	Name  string  `json:"name" binding:"required,max=100"`
	Phone string  `json:"phone" binding:"required,ruphone"`
	Email *string `json:"email" binding:"omitempty,email"`
}

type customerPatch struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Phone *string `json:"phone" binding:"omitempty,ruphone"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// GetAllCustomers -> ?search= matches part of the name
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Customers.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, ok := parseID(c, "customer_id")
	if !ok {
		return
	}
	customer, err := cc.Customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}

func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req customerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := cc.Customers.Create(c.Request.Context(), services.CustomerInput{
		Name:  req.Name,
		Phone: req.Phone,
		Email: req.Email,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New customer created: %d", customer.ID)
	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

// UpdateCustomer -> only the fields present in the body change
func (cc *CustomerController) UpdateCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer_id")
	if !ok {
		return
	}
	var req customerPatch
	if !bindJSON(c, &req) {
		return
	}

	current, err := cc.Customers.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	in := services.CustomerInput{Name: current.Name, Phone: current.Phone, Email: current.Email}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Phone != nil {
		in.Phone = *req.Phone
	}
	if req.Email != nil {
		in.Email = req.Email
	}

	customer, err := cc.Customers.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Customer updated successfully", customer)
}

// DeleteCustomer -> also deletes the customer's reservations
func (cc *CustomerController) DeleteCustomer(c *gin.Context) {
	id, ok := parseID(c, "customer_id")
	if !ok {
		return
	}
	if err := cc.Customers.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Customer %d deleted", id)
	utils.RespondJSON(c, http.StatusOK, "Customer deleted successfully", nil)
}
