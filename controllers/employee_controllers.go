package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"gorm.io/gorm"
)

type EmployeeController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewEmployeeController(db *gorm.DB, catalog *services.CatalogService) *EmployeeController {
	return &EmployeeController{DB: db, Catalog: catalog}
}

type employeeRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=100"`
	Role  *string `json:"role" binding:"omitempty,min=1,max=50"`
	Phone *string `json:"phone" binding:"omitempty,max=30"`
	Email *string `json:"email" binding:"omitempty,email"`
}

func (ec *EmployeeController) GetAllEmployees(c *gin.Context) {
	var employees []models.Employee
	if err := ec.DB.Order("name ASC").Find(&employees).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of employees", employees)
}

func (ec *EmployeeController) GetEmployeeByID(c *gin.Context) {
	id, ok := parseID(c, "employee_id")
	if !ok {
		return
	}
	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee detail", employee)
}

func (ec *EmployeeController) CreateEmployee(c *gin.Context) {
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}
	fields := map[string]string{}
	if req.Name == nil {
		fields["name"] = "This field is required."
	}
	if req.Role == nil {
		fields["role"] = "This field is required."
	}
	if len(fields) > 0 {
		utils.RespondValidation(c, http.StatusBadRequest, fields)
		return
	}

	employee := models.Employee{
		Name:  *req.Name,
		Role:  *req.Role,
		Phone: blankToNil(req.Phone),
		Email: blankToNil(req.Email),
	}
	if err := ec.DB.Create(&employee).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New employee created: %s (role=%s)", employee.Name, employee.Role)
	utils.RespondJSON(c, http.StatusCreated, "Employee created successfully", employee)
}

func (ec *EmployeeController) UpdateEmployee(c *gin.Context) {
	id, ok := parseID(c, "employee_id")
	if !ok {
		return
	}
	var req employeeRequest
	if !bindJSON(c, &req) {
		return
	}

	var employee models.Employee
	if err := ec.DB.First(&employee, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Role != nil {
		employee.Role = *req.Role
	}
	if req.Phone != nil {
		employee.Phone = blankToNil(req.Phone)
	}
	if req.Email != nil {
		employee.Email = blankToNil(req.Email)
	}

	if err := ec.DB.Save(&employee).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee updated successfully", employee)
}

// DeleteEmployee -> orders served by the employee keep existing without one
func (ec *EmployeeController) DeleteEmployee(c *gin.Context) {
	id, ok := parseID(c, "employee_id")
	if !ok {
		return
	}
	if err := ec.Catalog.DeleteEmployee(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee deleted successfully", nil)
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
