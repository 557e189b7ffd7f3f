package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"gorm.io/gorm"
)

type TableController struct {
	DB       *gorm.DB
	Catalog  *services.CatalogService
	Notifier services.Notifier
}

func NewTableController(db *gorm.DB, catalog *services.CatalogService, notifier services.Notifier) *TableController {
	if notifier == nil {
		notifier = services.NopNotifier{}
	}
	return &TableController{DB: db, Catalog: catalog, Notifier: notifier}
}

type tableRequest struct {
	Number *int    `json:"number" binding:"omitempty,min=1"`
	Seats  *int    `json:"seats" binding:"omitempty,min=1"`
	Status *string `json:"status" binding:"omitempty,oneof=free reserved occupied"`
}

// GetAllTables -> ?status= filters by table status
func (tc *TableController) GetAllTables(c *gin.Context) {
	q := tc.DB.Order("number ASC")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var tables []models.Table
	if err := q.Find(&tables).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

func (tc *TableController) GetTableByID(c *gin.Context) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}
	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

func (tc *TableController) CreateTable(c *gin.Context) {
	var req tableRequest
	if !bindJSON(c, &req) {
		return
	}
	fields := map[string]string{}
	if req.Number == nil {
		fields["number"] = "This field is required."
	}
	if req.Seats == nil {
		fields["seats"] = "This field is required."
	}
	if len(fields) > 0 {
		utils.RespondValidation(c, http.StatusBadRequest, fields)
		return
	}

	table := models.Table{Number: *req.Number, Seats: *req.Seats, Status: models.TableStatusFree}
	if req.Status != nil {
		table.Status = *req.Status
	}
	if !tc.numberAvailable(c, table.Number, 0) {
		return
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New table created: %d (status=%s)", table.Number, table.Status)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> staff may also set the status directly, within the canonical vocabulary
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}
	var req tableRequest
	if !bindJSON(c, &req) {
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	previousStatus := table.Status

	if req.Number != nil {
		if !tc.numberAvailable(c, *req.Number, table.ID) {
			return
		}
		table.Number = *req.Number
	}
	if req.Seats != nil {
		table.Seats = *req.Seats
	}
	if req.Status != nil {
		table.Status = *req.Status
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	if table.Status != previousStatus {
		tc.Notifier.TableStatusChanged(table)
		utils.InfoLogger.Printf("Table %d status changed to %s", table.Number, table.Status)
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}

// DeleteTable -> reservations and orders lose their table reference
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, ok := parseID(c, "table_id")
	if !ok {
		return
	}
	if err := tc.Catalog.DeleteTable(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted successfully", nil)
}

func (tc *TableController) numberAvailable(c *gin.Context, number int, exceptID uint) bool {
	var count int64
	if err := tc.DB.Model(&models.Table{}).Where("number = ? AND id <> ?", number, exceptID).Count(&count).Error; err != nil {
		respondServiceError(c, err)
		return false
	}
	if count > 0 {
		utils.RespondValidation(c, http.StatusBadRequest, map[string]string{"number": "Table with this number already exists."})
		return false
	}
	return true
}
