package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
	"gorm.io/gorm"
)

var maxMenuPrice = decimal.RequireFromString("99999.99")

type MenuController struct {
	DB      *gorm.DB
	Catalog *services.CatalogService
}

func NewMenuController(db *gorm.DB, catalog *services.CatalogService) *MenuController {
	return &MenuController{DB: db, Catalog: catalog}
}

type menuItemRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Available   *bool            `json:"available"`
}

// GetAllMenuItems -> public; ?available=true|false filters
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	available, ok := queryBool(c, "available")
	if !ok {
		return
	}
	q := mc.DB.Order("name ASC")
	if available != nil {
		q = q.Where("available = ?", *available)
	}

	var items []models.MenuItem
	if err := q.Find(&items).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, ok := parseID(c, "menu_item_id")
	if !ok {
		return
	}
	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	fields := map[string]string{}
	if req.Name == nil {
		fields["name"] = "This field is required."
	}
	if req.Price == nil {
		fields["price"] = "This field is required."
	} else if msg := checkPrice(*req.Price); msg != "" {
		fields["price"] = msg
	}
	if len(fields) > 0 {
		utils.RespondValidation(c, http.StatusBadRequest, fields)
		return
	}

	item := models.MenuItem{
		Name:        *req.Name,
		Description: blankToNil(req.Description),
		Price:       *req.Price,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	err := mc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}
		// gorm replaces a false bool with the column default on insert
		if req.Available != nil && !*req.Available {
			item.Available = false
			return tx.Model(&item).Update("available", false).Error
		}
		return nil
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New menu item created: %s (%s)", item.Name, item.Price.StringFixed(2))
	utils.RespondJSON(c, http.StatusCreated, "Menu item created successfully", item)
}

// UpdateMenuItem -> a price change never reaches prices already stored on order items
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, ok := parseID(c, "menu_item_id")
	if !ok {
		return
	}
	var req menuItemRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Price != nil {
		if msg := checkPrice(*req.Price); msg != "" {
			utils.RespondValidation(c, http.StatusBadRequest, map[string]string{"price": msg})
			return
		}
	}

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = blankToNil(req.Description)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Available != nil {
		item.Available = *req.Available
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated successfully", item)
}

func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, ok := parseID(c, "menu_item_id")
	if !ok {
		return
	}
	if err := mc.Catalog.DeleteMenuItem(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted successfully", nil)
}

// checkPrice mirrors the decimal(7,2) column.
func checkPrice(price decimal.Decimal) string {
	switch {
	case price.IsNegative():
		return "Ensure this value is greater than or equal to 0."
	case price.GreaterThan(maxMenuPrice):
		return "Ensure that there are no more than 7 digits in total."
	case !price.Equal(price.Truncate(2)):
		return "Ensure that there are no more than 2 decimal places."
	}
	return ""
}
