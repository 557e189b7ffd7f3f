package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-frontdesk/documents"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

type BillController struct {
	Bills    *services.BillService
	Location *time.Location
}

func NewBillController(bills *services.BillService, loc *time.Location) *BillController {
	if loc == nil {
		loc = time.UTC
	}
	return &BillController{Bills: bills, Location: loc}
}

// billRequest has no total: it is always computed from the order's items.
type billRequest struct {
	OrderID       uint    `json:"order_id" binding:"required"`
	Paid          bool    `json:"paid"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=30"`
}

type billPatch struct {
	Paid          *bool   `json:"paid"`
	PaymentMethod *string `json:"payment_method" binding:"omitempty,max=30"`
}

// GetAllBills -> ?paid=true|false
func (bc *BillController) GetAllBills(c *gin.Context) {
	paid, ok := queryBool(c, "paid")
	if !ok {
		return
	}
	bills, err := bc.Bills.List(c.Request.Context(), paid)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of bills", bills)
}

func (bc *BillController) GetBillByID(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	bill, err := bc.Bills.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill detail", bill)
}

func (bc *BillController) CreateBill(c *gin.Context) {
	var req billRequest
	if !bindJSON(c, &req) {
		return
	}

	bill, err := bc.Bills.Create(c.Request.Context(), services.BillInput{
		OrderID:       req.OrderID,
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("Bill %d issued for order %d, total %s", bill.ID, bill.OrderID, bill.Total.StringFixed(2))
	utils.RespondJSON(c, http.StatusCreated, "Bill created successfully", bill)
}

// UpdateBill -> only paid and payment_method can change
func (bc *BillController) UpdateBill(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	var req billPatch
	if !bindJSON(c, &req) {
		return
	}

	bill, err := bc.Bills.Update(c.Request.Context(), id, services.BillUpdate{
		Paid:          req.Paid,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill updated successfully", bill)
}

func (bc *BillController) DeleteBill(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	if err := bc.Bills.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Bill deleted successfully", nil)
}

// GetBillReceipt -> PDF receipt with the order lines
func (bc *BillController) GetBillReceipt(c *gin.Context) {
	id, ok := parseID(c, "bill_id")
	if !ok {
		return
	}
	bill, err := bc.Bills.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := documents.WriteBillReceipt(&buf, *bill, bc.Location); err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="bill-%d.pdf"`, bill.ID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
