package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/restaurant-frontdesk/services"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

type orderItemRequest struct {
	ID         *uint            `json:"id"`
	MenuItemID *uint            `json:"menu_item_id"`
	Quantity   *int             `json:"quantity" binding:"omitempty,min=1"`
	Price      *decimal.Decimal `json:"price"`
	Delete     bool             `json:"delete"`
}

type orderRequest struct {
	CustomerID    *uint              `json:"customer_id"`
	TableID       *uint              `json:"table_id"`
	EmployeeID    *uint              `json:"employee_id"`
	ReservationID *uint              `json:"reservation_id"`
	Status        string             `json:"status" binding:"max=30"`
	Items         []orderItemRequest `json:"items" binding:"dive"`
}

func (r orderItemRequest) input() services.OrderItemInput {
	return services.OrderItemInput{
		ID:         r.ID,
		MenuItemID: r.MenuItemID,
		Quantity:   r.Quantity,
		Price:      r.Price,
		Delete:     r.Delete,
	}
}

func (r orderRequest) input() services.OrderInput {
	in := services.OrderInput{
		CustomerID:    r.CustomerID,
		TableID:       r.TableID,
		EmployeeID:    r.EmployeeID,
		ReservationID: r.ReservationID,
		Status:        r.Status,
	}
	for _, item := range r.Items {
		in.Items = append(in.Items, item.input())
	}
	return in
}

// GetAllOrders -> ?table= and ?customer= filter by id
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	tableID, ok := queryUint(c, "table")
	if !ok {
		return
	}
	customerID, ok := queryUint(c, "customer")
	if !ok {
		return
	}

	orders, err := oc.Orders.List(c.Request.Context(), services.OrderFilter{TableID: tableID, CustomerID: customerID})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	order, err := oc.Orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// CreateOrder -> order header plus its item rows in one request
func (oc *OrderController) CreateOrder(c *gin.Context) {
	var req orderRequest
	if !bindJSON(c, &req) {
		return
	}

	order, err := oc.Orders.Create(c.Request.Context(), req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("%s created with %d items", order.Label(), len(order.Items))
	utils.RespondJSON(c, http.StatusCreated, "Order created successfully", order)
}

// UpdateOrder -> header fields absent from the body keep their value, null clears them;
// rows with id are updated (or removed with "delete": true), rows without id are added
func (oc *OrderController) UpdateOrder(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	var req orderRequest
	present, ok := bindJSONFields(c, &req)
	if !ok {
		return
	}

	current, err := oc.Orders.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	in := req.input()
	if _, ok := present["customer_id"]; !ok {
		in.CustomerID = current.CustomerID
	}
	if _, ok := present["table_id"]; !ok {
		in.TableID = current.TableID
	}
	if _, ok := present["employee_id"]; !ok {
		in.EmployeeID = current.EmployeeID
	}
	if _, ok := present["reservation_id"]; !ok {
		in.ReservationID = current.ReservationID
	}

	order, err := oc.Orders.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated successfully", order)
}

// AssignEmployee -> {"employee_id": n} or null to clear
func (oc *OrderController) AssignEmployee(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	var req struct {
		EmployeeID *uint `json:"employee_id"`
	}
	if !bindJSON(c, &req) {
		return
	}

	order, err := oc.Orders.AssignEmployee(c.Request.Context(), id, req.EmployeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Employee assigned", order)
}

// DeleteOrder -> removes items and bills with the order
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	if err := oc.Orders.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order deleted successfully", nil)
}

func (oc *OrderController) AddOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	var req orderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := oc.Orders.AddItem(c.Request.Context(), orderID, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order item added", item)
}

func (oc *OrderController) UpdateOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	var req orderItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := oc.Orders.UpdateItem(c.Request.Context(), orderID, itemID, req.input())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order item updated", item)
}

func (oc *OrderController) DeleteOrderItem(c *gin.Context) {
	orderID, ok := parseID(c, "order_id")
	if !ok {
		return
	}
	itemID, ok := parseID(c, "item_id")
	if !ok {
		return
	}
	if err := oc.Orders.DeleteItem(c.Request.Context(), orderID, itemID); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order item deleted", nil)
}
