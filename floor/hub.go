package floor

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

// Event types
const (
	EventTableStatus = "table_status"
	EventBillTotal   = "bill_total"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	role string
	send chan []byte
}

// Hub keeps the connected floor screens (hosts, waiters, admins) and pushes derived-state changes to them.
// Each client owns a writer goroutine; the mutex only guards the client set.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]*client)}
}

func (h *Hub) Register(conn *websocket.Conn, role string) {
	c := &client{conn: conn, role: role, send: make(chan []byte, sendBuffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	h.mutex.Unlock()

	go h.writePump(c)
}

// Unregister removes the client; its writer goroutine closes the connection.
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.remove(conn)
}

// remove must be called with the mutex held.
func (h *Hub) remove(conn *websocket.Conn) {
	if c, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Dropping floor client (%s): %v", c.role, err)
			h.Unregister(c.conn)
			return
		}
	}
	c.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
}

// TableStatusChanged -> a table's status was rewritten by a reservation change
func (h *Hub) TableStatusChanged(table models.Table) {
	h.Broadcast(Message{
		Event: EventTableStatus,
		Data: map[string]interface{}{
			"table_id": table.ID,
			"number":   table.Number,
			"status":   table.Status,
		},
	})
}

// BillTotalChanged -> a bill total was recomputed from its order's items
func (h *Hub) BillTotalChanged(bill models.Bill) {
	h.Broadcast(Message{
		Event: EventBillTotal,
		Data: map[string]interface{}{
			"bill_id":  bill.ID,
			"order_id": bill.OrderID,
			"total":    bill.Total,
		},
	})
}

// Broadcast queues msg for every client without waiting on the network.
// A client whose queue is full is dropped.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling floor message: %v", err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	utils.InfoLogger.Debugf("Broadcasting %s to %d floor clients", msg.Event, len(h.clients))
	for conn, c := range h.clients {
		select {
		case c.send <- data:
		default:
			utils.ErrorLogger.Printf("Dropping slow floor client (%s)", c.role)
			h.remove(conn)
		}
	}
}
