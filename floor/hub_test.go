package floor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-frontdesk/models"
)

func newTestServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		hub.Register(conn, "staff")
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, hub *Hub, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return hub.ClientCount() == n }, 2*time.Second, 10*time.Millisecond)
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg Message
	require.NoError(t, json.Unmarshal(raw, &msg))
	return msg
}

func TestTableStatusChangedReachesClients(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)
	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, hub, 2)

	hub.TableStatusChanged(models.Table{ID: 3, Number: 12, Status: models.TableStatusOccupied})

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		assert.Equal(t, EventTableStatus, msg.Event)
		data := msg.Data.(map[string]interface{})
		assert.Equal(t, float64(12), data["number"])
		assert.Equal(t, models.TableStatusOccupied, data["status"])
	}
}

func TestBillTotalChangedPayload(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	hub.BillTotalChanged(models.Bill{ID: 5, OrderID: 9, Total: decimal.NewFromInt(300)})

	msg := readMessage(t, conn)
	assert.Equal(t, EventBillTotal, msg.Event)
	data := msg.Data.(map[string]interface{})
	assert.Equal(t, float64(5), data["bill_id"])
	assert.Equal(t, "300", data["total"])
}

func TestUnregisterOnDisconnect(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	conn.Close()
	waitForClients(t, hub, 0)
}

func TestBroadcastDoesNotWaitOnStalledClient(t *testing.T) {
	hub := NewHub()
	srv := newTestServer(t, hub)
	conn := dial(t, srv)
	waitForClients(t, hub, 1)

	// a client whose writer never drains its queue
	stalled := new(websocket.Conn)
	hub.mutex.Lock()
	hub.clients[stalled] = &client{conn: stalled, role: "staff", send: make(chan []byte)}
	hub.mutex.Unlock()
	waitForClients(t, hub, 2)

	done := make(chan struct{})
	go func() {
		hub.TableStatusChanged(models.Table{ID: 1, Number: 4, Status: models.TableStatusFree})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast blocked on a stalled client")
	}

	waitForClients(t, hub, 1)
	msg := readMessage(t, conn)
	assert.Equal(t, EventTableStatus, msg.Event)
}
