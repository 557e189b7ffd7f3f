package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-frontdesk/floor"
	"github.com/yeremiapane/restaurant-frontdesk/models"
)

type FloorController struct {
	Hub      *floor.Hub
	upgrader websocket.Upgrader
}

// NewFloorController accepts upgrades from allowedOrigin, or from any origin when it is "*".
func NewFloorController(hub *floor.Hub, allowedOrigin string) *FloorController {
	return &FloorController{
		Hub: hub,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowedOrigin == "*" || strings.EqualFold(origin, allowedOrigin)
			},
		},
	}
}

// FloorHandler -> websocket endpoint streaming table status and bill total changes
func (fc *FloorController) FloorHandler(c *gin.Context) {
	role := c.GetString("role")
	if role != models.RoleAdmin && role != models.RoleStaff {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}

	ws, err := fc.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	fc.Hub.Register(ws, role)

	// drain until the client goes away
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}
	fc.Hub.Unregister(ws)
}
