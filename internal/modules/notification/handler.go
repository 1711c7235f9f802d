package notification

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"meetingroom/internal/pkg/jwt"
	"meetingroom/internal/pkg/response"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
}

// NewHandler accepts browser origins from allowedOrigins; an empty list
// allows any origin, which is what local development uses.
func NewHandler(hub *Hub, j *jwt.Service, allowedOrigins []string) *Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = true
	}
	return &Handler{
		hub: hub,
		jwt: j,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(allowed) == 0 || origin == "" || allowed[origin]
			},
		},
	}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/ws/events", h.Events)
}

// Events streams committed domain events to an administrator.
//
// Browsers cannot set headers on a websocket handshake, so the token may
// also be passed as ?token=.
func (h *Handler) Events(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token is required")
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
		return
	}
	if !claims.IsAdmin() {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Administrator role required")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws_upgrade_failed user_id=%s error=%v", claims.UserID, err)
		return
	}

	log.Printf("ws_connected user_id=%s", claims.UserID)
	h.hub.ServeWS(conn, claims.UserID)
	log.Printf("ws_disconnected user_id=%s", claims.UserID)
}
