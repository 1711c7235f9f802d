package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/jwt"
)

func setupServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	tokens := jwt.New("test-secret", time.Hour)
	r := gin.New()
	NewHandler(hub, tokens, nil).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return hub, tokens, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/events?token=" + token
}

func TestHubDeliversEventsToAdmins(t *testing.T) {
	hub, tokens, srv := setupServer(t)

	token, err := tokens.GenerateToken(uuid.NewString(), jwt.RoleAdmin)
	require.NoError(t, err)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	id := room.NewID()
	at := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	hub.Publish(room.Updated{RoomID: id, Fields: []string{"capacity"}, At: at})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg struct {
		Type        string         `json:"type"`
		AggregateID string         `json:"aggregate_id"`
		OccurredAt  time.Time      `json:"occurred_at"`
		Payload     map[string]any `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "room.updated", msg.Type)
	assert.Equal(t, id.String(), msg.AggregateID)
	assert.True(t, at.Equal(msg.OccurredAt))
	assert.Equal(t, id.String(), msg.Payload["room_id"])

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
}

func TestHandshakeRequiresAdminToken(t *testing.T) {
	_, tokens, srv := setupServer(t)

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(srv, ""), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, "garbage"), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token, err := tokens.GenerateToken(uuid.NewString(), "user")
	require.NoError(t, err)
	_, resp, err = websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.Error(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestPublishWithoutClientsIsNoop(t *testing.T) {
	hub := NewHub()
	assert.NotPanics(t, func() {
		hub.Publish(room.Updated{RoomID: room.NewID(), At: time.Now()})
	})
	assert.Equal(t, 0, hub.ClientCount())
}
