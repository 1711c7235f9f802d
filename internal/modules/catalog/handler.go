package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingroom/internal/domain/room"
	"meetingroom/internal/pkg/response"
	"meetingroom/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes the browse endpoints to any authenticated user.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms", h.ListActiveRooms)
	rg.GET("/rooms/:id", h.GetRoom)
	rg.GET("/room-groups", h.RootGroups)
}

// RegisterAdminRoutes expects admin to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/rooms", h.ListRooms)
	admin.POST("/rooms", h.CreateRoom)
	admin.PATCH("/rooms/:id", h.UpdateRoom)
	admin.POST("/rooms/:id/activate", h.ActivateRoom)
	admin.POST("/rooms/:id/deactivate", h.DeactivateRoom)

	admin.POST("/room-groups", h.CreateRoomGroup)
	admin.PATCH("/room-groups/:id", h.UpdateRoomGroup)
	admin.GET("/room-groups/:id", h.GroupRooms)
}

/* ---------- ROOMS ---------- */

func (h *Handler) ListActiveRooms(c *gin.Context) {
	rooms, err := h.service.ActiveRooms(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": toRoomResponses(rooms)})
}

func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.Rooms(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"rooms": toRoomResponses(rooms)})
}

func (h *Handler) GetRoom(c *gin.Context) {
	h.respondRoom(c, http.StatusOK)(h.service.Room(c.Request.Context(), c.Param("id")))
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := validator.Struct(&req); err != nil {
		response.FromError(c, err)
		return
	}
	h.respondRoom(c, http.StatusCreated)(h.service.CreateRoom(c.Request.Context(), req))
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	var req UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.respondRoom(c, http.StatusOK)(h.service.UpdateRoom(c.Request.Context(), c.Param("id"), req))
}

func (h *Handler) ActivateRoom(c *gin.Context) {
	h.respondRoom(c, http.StatusOK)(h.service.ActivateRoom(c.Request.Context(), c.Param("id")))
}

func (h *Handler) DeactivateRoom(c *gin.Context) {
	h.respondRoom(c, http.StatusOK)(h.service.DeactivateRoom(c.Request.Context(), c.Param("id")))
}

func (h *Handler) respondRoom(c *gin.Context, status int) func(*room.Room, error) {
	return func(r *room.Room, err error) {
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, status, gin.H{"room": toRoomResponse(r)})
	}
}

/* ---------- GROUPS ---------- */

func (h *Handler) RootGroups(c *gin.Context) {
	nodes, err := h.service.RootGroups(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]GroupNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toNodeResponse(n))
	}
	response.Success(c, http.StatusOK, gin.H{"groups": out})
}

func (h *Handler) GroupRooms(c *gin.Context) {
	detail, err := h.service.GroupRooms(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"group":            toNodeResponse(detail.Node),
		"all_rooms":        toRoomResponses(detail.AllRooms),
		"total_room_count": detail.TotalRoomCount,
	})
}

func (h *Handler) CreateRoomGroup(c *gin.Context) {
	var req CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if err := validator.Struct(&req); err != nil {
		response.FromError(c, err)
		return
	}
	h.respondGroup(c, http.StatusCreated)(h.service.CreateRoomGroup(c.Request.Context(), req))
}

func (h *Handler) UpdateRoomGroup(c *gin.Context) {
	var req UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	h.respondGroup(c, http.StatusOK)(h.service.UpdateRoomGroup(c.Request.Context(), c.Param("id"), req))
}

func (h *Handler) respondGroup(c *gin.Context, status int) func(*room.Group, error) {
	return func(g *room.Group, err error) {
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, status, gin.H{"group": toGroupResponse(g)})
	}
}
