package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingroom/internal/domain/reservation"
	"meetingroom/internal/middleware"
	"meetingroom/internal/pkg/response"
	"meetingroom/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to be behind JWTAuth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/rooms/:id/available-slots", h.AvailableSlots)
	rg.GET("/rooms/:id/slots", h.SlotGrid)

	rg.GET("/reservations", h.MyReservations)
	rg.GET("/reservations/eligibility", h.Eligibility)
	rg.POST("/reservations", h.CreateReservation)
	rg.GET("/reservations/:id", h.GetReservation)
	rg.POST("/reservations/:id/cancel", h.CancelImmediately)
	rg.POST("/reservations/:id/cancel-request", h.RequestCancellation)
}

// RegisterAdminRoutes expects admin to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(admin *gin.RouterGroup) {
	admin.GET("/cancel-requests", h.PendingCancellations)
	admin.POST("/cancel-requests/:id/approve", h.ApproveCancellation)
	admin.POST("/cancel-requests/:id/reject", h.RejectCancellation)
	admin.POST("/reservations/:id/cancel", h.AdminCancel)
	admin.POST("/reservations/:id/complete", h.Complete)
	admin.POST("/reservations/:id/no-show", h.MarkNoShow)
}

func actorFrom(c *gin.Context) (Actor, error) {
	id, err := reservation.ParseUserID(middleware.UserID(c))
	if err != nil {
		return Actor{}, err
	}
	return Actor{UserID: id, IsAdmin: middleware.IsAdmin(c)}, nil
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if err := validator.Struct(dst); err != nil {
		response.FromError(c, err)
		return false
	}
	return true
}

func (h *Handler) CreateReservation(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req CreateReservationInput
	if !bindJSON(c, &req) {
		return
	}

	r, err := h.service.CreateReservation(c.Request.Context(), actor, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"reservation": toResponse(r, h.service.Now())})
}

func (h *Handler) GetReservation(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	r, err := h.service.Reservation(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservation": toResponse(r, h.service.Now())})
}

func (h *Handler) MyReservations(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	rs, err := h.service.UserReservations(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": toResponses(rs, h.service.Now())})
}

func (h *Handler) Eligibility(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	ok, err := h.service.CanUserMakeReservation(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"can_reserve": ok || actor.IsAdmin})
}

func (h *Handler) AvailableSlots(c *gin.Context) {
	slots, err := h.service.AvailableSlots(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": slots})
}

func (h *Handler) SlotGrid(c *gin.Context) {
	grid, err := h.service.SlotGrid(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"slots": grid})
}

func (h *Handler) CancelImmediately(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.service.CancelImmediately(c.Request.Context(), actor, c.Param("id"), req.Reason))
}

func (h *Handler) RequestCancellation(c *gin.Context) {
	actor, err := actorFrom(c)
	if err != nil {
		response.FromError(c, err)
		return
	}
	var req CancellationRequest
	if !bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.service.RequestCancellation(c.Request.Context(), actor, c.Param("id"), req.Reason))
}

func (h *Handler) PendingCancellations(c *gin.Context) {
	rs, err := h.service.PendingCancellations(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": toResponses(rs, h.service.Now())})
}

func (h *Handler) ApproveCancellation(c *gin.Context) {
	h.respond(c)(h.service.ApproveCancellation(c.Request.Context(), c.Param("id")))
}

func (h *Handler) RejectCancellation(c *gin.Context) {
	h.respond(c)(h.service.RejectCancellation(c.Request.Context(), c.Param("id")))
}

func (h *Handler) AdminCancel(c *gin.Context) {
	var req CancelRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}
	h.respond(c)(h.service.CancelReservation(c.Request.Context(), c.Param("id"), req.Reason))
}

func (h *Handler) Complete(c *gin.Context) {
	h.respond(c)(h.service.CompleteReservation(c.Request.Context(), c.Param("id")))
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	h.respond(c)(h.service.MarkNoShow(c.Request.Context(), c.Param("id")))
}

// respond writes the outcome of a single-reservation transition.
func (h *Handler) respond(c *gin.Context) func(*reservation.Reservation, error) {
	return func(r *reservation.Reservation, err error) {
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"reservation": toResponse(r, h.service.Now())})
	}
}
