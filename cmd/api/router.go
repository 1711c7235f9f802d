package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meetingroom/internal/middleware"
	"meetingroom/internal/modules/booking"
	"meetingroom/internal/modules/catalog"
	"meetingroom/internal/modules/notification"
	jwtsvc "meetingroom/internal/pkg/jwt"
)

type app struct {
	booking        *booking.Service
	catalog        *catalog.Service
	hub            *notification.Hub
	jwt            *jwtsvc.Service
	allowedOrigins []string
}

func newRouter(a app) *gin.Engine {
	bookingHandler := booking.NewHandler(a.booking)
	catalogHandler := catalog.NewHandler(a.catalog)
	notificationHandler := notification.NewHandler(a.hub, a.jwt, a.allowedOrigins)

	r := gin.New()
	r.Use(gin.Logger(), middleware.RequestID(), middleware.ErrorLogger(), middleware.CORS(a.allowedOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	notificationHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.JWTAuth(a.jwt))
	{
		catalogHandler.RegisterRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminOnly())
	{
		catalogHandler.RegisterAdminRoutes(admin)
		bookingHandler.RegisterAdminRoutes(admin)
	}

	return r
}
