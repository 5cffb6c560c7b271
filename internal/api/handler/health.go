package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthHandler handles GET /api/health: a store-connectivity check, since
// the API is useless without the document store.
type HealthHandler struct {
	mongo *mongo.Database
	redis *redis.Client
}

func NewHealthHandler(db *mongo.Database, rdb *redis.Client) *HealthHandler {
	return &HealthHandler{mongo: db, redis: rdb}
}

type healthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
	Cache    string `json:"cache,omitempty"`
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	if err := h.mongo.Client().Ping(ctx, nil); err != nil {
		return c.JSON(http.StatusInternalServerError, healthResponse{
			Status:   "unhealthy",
			Message:  "Database connection failed",
			Database: "disconnected",
		})
	}

	resp := healthResponse{
		Status:   "healthy",
		Message:  "AltarMaker API is running",
		Database: "connected",
	}

	// Redis only backs the mail throttle; report it but stay healthy.
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			resp.Cache = "disconnected"
		} else {
			resp.Cache = "connected"
		}
	}

	return c.JSON(http.StatusOK, resp)
}
