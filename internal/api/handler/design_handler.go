package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/api/metrics"
	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// DesignHandler serves wall-design snapshots and named design sessions,
// always scoped to the authenticated user.
type DesignHandler struct {
	service ports.DesignService
}

func NewDesignHandler(service ports.DesignService) *DesignHandler {
	return &DesignHandler{service: service}
}

// GetWallDesigns returns the user's most recent canvas state, or the
// default empty room when nothing was ever saved.
//
// @Summary      Latest wall design
// @Tags         designs
// @Produce      json
// @Success      200  {object}  wallDesignPayload
// @Failure      401  {object}  map[string]string
// @Router       /api/designs/wall-designs [get]
func (h *DesignHandler) GetWallDesigns(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	snap, err := h.service.LatestWallDesign(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, wallDesignPayload{
		WallDesigns:    snap.Walls,
		RoomType:       snap.RoomType,
		RoomDimensions: snap.RoomDimensions,
		SelectedWall:   snap.SelectedWall,
	})
}

// SaveWallDesigns appends a new snapshot of the canvas state.
//
// @Summary      Save wall design
// @Tags         designs
// @Accept       json
// @Produce      json
// @Param        body  body      wallDesignPayload  true  "Canvas state"
// @Success      200   {object}  saveWallDesignResponse
// @Failure      401   {object}  map[string]string
// @Router       /api/designs/wall-designs [post]
func (h *DesignHandler) SaveWallDesigns(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req wallDesignPayload
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err = h.service.SaveWallDesign(c.Request().Context(), userID, ports.SaveWallDesignInput{
		Walls:          req.WallDesigns,
		RoomType:       req.RoomType,
		RoomDimensions: req.RoomDimensions,
		SelectedWall:   req.SelectedWall,
	})
	if err != nil {
		return err
	}
	metrics.WallDesignSavesTotal.Inc()

	return c.JSON(http.StatusOK, saveWallDesignResponse{
		Success: true,
		Message: "Wall designs saved successfully",
	})
}

// ListSessions returns every design session owned by the caller.
//
// @Summary      List design sessions
// @Tags         sessions
// @Produce      json
// @Success      200  {object}  sessionListResponse
// @Router       /api/sessions [get]
func (h *DesignHandler) ListSessions(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sessions, err := h.service.ListSessions(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionListResponse{Sessions: sessions})
}

// CreateSession saves a new named design session.
//
// @Summary      Create a design session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        body  body      designSessionRequest  true  "Session payload"
// @Success      201   {object}  sessionCreatedResponse
// @Router       /api/sessions [post]
func (h *DesignHandler) CreateSession(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req designSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sess, err := h.service.CreateSession(c.Request().Context(), userID, sessionInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sessionCreatedResponse{
		Message: "Session saved successfully",
		Session: sess,
	})
}

// GetSession returns one session. Another user's session id yields 404.
//
// @Summary      Get a design session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  sessionResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/sessions/{id} [get]
func (h *DesignHandler) GetSession(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	sess, err := h.service.GetSession(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{Session: sess})
}

// UpdateSession fully replaces a session's editable fields.
//
// @Summary      Update a design session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Session id"
// @Param        body  body      designSessionRequest  true  "Session payload"
// @Success      200   {object}  messageResponse
// @Failure      404   {object}  map[string]string
// @Router       /api/sessions/{id} [put]
func (h *DesignHandler) UpdateSession(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req designSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.UpdateSession(c.Request().Context(), userID, c.Param("id"), sessionInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Session updated successfully"})
}

// DeleteSession removes one session owned by the caller.
//
// @Summary      Delete a design session
// @Tags         sessions
// @Produce      json
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/sessions/{id} [delete]
func (h *DesignHandler) DeleteSession(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteSession(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Session deleted successfully"})
}

func sessionInput(req designSessionRequest) ports.DesignSessionInput {
	return ports.DesignSessionInput{
		Name:           req.SessionName,
		RoomType:       req.RoomType,
		RoomDimensions: req.RoomDimensions,
		Walls:          req.WallDesigns,
		SelectedWall:   req.SelectedWall,
	}
}
