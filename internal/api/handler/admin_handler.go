package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/altarmaker/altarmaker-api/internal/core/ports"
)

// AdminHandler serves the user-management panel. Every route sits behind
// RequireAuth + RequireAdmin.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListUsers returns all accounts with the password hash stripped.
//
// @Summary      List users
// @Tags         admin
// @Produce      json
// @Success      200  {object}  userListResponse
// @Failure      403  {object}  map[string]string
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: users})
}

// CreateAdmin creates a new admin account, recording who created it.
//
// @Summary      Create an admin user
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      createAdminRequest  true  "Admin details"
// @Success      201   {object}  userCreatedResponse
// @Failure      409   {object}  map[string]string
// @Router       /api/admin/users [post]
func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createAdminRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.service.CreateAdmin(c.Request().Context(), ports.CreateAdminInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		CreatedBy: callerID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userCreatedResponse{
		Message: "Admin user created successfully",
		User:    user,
	})
}

// DeleteUser removes an account and cascades its design sessions.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// Promote grants the admin role.
//
// @Summary      Promote a user to admin
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id}/promote [put]
func (h *AdminHandler) Promote(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Promote(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User promoted to admin successfully"})
}

// Demote revokes the admin role.
//
// @Summary      Demote an admin to regular user
// @Tags         admin
// @Produce      json
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/users/{id}/demote [put]
func (h *AdminHandler) Demote(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.service.Demote(c.Request().Context(), callerID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin demoted to regular user successfully"})
}

// Stats returns aggregate counts plus the latest sessions across all users.
//
// @Summary      Admin statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  adminStatsResponse
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatsResponse{
		TotalUsers:     stats.TotalUsers,
		TotalSessions:  stats.TotalSessions,
		AdminUsers:     stats.AdminUsers,
		RegularUsers:   stats.RegularUsers,
		RecentSessions: stats.RecentSessions,
	})
}
