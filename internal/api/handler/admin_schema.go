package handler

import "github.com/altarmaker/altarmaker-api/internal/core/domain"

type createAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Email    string `json:"email"    validate:"required"`
}

type userListResponse struct {
	Users []domain.User `json:"users"`
}

type userCreatedResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type adminStatsResponse struct {
	TotalUsers     int64                  `json:"total_users"`
	TotalSessions  int64                  `json:"total_sessions"`
	AdminUsers     int64                  `json:"admin_users"`
	RegularUsers   int64                  `json:"regular_users"`
	RecentSessions []domain.DesignSession `json:"recent_sessions"`
}
