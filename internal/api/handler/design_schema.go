package handler

import "github.com/altarmaker/altarmaker-api/internal/core/domain"

// Wall-design payloads use the camelCase keys the editor frontend sends;
// design-session payloads use snake_case. Both shapes are load-bearing.

type wallDesignPayload struct {
	WallDesigns    map[string]domain.Wall `json:"wallDesigns"`
	RoomType       string                 `json:"roomType"`
	RoomDimensions domain.RoomDimensions  `json:"roomDimensions"`
	SelectedWall   string                 `json:"selectedWall"`
}

type saveWallDesignResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type designSessionRequest struct {
	SessionName    string                 `json:"session_name" validate:"required"`
	RoomType       string                 `json:"room_type"`
	RoomDimensions domain.RoomDimensions  `json:"room_dimensions"`
	WallDesigns    map[string]domain.Wall `json:"wall_designs"`
	SelectedWall   string                 `json:"selected_wall"`
}

type sessionListResponse struct {
	Sessions []domain.DesignSession `json:"sessions"`
}

type sessionResponse struct {
	Session *domain.DesignSession `json:"session"`
}

type sessionCreatedResponse struct {
	Message string                `json:"message"`
	Session *domain.DesignSession `json:"session"`
}
