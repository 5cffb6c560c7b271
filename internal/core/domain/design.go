package domain

import "time"

// WallNames lists the four wall slots of a room in render order.
var WallNames = []string{"front", "back", "left", "right"}

// Wall holds the editable content of a single wall: the ordered elements
// placed on it plus an optional wallpaper reference.
type Wall struct {
	Elements  []map[string]any `json:"elements" bson:"elements"`
	Wallpaper *string          `json:"wallpaper" bson:"wallpaper"`
}

// HasContent reports whether the wall carries anything worth persisting.
func (w Wall) HasContent() bool {
	return len(w.Elements) > 0 || (w.Wallpaper != nil && *w.Wallpaper != "")
}

// RoomDimensions describes the room box in editor units.
type RoomDimensions struct {
	Length float64 `json:"length" bson:"length"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// DefaultRoomDimensions is the shape handed out before any snapshot exists.
func DefaultRoomDimensions() RoomDimensions {
	return RoomDimensions{Length: 8, Width: 8, Height: 4}
}

// WallDesignSnapshot is one append-only record of a user's canvas state.
// Saves always insert a new snapshot; reads return the most recent one.
type WallDesignSnapshot struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Walls          map[string]Wall `json:"wall_designs"`
	RoomType       string          `json:"room_type"`
	RoomDimensions RoomDimensions  `json:"room_dimensions"`
	SelectedWall   string          `json:"selected_wall"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// DefaultSnapshot returns the canvas state served when a user has never
// saved: four empty walls and the default room.
func DefaultSnapshot() *WallDesignSnapshot {
	walls := make(map[string]Wall, len(WallNames))
	for _, name := range WallNames {
		walls[name] = Wall{Elements: []map[string]any{}}
	}
	return &WallDesignSnapshot{
		Walls:          walls,
		RoomDimensions: DefaultRoomDimensions(),
	}
}

// FilterWalls returns only the walls that have content. Empty walls are
// dropped from storage and reconstructed as empty on read.
func FilterWalls(walls map[string]Wall) map[string]Wall {
	kept := make(map[string]Wall, len(walls))
	for name, wall := range walls {
		if wall.HasContent() {
			if wall.Elements == nil {
				wall.Elements = []map[string]any{}
			}
			kept[name] = wall
		}
	}
	return kept
}

// FillMissingWalls adds empty entries for any of the four walls absent from
// the map, so clients always see the full room.
func FillMissingWalls(walls map[string]Wall) map[string]Wall {
	if walls == nil {
		walls = make(map[string]Wall, len(WallNames))
	}
	for _, name := range WallNames {
		if _, ok := walls[name]; !ok {
			walls[name] = Wall{Elements: []map[string]any{}}
		}
	}
	return walls
}

// DesignSession is a named save-slot owned by a single user. It is distinct
// from the auth session carried in the cookie.
type DesignSession struct {
	ID             string          `json:"_id"`
	UserID         string          `json:"user_id"`
	Name           string          `json:"session_name"`
	RoomType       string          `json:"room_type"`
	RoomDimensions RoomDimensions  `json:"room_dimensions"`
	Walls          map[string]Wall `json:"wall_designs"`
	SelectedWall   string          `json:"selected_wall"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
