package dto

import "github.com/foundlyhq/foundly-backend/internal/models"

// AdminStatsResponse backs the admin dashboard.
type AdminStatsResponse struct {
	TotalUsers    int64            `json:"total_users"`
	ActiveUsers   int64            `json:"active_users"`
	TotalItems    int64            `json:"total_items"`
	LostItems     int64            `json:"lost_items"`
	FoundItems    int64            `json:"found_items"`
	SettledItems  int64            `json:"settled_items"`
	TotalRewards  float64          `json:"total_rewards"`
	ByCategory    map[string]int64 `json:"by_category"`
	RecentItems   []models.Item    `json:"recent_items"`
	RecentUsers   []models.User    `json:"recent_users"`
}

type UserListResponse struct {
	Users []models.User `json:"users"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

type SetActiveRequest struct {
	Active bool `json:"active"`
}

type SetRoleRequest struct {
	Role string `json:"role"`
}

// AdminItemEntry pairs a listing with both parties for the moderation table.
type AdminItemEntry struct {
	Item   models.Item    `json:"item"`
	Owner  PartyResponse  `json:"owner"`
	Finder *PartyResponse `json:"finder,omitempty"`
}

type AdminItemsResponse struct {
	Items []AdminItemEntry `json:"items"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
