package model

import "time"

// Client is a managed client record. Category is a free-form label with no
// storage record of its own: the set of categories is simply the set of
// distinct values present among clients.
type Client struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Category  string    `json:"category" gorm:"size:100;not null;index"`
	Email     string    `json:"email" gorm:"size:255"`
	Phone     string    `json:"phone" gorm:"size:50"`
	Address   string    `json:"address" gorm:"size:255"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryStat is one row of the per-category distribution.
type CategoryStat struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// RecentClient is the trimmed shape used by the dashboard's recent list.
type RecentClient struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// Summary is the derived dashboard view-model. It is never persisted.
type Summary struct {
	Categories            []CategoryStat `json:"categories"`
	TotalClients          int64          `json:"total_clients"`
	TotalCategories       int64          `json:"total_categories"`
	AvgClientsPerCategory float64        `json:"avg_clients_per_category"`
	LargestCategory       int64          `json:"largest_category"`
	RecentClients         []RecentClient `json:"recent_clients"`
	GeneratedAt           time.Time      `json:"generated_at"`
}
