package models

import "time"

// Tool is a catalog entry. IDs come from the counter allocator, not the
// database's auto-increment, so they stay stable across stores.
type Tool struct {
	ID          int64     `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string    `gorm:"type:varchar(120);not null" json:"name"`
	UseCase     string    `gorm:"type:varchar(255);not null" json:"useCase"`
	Category    string    `gorm:"type:varchar(60);not null;index" json:"category"`
	Pricing     string    `gorm:"type:varchar(30);not null;index" json:"pricing"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Website     string    `gorm:"type:varchar(255)" json:"website,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToolWithRating is a tool plus its query-time rating aggregate. Nothing is
// denormalized: AvgRating and ReviewCount are recomputed on every listing.
type ToolWithRating struct {
	Tool
	AvgRating   float64 `json:"avgRating"`
	ReviewCount int     `json:"reviewCount"`
}
