package models

import "time"

// ReviewStatus is the moderation lifecycle field. Only approved reviews are
// visible publicly and counted in rating aggregates.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending"
	ReviewApproved ReviewStatus = "approved"
	ReviewRejected ReviewStatus = "rejected"
)

// Valid reports whether the status is one of the three recognized values.
func (s ReviewStatus) Valid() bool {
	switch s {
	case ReviewPending, ReviewApproved, ReviewRejected:
		return true
	}
	return false
}

type Review struct {
	ID        int64        `gorm:"primaryKey;autoIncrement:false" json:"id"`
	ToolID    int64        `gorm:"not null;index" json:"toolId"`
	Rating    float64      `gorm:"not null" json:"rating"`
	Comment   string       `gorm:"type:text" json:"comment"`
	Username  string       `gorm:"type:varchar(50);not null" json:"username"`
	Status    ReviewStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}
