package status

import "time"

type Status struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"column:name;uniqueIndex;not null"`
	Description string    `json:"description" gorm:"column:description"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

// The original schema used a singular table name.
func (Status) TableName() string {
	return "status"
}

// SubjectName is the canonical subject identifier used by permission checks.
func (Status) SubjectName() string {
	return "status"
}
