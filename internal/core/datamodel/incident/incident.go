package incident

import (
	"time"

	"gorm.io/gorm"

	userDatamodel "github.com/jalvarado/incident-management/internal/core/datamodel/user"
)

type Incident struct {
	ID         int64               `json:"id" gorm:"primaryKey"`
	Title      string              `json:"title" gorm:"column:title;not null"`
	CategoryID int64               `json:"categoryId" gorm:"column:category_id;not null"`
	StatusID   int64               `json:"statusId" gorm:"column:status_id;not null"`
	OwnerID    int64               `json:"ownerId" gorm:"column:owner_id;not null"`
	Owner      *userDatamodel.User `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	AssignedTo *int64              `json:"assignedTo" gorm:"column:assigned_to"`
	Assignee   *userDatamodel.User `json:"assignee,omitempty" gorm:"foreignKey:AssignedTo"`
	ClosedAt   *time.Time          `json:"closedAt" gorm:"column:closed_at"`
	Comments   []Comment           `json:"comments,omitempty" gorm:"foreignKey:IncidentID"`
	CreatedAt  time.Time           `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time           `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt      `json:"-" gorm:"column:deleted_at;index"`
}

func (Incident) TableName() string {
	return "incidents"
}

// SubjectName is the canonical subject identifier used by permission checks.
func (Incident) SubjectName() string {
	return "incidents"
}

type Comment struct {
	ID         int64          `json:"id" gorm:"primaryKey"`
	Content    string         `json:"content" gorm:"column:content;not null"`
	ImageURL   *string        `json:"imageUrl,omitempty" gorm:"column:image_url"`
	IncidentID int64          `json:"incidentId" gorm:"column:incident_id;not null"`
	UserID     int64          `json:"userId" gorm:"column:user_id;not null"`
	CreatedAt  time.Time      `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (Comment) TableName() string {
	return "comments"
}

func (Comment) SubjectName() string {
	return "comments"
}
