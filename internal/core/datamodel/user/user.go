package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        int64          `json:"id" gorm:"primaryKey"`
	Email     string         `json:"email" gorm:"column:email;uniqueIndex;not null"`
	FirstName string         `json:"firstName" gorm:"column:first_name"`
	LastName  string         `json:"lastName" gorm:"column:last_name"`
	Password  string         `json:"-" gorm:"column:password;not null"`
	RoleID    *int64         `json:"roleId" gorm:"column:role_id"`
	Role      *Role          `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CreatedAt time.Time      `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}

// SubjectName is the canonical subject identifier used by permission checks.
func (User) SubjectName() string {
	return "users"
}

type Role struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"column:name;uniqueIndex;not null"`
	Permissions []Permission `json:"permissions,omitempty" gorm:"many2many:roles_has_permissions;joinForeignKey:RoleID;joinReferences:PermissionID"`
	CreatedAt   time.Time    `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time    `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (Role) TableName() string {
	return "roles"
}

func (Role) SubjectName() string {
	return "roles"
}

type Permission struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Action    string    `json:"action" gorm:"column:action;not null"`
	Subject   string    `json:"subject" gorm:"column:subject;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (Permission) TableName() string {
	return "permissions"
}

func (Permission) SubjectName() string {
	return "permissions"
}

// RoleHasPermission is the explicit join row granting a permission to a role.
// Grants behave as a set: duplicates do not change evaluation semantics.
type RoleHasPermission struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	RoleID       int64     `json:"roleId" gorm:"column:role_id;not null"`
	PermissionID int64     `json:"permissionId" gorm:"column:permission_id;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at;autoUpdateTime"`
}

func (RoleHasPermission) TableName() string {
	return "roles_has_permissions"
}

func (RoleHasPermission) SubjectName() string {
	return "roles_has_permissions"
}
