package models

import "time"

// Role is the closed set of account types.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents a registered account, ordinary or administrator.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey;autoIncrement"`
	Username    string    `json:"username" gorm:"uniqueIndex;type:varchar(80);not null" validate:"required,max=80"`
	Password    string    `json:"-" gorm:"type:varchar(120);not null" validate:"required"` // never serialized
	Birthday    time.Time `json:"birthday" gorm:"not null"`
	PhoneNumber string    `json:"phone_number" gorm:"type:varchar(15);not null" validate:"required"`
	Email       string    `json:"email" gorm:"type:varchar(120);not null" validate:"required"`
	Role        Role      `json:"role" gorm:"type:varchar(80);not null"`
	CreatedAt   time.Time `json:"created_at"`
}
