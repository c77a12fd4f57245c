package models

import (
	"github.com/jinzhu/gorm"
)

// User represents a registered account. The UUID is the stable identifier
// carried in JWT subjects and wastage records; the gorm ID stays internal.
type User struct {
	gorm.Model
	UserID       string `gorm:"unique_index;not null" json:"id"`
	Email        string `gorm:"unique_index;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}
