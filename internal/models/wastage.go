package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

// WastageRecord is one user-submitted food waste observation
type WastageRecord struct {
	gorm.Model
	RecordID string    `gorm:"unique_index;not null" json:"record_id"`
	UserID   string    `gorm:"index;not null" json:"user_id"`
	Date     time.Time `json:"date"`
	FoodItem string    `gorm:"not null" json:"food_item"`
	Quantity float64   `json:"quantity"` // kg or units
	Notes    string    `json:"notes,omitempty"`
}

// TableName sets the table name for WastageRecord
func (WastageRecord) TableName() string {
	return "wastage_records"
}
