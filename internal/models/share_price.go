package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/ferraith/portfolio/internal/money"
	"github.com/ferraith/portfolio/internal/uuid"
)

// SharePrice is one timestamped price observation for an asset.
// This is immutable append-only time-series data — no Base embed, no soft
// deletes, no updated_at. Corrections are recorded as new entries, never as
// in-place edits.
type SharePrice struct {
	ID        string      `gorm:"type:uuid;primaryKey" json:"id"`
	AssetID   string      `gorm:"type:uuid;not null;index" json:"asset_id"`
	Date      time.Time   `gorm:"not null;index" json:"date"`
	Price     money.Money `gorm:"embedded;embeddedPrefix:price_" json:"price"`
	CreatedAt time.Time   `json:"created_at"`

	Asset Asset `gorm:"foreignKey:AssetID" json:"asset,omitempty"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (s *SharePrice) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New()
	}
	return nil
}
