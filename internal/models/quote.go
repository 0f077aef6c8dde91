package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Quote struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;index;not null" json:"owner_id"`

	ClientID   string `gorm:"size:36;index;not null" json:"client_id"`
	ClientName string `gorm:"size:100" json:"client_name"`

	Number string `gorm:"size:30;index" json:"number"`

	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	Status     string `gorm:"size:20;default:'open'" json:"status"` // open, accepted, rejected
	ValidUntil string `gorm:"size:10" json:"valid_until"`           // YYYY-MM-DD
	Notes      string `gorm:"size:500" json:"notes"`

	Items []QuoteItem `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type QuoteItem struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	QuoteID string `gorm:"size:36;index;not null" json:"quote_id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

func (i *QuoteItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
