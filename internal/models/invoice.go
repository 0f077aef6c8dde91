package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invoice struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;index;not null" json:"owner_id"`

	ClientID   string `gorm:"size:36;index;not null" json:"client_id"`
	ClientName string `gorm:"size:100" json:"client_name"`

	Number  string `gorm:"size:30;index" json:"number"`
	QuoteID string `gorm:"size:36" json:"quote_id"` // set when converted from a quote

	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`

	PaymentStatus string  `gorm:"size:20;default:'unpaid'" json:"payment_status"` // unpaid, partial, paid
	PaidAmount    float64 `json:"paid_amount"`

	DueDate string `gorm:"size:10" json:"due_date"` // YYYY-MM-DD
	Notes   string `gorm:"size:500" json:"notes"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InvoiceItem struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	InvoiceID string `gorm:"size:36;index;not null" json:"invoice_id"`

	Description string  `gorm:"size:255;not null" json:"description"`
	Quantity    int     `gorm:"default:1" json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

func (i *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
