package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;index;not null" json:"owner_id"`

	InvoiceID string  `gorm:"size:36;index;not null" json:"invoice_id"`
	Amount    float64 `json:"amount"`
	Method    string  `gorm:"size:30" json:"method"` // cash, pix, card, mercadopago

	// Reference returned by the payment provider, when one was involved.
	ExternalRef string `gorm:"size:100" json:"external_ref"`

	PaidAt    time.Time `json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
