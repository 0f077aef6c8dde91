package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;index;not null" json:"owner_id"`

	Name           string  `gorm:"size:100;not null" json:"name"`
	Description    string  `gorm:"size:255" json:"description"`
	Price          float64 `json:"price"`
	DurationMin    int     `json:"duration_min"`
	ColorClassName string  `gorm:"size:50" json:"color_class_name"`
	Active         bool    `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
