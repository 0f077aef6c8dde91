package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Appointment is immutable after creation. Service name and price are
// snapshots taken at booking time, so later edits to the service do not
// rewrite past appointments or past ledger totals.
type Appointment struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OwnerID string `gorm:"size:36;index;not null" json:"owner_id"`

	ClientID   string `gorm:"size:36;index;not null" json:"client_id"`
	ClientName string `gorm:"size:100" json:"client_name"`

	ServiceID             string  `gorm:"size:36" json:"service_id"`
	ServiceName           string  `gorm:"size:100" json:"service_name"`
	ServicePrice          float64 `json:"service_price"`
	ServiceColorClassName string  `gorm:"size:50" json:"service_color_class_name"`

	Date      string `gorm:"size:10;index" json:"date"` // YYYY-MM-DD
	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	Description string `gorm:"size:500" json:"description"`
	WorkDone    string `gorm:"size:500" json:"work_done"`
	Address     string `gorm:"size:255" json:"address"`
	Phone       string `gorm:"size:20" json:"phone"`
	SMSReminder bool   `json:"sms_reminder"`

	CreatedAt time.Time `json:"created_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
