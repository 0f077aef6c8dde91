package booking

import (
	"fmt"
	"math"
	"time"
)

const DateLayout = "2006-01-02"

// Request carries everything needed to book one appointment. OwnerID is
// always explicit here; the coordinator never reads it from ambient state.
type Request struct {
	ClientID string
	OwnerID  string

	ServiceID    string
	ServiceName  string
	ServicePrice float64

	Date      string // YYYY-MM-DD
	StartTime string
	EndTime   string

	Description string
	WorkDone    string
	Address     string
	Phone       string
	SMSReminder bool

	ServiceColorClassName string
	ClientName            string
}

// Validate rejects malformed input before any store interaction.
func (r Request) Validate() error {
	if r.ClientID == "" {
		return fmt.Errorf("%w: client_id is required", ErrInvalidRequest)
	}
	if r.OwnerID == "" {
		return fmt.Errorf("%w: owner_id is required", ErrInvalidRequest)
	}
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidRequest)
	}
	if r.ServicePrice < 0 || math.IsNaN(r.ServicePrice) || math.IsInf(r.ServicePrice, 0) {
		return fmt.Errorf("%w: service_price must be a number >= 0", ErrInvalidRequest)
	}
	return nil
}

// LastService is the human-readable ledger summary written to the client
// on every successful booking.
func (r Request) LastService() string {
	return r.ServiceName + " - " + r.Date
}
