package queue

// ReminderQueue is where reminder events land. A separate worker (out of
// this repository) consumes it and sends the actual SMS.
const ReminderQueue = "appointment.reminder"

type AppointmentReminderEvent struct {
	AppointmentID string  `json:"appointment_id"`
	OwnerID       string  `json:"owner_id"`
	ClientName    string  `json:"client_name"`
	Phone         string  `json:"phone"`
	ServiceName   string  `json:"service_name"`
	ServicePrice  float64 `json:"service_price"`
	Date          string  `json:"date"`
	StartTime     string  `json:"start_time"`
}
