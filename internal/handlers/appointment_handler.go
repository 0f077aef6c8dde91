package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/business-manager/internal/domain/booking"
	"github.com/BruksfildServices01/business-manager/internal/httperr"
	"github.com/BruksfildServices01/business-manager/internal/httpresp"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/models"
	"github.com/BruksfildServices01/business-manager/internal/monitoring"
	"github.com/BruksfildServices01/business-manager/internal/timezone"
	ucBooking "github.com/BruksfildServices01/business-manager/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	db   *gorm.DB
	book *ucBooking.BookAppointment
}

func NewAppointmentHandler(db *gorm.DB, book *ucBooking.BookAppointment) *AppointmentHandler {
	return &AppointmentHandler{
		db:   db,
		book: book,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID   string `json:"client_id" binding:"required"`
	ClientName string `json:"client_name"`

	ServiceID             string  `json:"service_id"`
	ServiceName           string  `json:"service_name"`
	ServicePrice          float64 `json:"service_price"`
	ServiceColorClassName string  `json:"service_color_class_name"`

	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`

	Description string `json:"description"`
	WorkDone    string `json:"work_done"`
	Address     string `json:"address"`
	Phone       string `json:"phone"`
	SMSReminder bool   `json:"sms_reminder"`
}

// ======================================================
// CREATE
// ======================================================

// Create books the appointment through the coordinator. The owner id
// comes from the authenticated session and is passed explicitly in the
// booking request. The caller only gets a 201 when a concrete
// appointment id came back from a committed transaction.
func (h *AppointmentHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	appointmentID, err := h.book.Execute(c.Request.Context(), domain.Request{
		ClientID:              req.ClientID,
		OwnerID:               ownerID,
		ServiceID:             req.ServiceID,
		ServiceName:           req.ServiceName,
		ServicePrice:          req.ServicePrice,
		ServiceColorClassName: req.ServiceColorClassName,
		Date:                  req.Date,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		Description:           req.Description,
		WorkDone:              req.WorkDone,
		Address:               req.Address,
		Phone:                 req.Phone,
		SMSReminder:           req.SMSReminder,
		ClientName:            req.ClientName,
	})

	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			monitoring.BookingsTotal.WithLabelValues("invalid").Inc()
			httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		case errors.Is(err, domain.ErrClientNotFound):
			monitoring.BookingsTotal.WithLabelValues("not_found").Inc()
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		case errors.Is(err, domain.ErrPermissionDenied):
			monitoring.BookingsTotal.WithLabelValues("denied").Inc()
			httperr.Forbidden(c, "permission_denied", "Operação não permitida.")
		case errors.Is(err, domain.ErrStoreUnavailable):
			// Transient; o cliente pode repetir a chamada inteira.
			monitoring.BookingsTotal.WithLabelValues("unavailable").Inc()
			httperr.Unavailable(c, "store_unavailable", "Tente novamente.")
		default:
			monitoring.BookingsTotal.WithLabelValues("error").Inc()
			httperr.Internal(c, "failed_to_book_appointment", "Erro ao criar agendamento.")
		}
		return
	}

	monitoring.BookingsTotal.WithLabelValues("ok").Inc()

	c.JSON(201, gin.H{"id": appointmentID})
}

// ======================================================
// LIST BY DATE
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = timezone.Today(h.ownerTimezone(ownerID))
	}

	var aps []models.Appointment
	if err := h.db.
		Where("owner_id = ? AND date = ?", ownerID, dateStr).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// LIST BY MONTH
// ======================================================

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	year := c.Query("year")
	month := c.Query("month")

	if len(year) != 4 || month == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}
	if len(month) == 1 {
		month = "0" + month
	}

	prefix := fmt.Sprintf("%s-%s-%%", year, month)

	var aps []models.Appointment
	if err := h.db.
		Where("owner_id = ? AND date LIKE ?", ownerID, prefix).
		Order("date ASC, start_time ASC").
		Find(&aps).Error; err != nil {

		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	httpresp.List(c, aps)
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) ownerTimezone(ownerID string) string {
	var user models.User
	if err := h.db.Select("timezone").First(&user, "id = ?", ownerID).Error; err != nil {
		return timezone.DefaultTimezone
	}
	return user.Timezone
}
