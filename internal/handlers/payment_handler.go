package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-manager/internal/audit"
	"github.com/BruksfildServices01/business-manager/internal/httperr"
	"github.com/BruksfildServices01/business-manager/internal/httpresp"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type PaymentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPaymentHandler(db *gorm.DB, audit *audit.Dispatcher) *PaymentHandler {
	return &PaymentHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type RecordPaymentRequest struct {
	InvoiceID   string  `json:"invoice_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Method      string  `json:"method"`
	ExternalRef string  `json:"external_ref"`
}

// ======================================================
// RECORD
// ======================================================

// Record creates the payment and updates the invoice balance in one
// transaction so paid_amount never drifts from the payment rows.
func (h *PaymentHandler) Record(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var payment models.Payment

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var invoice models.Invoice
		if err := tx.
			Where("id = ? AND owner_id = ?", req.InvoiceID, ownerID).
			First(&invoice).Error; err != nil {
			return err
		}

		payment = models.Payment{
			OwnerID:     ownerID,
			InvoiceID:   invoice.ID,
			Amount:      req.Amount,
			Method:      req.Method,
			ExternalRef: req.ExternalRef,
			PaidAt:      time.Now().UTC(),
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		invoice.PaidAmount += req.Amount
		if invoice.PaidAmount >= invoice.Total {
			invoice.PaymentStatus = "paid"
		} else {
			invoice.PaymentStatus = "partial"
		}

		return tx.Save(&invoice).Error
	})

	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "invoice_not_found", "Fatura não encontrada.")
			return
		}
		httperr.Internal(c, "failed_to_record_payment", "Erro ao registrar pagamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		Action:   "payment_recorded",
		Entity:   "payment",
		EntityID: payment.ID,
		Metadata: map[string]any{
			"invoice_id": payment.InvoiceID,
			"amount":     payment.Amount,
		},
	})

	httpresp.Created(c, payment)
}

// ======================================================
// LIST
// ======================================================

func (h *PaymentHandler) List(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	q := h.db.Where("owner_id = ?", ownerID)

	if invoiceID := c.Query("invoice_id"); invoiceID != "" {
		q = q.Where("invoice_id = ?", invoiceID)
	}

	var payments []models.Payment
	if err := q.
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_payments", "Erro ao listar pagamentos.")
		return
	}

	httpresp.List(c, payments)
}
