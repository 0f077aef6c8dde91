package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-manager/internal/audit"
	"github.com/BruksfildServices01/business-manager/internal/httperr"
	"github.com/BruksfildServices01/business-manager/internal/httpresp"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/models"
	"github.com/BruksfildServices01/business-manager/internal/payments"
)

// ======================================================
// HANDLER
// ======================================================

type InvoiceHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	checkout payments.CheckoutProvider
}

func NewInvoiceHandler(
	db *gorm.DB,
	audit *audit.Dispatcher,
	checkout payments.CheckoutProvider,
) *InvoiceHandler {
	return &InvoiceHandler{
		db:       db,
		audit:    audit,
		checkout: checkout,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type InvoiceItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" binding:"min=0"`
}

type CreateInvoiceRequest struct {
	ClientID string               `json:"client_id" binding:"required"`
	Discount float64              `json:"discount"`
	Tax      float64              `json:"tax"`
	DueDate  string               `json:"due_date"`
	Notes    string               `json:"notes"`
	Items    []InvoiceItemRequest `json:"items" binding:"required,min=1"`
}

// ======================================================
// CREATE
// ======================================================

func (h *InvoiceHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	var client models.Client
	if err := h.db.
		Where("id = ? AND owner_id = ?", req.ClientID, ownerID).
		First(&client).Error; err != nil {

		httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
		return
	}

	invoice := models.Invoice{
		OwnerID:    ownerID,
		ClientID:   client.ID,
		ClientName: client.Name,
		Number:     nextDocumentNumber("FAT"),
		Discount:   req.Discount,
		Tax:        req.Tax,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	}

	for _, it := range req.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		total := float64(qty) * it.UnitPrice
		invoice.Subtotal += total
		invoice.Items = append(invoice.Items, models.InvoiceItem{
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  total,
		})
	}
	invoice.Total = invoice.Subtotal - invoice.Discount + invoice.Tax

	if err := h.db.Create(&invoice).Error; err != nil {
		httperr.Internal(c, "failed_to_create_invoice", "Erro ao criar fatura.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		Action:   "invoice_created",
		Entity:   "invoice",
		EntityID: invoice.ID,
	})

	httpresp.Created(c, invoice)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *InvoiceHandler) List(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	q := h.db.Where("owner_id = ?", ownerID)

	if status := c.Query("payment_status"); status != "" {
		q = q.Where("payment_status = ?", status)
	}
	if clientID := c.Query("client_id"); clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}

	var invoices []models.Invoice
	if err := q.
		Preload("Items").
		Order("created_at DESC").
		Find(&invoices).Error; err != nil {

		httperr.Internal(c, "failed_to_list_invoices", "Erro ao listar faturas.")
		return
	}

	httpresp.List(c, invoices)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	var invoice models.Invoice
	if err := h.db.
		Preload("Items").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&invoice).Error; err != nil {

		httperr.NotFound(c, "invoice_not_found", "Fatura não encontrada.")
		return
	}

	httpresp.OK(c, invoice)
}

// ======================================================
// CHECKOUT (Mercado Pago)
// ======================================================

func (h *InvoiceHandler) CreateCheckout(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	if h.checkout == nil {
		httperr.BadRequest(c, "checkout_not_configured", "Pagamento online não configurado.")
		return
	}

	var invoice models.Invoice
	if err := h.db.
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&invoice).Error; err != nil {

		httperr.NotFound(c, "invoice_not_found", "Fatura não encontrada.")
		return
	}

	if invoice.PaymentStatus == "paid" {
		httperr.BadRequest(c, "invoice_already_paid", "Fatura já quitada.")
		return
	}

	chk, err := h.checkout.CreateCheckout(c.Request.Context(), &invoice)
	if err != nil {
		httperr.Internal(c, "failed_to_create_checkout", "Erro ao criar link de pagamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		Action:   "checkout_created",
		Entity:   "invoice",
		EntityID: invoice.ID,
		Metadata: map[string]any{"preference_id": chk.ID},
	})

	httpresp.OK(c, gin.H{
		"preference_id": chk.ID,
		"init_point":    chk.InitPoint,
	})
}
