package handlers

import (
	"fmt"
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

type QuoteHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewQuoteHandler(db *gorm.DB, audit *audit.Dispatcher) *QuoteHandler {
	return &QuoteHandler{db: db, audit: audit}
}

// ======================================================
// REQUESTS
// ======================================================

type QuoteItemRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" binding:"min=0"`
}

type CreateQuoteRequest struct {
	ClientID   string             `json:"client_id" binding:"required"`
	Discount   float64            `json:"discount"`
	Tax        float64            `json:"tax"`
	ValidUntil string             `json:"valid_until"`
	Notes      string             `json:"notes"`
	Items      []QuoteItemRequest `json:"items" binding:"required,min=1"`
}

// ======================================================
// CREATE
// ======================================================

func (h *QuoteHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateQuoteRequest
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

	quote := models.Quote{
		OwnerID:    ownerID,
		ClientID:   client.ID,
		ClientName: client.Name,
		Number:     nextDocumentNumber("ORC"),
		Discount:   req.Discount,
		Tax:        req.Tax,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
		Status:     "open",
	}

	for _, it := range req.Items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}
		total := float64(qty) * it.UnitPrice
		quote.Subtotal += total
		quote.Items = append(quote.Items, models.QuoteItem{
			Description: it.Description,
			Quantity:    qty,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  total,
		})
	}
	quote.Total = quote.Subtotal - quote.Discount + quote.Tax

	if err := h.db.Create(&quote).Error; err != nil {
		httperr.Internal(c, "failed_to_create_quote", "Erro ao criar orçamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		Action:   "quote_created",
		Entity:   "quote",
		EntityID: quote.ID,
	})

	httpresp.Created(c, quote)
}

// ======================================================
// LIST / GET
// ======================================================

func (h *QuoteHandler) List(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	q := h.db.Where("owner_id = ?", ownerID)

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var quotes []models.Quote
	if err := q.
		Preload("Items").
		Order("created_at DESC").
		Find(&quotes).Error; err != nil {

		httperr.Internal(c, "failed_to_list_quotes", "Erro ao listar orçamentos.")
		return
	}

	httpresp.List(c, quotes)
}

func (h *QuoteHandler) Get(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	var quote models.Quote
	if err := h.db.
		Preload("Items").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&quote).Error; err != nil {

		httperr.NotFound(c, "quote_not_found", "Orçamento não encontrado.")
		return
	}

	httpresp.OK(c, quote)
}

// ======================================================
// ACCEPT → INVOICE
// ======================================================

// Accept marks the quote accepted and creates the corresponding invoice
// in the same transaction, so the two states never diverge.
func (h *QuoteHandler) Accept(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	var quote models.Quote
	if err := h.db.
		Preload("Items").
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&quote).Error; err != nil {

		httperr.NotFound(c, "quote_not_found", "Orçamento não encontrado.")
		return
	}

	if quote.Status != "open" {
		httperr.BadRequest(c, "invalid_state", "Orçamento não pode ser aceito.")
		return
	}

	var invoice models.Invoice

	err := h.db.Transaction(func(tx *gorm.DB) error {
		quote.Status = "accepted"
		if err := tx.Save(&quote).Error; err != nil {
			return err
		}

		invoice = models.Invoice{
			OwnerID:    ownerID,
			ClientID:   quote.ClientID,
			ClientName: quote.ClientName,
			Number:     nextDocumentNumber("FAT"),
			QuoteID:    quote.ID,
			Subtotal:   quote.Subtotal,
			Discount:   quote.Discount,
			Tax:        quote.Tax,
			Total:      quote.Total,
			Notes:      quote.Notes,
		}
		for _, it := range quote.Items {
			invoice.Items = append(invoice.Items, models.InvoiceItem{
				Description: it.Description,
				Quantity:    it.Quantity,
				UnitPrice:   it.UnitPrice,
				TotalPrice:  it.TotalPrice,
			})
		}

		return tx.Create(&invoice).Error
	})

	if err != nil {
		httperr.Internal(c, "failed_to_accept_quote", "Erro ao aceitar orçamento.")
		return
	}

	h.audit.Dispatch(audit.Event{
		OwnerID:  ownerID,
		Action:   "quote_accepted",
		Entity:   "quote",
		EntityID: quote.ID,
		Metadata: map[string]any{"invoice_id": invoice.ID},
	})

	httpresp.OK(c, gin.H{
		"quote":   quote,
		"invoice": invoice,
	})
}

// ======================================================
// HELPERS
// ======================================================

// nextDocumentNumber generates a human-facing document number. Uniqueness
// is not enforced; the id remains the real key.
func nextDocumentNumber(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, time.Now().UTC().Format("20060102-150405.000"))
}
