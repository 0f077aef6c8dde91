package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/business-manager/internal/httperr"
	"github.com/BruksfildServices01/business-manager/internal/httpresp"
	"github.com/BruksfildServices01/business-manager/internal/middleware"
	"github.com/BruksfildServices01/business-manager/internal/models"
)

type ExpenseHandler struct {
	db *gorm.DB
}

func NewExpenseHandler(db *gorm.DB) *ExpenseHandler {
	return &ExpenseHandler{db: db}
}

// --------- Requests ---------

type CreateExpenseRequest struct {
	Description string  `json:"description" binding:"required"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Date        string  `json:"date" binding:"required"` // YYYY-MM-DD
}

// --------- Handlers ---------

func (h *ExpenseHandler) Create(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	expense := models.Expense{
		OwnerID:     ownerID,
		Description: req.Description,
		Category:    req.Category,
		Amount:      req.Amount,
		Date:        req.Date,
	}

	if err := h.db.Create(&expense).Error; err != nil {
		httperr.Internal(c, "failed_to_create_expense", "Erro ao criar despesa.")
		return
	}

	httpresp.Created(c, expense)
}

func (h *ExpenseHandler) List(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)

	q := h.db.Where("owner_id = ?", ownerID)

	if category := c.Query("category"); category != "" {
		q = q.Where("category = ?", category)
	}
	if from := c.Query("from"); from != "" {
		q = q.Where("date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("date <= ?", to)
	}

	var expenses []models.Expense
	if err := q.
		Order("date DESC").
		Find(&expenses).Error; err != nil {

		httperr.Internal(c, "failed_to_list_expenses", "Erro ao listar despesas.")
		return
	}

	httpresp.List(c, expenses)
}

func (h *ExpenseHandler) Delete(c *gin.Context) {
	ownerID := c.MustGet(middleware.ContextUserID).(string)
	id := c.Param("id")

	res := h.db.
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&models.Expense{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_expense", "Erro ao excluir despesa.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "expense_not_found", "Despesa não encontrada.")
		return
	}

	c.Status(204)
}
