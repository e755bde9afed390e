package handlers

import (
	"fintrack-api/models"
	"fintrack-api/repository"
	"fintrack-api/types"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ExpensesHandler struct {
	repo *repository.ExpensesRepository
}

func NewExpensesHandler(repo *repository.ExpensesRepository) *ExpensesHandler {
	return &ExpensesHandler{repo: repo}
}

func (h *ExpensesHandler) CreateExpense(c *gin.Context) {
	var req struct {
		Date        string  `json:"date" binding:"required"`
		Category    string  `json:"category" binding:"required"`
		Amount      int64   `json:"amount" binding:"required"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	date, err := types.ParseDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "date must be YYYY-MM-DD"))
		return
	}
	if req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "amount must be positive"))
		return
	}

	userID := c.GetInt("userId")
	expense, err := h.repo.CreateExpense(userID, date, req.Category, req.Amount, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(expense))
}

// GetExpenses lists the user's expenses newest first. With both startDate and
// endDate present it narrows to the inclusive range; with neither it returns
// everything. A single bound is rejected.
func (h *ExpensesHandler) GetExpenses(c *gin.Context) {
	userID := c.GetInt("userId")
	startParam := c.Query("startDate")
	endParam := c.Query("endDate")

	var expenses []*models.Expense
	var err error
	switch {
	case startParam != "" && endParam != "":
		var start, end time.Time
		if start, err = types.ParseDate(startParam); err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "startDate must be YYYY-MM-DD"))
			return
		}
		if end, err = types.ParseDate(endParam); err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "endDate must be YYYY-MM-DD"))
			return
		}
		expenses, err = h.repo.ListByUserAndDateRange(userID, start, end)
	case startParam == "" && endParam == "":
		expenses, err = h.repo.ListByUser(userID)
	default:
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "startDate and endDate must be provided together"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(expenses))
}

func (h *ExpensesHandler) GetExpense(c *gin.Context) {
	expense, ok := h.ownedExpense(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(expense))
}

func (h *ExpensesHandler) GetExpensesByDate(c *gin.Context) {
	date, err := types.ParseDate(c.Param("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "date must be YYYY-MM-DD"))
		return
	}
	userID := c.GetInt("userId")
	expenses, err := h.repo.ListByUserAndDate(userID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(expenses))
}

func (h *ExpensesHandler) GetExpensesByMonth(c *gin.Context) {
	month := c.Param("month")
	if !types.IsValidMonth(month) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "month must be YYYY-MM"))
		return
	}
	userID := c.GetInt("userId")
	expenses, err := h.repo.ListByUserAndMonth(userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(expenses))
}

func (h *ExpensesHandler) UpdateExpense(c *gin.Context) {
	expense, ok := h.ownedExpense(c)
	if !ok {
		return
	}

	var req struct {
		Date        *string `json:"date"`
		Category    *string `json:"category"`
		Amount      *int64  `json:"amount"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	var date *time.Time
	if req.Date != nil {
		parsed, err := types.ParseDate(*req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "date must be YYYY-MM-DD"))
			return
		}
		date = &parsed
	}
	if req.Amount != nil && *req.Amount <= 0 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "amount must be positive"))
		return
	}

	updated, err := h.repo.UpdateExpense(expense.ID, date, req.Category, req.Amount, req.Description)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(updated))
}

func (h *ExpensesHandler) DeleteExpense(c *gin.Context) {
	expense, ok := h.ownedExpense(c)
	if !ok {
		return
	}
	if err := h.repo.DeleteExpense(expense.ID); err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"message": "Expense deleted"}))
}

// ownedExpense loads the expense from the :id path param and enforces
// ownership: absent records are 404, another user's records are 403.
// On failure the response has already been written.
func (h *ExpensesHandler) ownedExpense(c *gin.Context) (*models.Expense, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return nil, false
	}
	expense, err := h.repo.GetExpenseByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return nil, false
	}
	if expense == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Expense not found"))
		return nil, false
	}
	if expense.UserID != c.GetInt("userId") {
		c.JSON(http.StatusForbidden, types.NewErrorResponse(types.ErrorCodeForbidden, "Expense belongs to another user"))
		return nil, false
	}
	return expense, true
}
