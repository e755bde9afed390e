package handlers

import (
	"fintrack-api/repository"
	"fintrack-api/types"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type BudgetsHandler struct {
	repo *repository.BudgetsRepository
}

func NewBudgetsHandler(repo *repository.BudgetsRepository) *BudgetsHandler {
	return &BudgetsHandler{repo: repo}
}

func (h *BudgetsHandler) CreateBudget(c *gin.Context) {
	var req struct {
		Month       string `json:"month" binding:"required"`
		TotalBudget int64  `json:"totalBudget" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if !types.IsValidMonth(req.Month) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "month must be YYYY-MM"))
		return
	}
	if req.TotalBudget <= 0 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "totalBudget must be positive"))
		return
	}

	userID := c.GetInt("userId")
	exists, err := h.repo.ExistsByUserAndMonth(userID, req.Month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if exists {
		c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, "Budget for this month already exists"))
		return
	}

	budget, err := h.repo.CreateBudget(userID, req.Month, req.TotalBudget)
	if err != nil {
		// A concurrent create for the same month can slip past the existence
		// check; the unique constraint settles it.
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, "Budget for this month already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusCreated, types.NewSuccessResponse(budget))
}

func (h *BudgetsHandler) GetBudgetByMonth(c *gin.Context) {
	month := c.Param("month")
	if !types.IsValidMonth(month) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "month must be YYYY-MM"))
		return
	}
	userID := c.GetInt("userId")
	budget, err := h.repo.GetBudgetByUserAndMonth(userID, month)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if budget == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Budget not found for this month"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(budget))
}

func (h *BudgetsHandler) UpdateBudget(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	budget, err := h.repo.GetBudgetByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if budget == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Budget not found"))
		return
	}
	userID := c.GetInt("userId")
	if budget.UserID != userID {
		c.JSON(http.StatusForbidden, types.NewErrorResponse(types.ErrorCodeForbidden, "Budget belongs to another user"))
		return
	}

	var req struct {
		Month       *string `json:"month"`
		TotalBudget *int64  `json:"totalBudget"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}
	if req.Month != nil && !types.IsValidMonth(*req.Month) {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "month must be YYYY-MM"))
		return
	}
	if req.TotalBudget != nil && *req.TotalBudget <= 0 {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "totalBudget must be positive"))
		return
	}

	updated, err := h.repo.UpdateBudget(id, req.Month, req.TotalBudget)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			c.JSON(http.StatusConflict, types.NewErrorResponse(types.ErrorCodeConflict, "Budget for this month already exists"))
			return
		}
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(updated))
}
