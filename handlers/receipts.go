package handlers

import (
	"context"
	"fintrack-api/initializers"
	"fintrack-api/repository"
	"fintrack-api/types"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"
	"github.com/minio/minio-go/v7"
)

type ReceiptsHandler struct {
	receiptsRepo *repository.ReceiptsRepository
	expensesRepo *repository.ExpensesRepository
}

func NewReceiptsHandler(r *repository.ReceiptsRepository, e *repository.ExpensesRepository) *ReceiptsHandler {
	return &ReceiptsHandler{receiptsRepo: r, expensesRepo: e}
}

// UploadReceipt attaches a receipt file to one of the caller's expenses.
// The MIME type is sniffed from the file content, never trusted from the
// client, and checked against the server-side upload policy.
func (h *ReceiptsHandler) UploadReceipt(c *gin.Context) {
	userID := c.GetInt("userId")

	expenseID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "Invalid ID"))
		return
	}
	expense, err := h.expensesRepo.GetExpenseByID(expenseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if expense == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Expense not found"))
		return
	}
	if expense.UserID != userID {
		c.JSON(http.StatusForbidden, types.NewErrorResponse(types.ErrorCodeForbidden, "Expense belongs to another user"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, initializers.Storage.MaxSize)

	file, err := c.FormFile("file")
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "request body too large") {
			c.JSON(http.StatusRequestEntityTooLarge, types.NewErrorResponse(types.ErrorCodeValidation, "file size exceeds the limit"))
			return
		}
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "file is required"))
		return
	}

	sniff, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "cannot open uploaded file"))
		return
	}
	mt, detectErr := mimetype.DetectReader(sniff)
	_ = sniff.Close()
	if detectErr != nil || mt == nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, "failed to detect file type"))
		return
	}
	contentType := strings.Split(mt.String(), ";")[0]

	if err := initializers.CheckFileAllowed(file.Size, contentType); err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.ErrorCodeValidation, err.Error()))
		return
	}

	receiptID, err := h.receiptsRepo.CreateReceipt(expenseID, file.Filename, contentType, file.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	defer src.Close()
	_, err = initializers.StorageClient.PutObject(
		context.Background(),
		initializers.Storage.Bucket,
		receiptID,
		src,
		file.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, types.NewSuccessResponse(gin.H{
		"receiptId": receiptID,
		"filename":  file.Filename,
		"size":      file.Size,
	}))
}

// GetReceipt returns a presigned URL for a receipt the caller owns.
func (h *ReceiptsHandler) GetReceipt(c *gin.Context) {
	userID := c.GetInt("userId")
	receiptID := c.Param("id")

	receipt, err := h.receiptsRepo.GetReceiptByID(receiptID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if receipt == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.ErrorCodeNotFound, "Receipt not found"))
		return
	}

	expense, err := h.expensesRepo.GetExpenseByID(receipt.ExpenseID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, err.Error()))
		return
	}
	if expense == nil || expense.UserID != userID {
		c.JSON(http.StatusForbidden, types.NewErrorResponse(types.ErrorCodeForbidden, "Receipt belongs to another user"))
		return
	}

	url, err := initializers.GenerateReceiptURL(receipt.ID, receipt.FileName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.ErrorCodeInternal, "failed to create presigned url"))
		return
	}
	c.JSON(http.StatusOK, types.NewSuccessResponse(gin.H{"url": url}))
}
