package repository

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Receipt is the stored metadata for a receipt file attached to an expense.
// The file body lives in object storage under the receipt ID.
type Receipt struct {
	ID        string    `json:"id"`
	ExpenseID int       `json:"expenseId"`
	FileName  string    `json:"fileName"`
	FileType  string    `json:"fileType"`
	FileSize  int64     `json:"fileSize"`
	CreatedAt time.Time `json:"createdAt"`
}

type ReceiptsRepository struct {
	db *sql.DB
}

func NewReceiptsRepository(db *sql.DB) *ReceiptsRepository {
	return &ReceiptsRepository{db: db}
}

func (r *ReceiptsRepository) CreateReceipt(expenseID int, fileName, fileType string, fileSize int64) (string, error) {
	id := uuid.NewString()
	_, err := r.db.Exec(`
		INSERT INTO receipts (id, expense_id, file_name, file_type, file_size, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, id, expenseID, fileName, fileType, fileSize)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *ReceiptsRepository) GetReceiptByID(id string) (*Receipt, error) {
	var rec Receipt
	err := r.db.QueryRow(`
		SELECT id, expense_id, file_name, file_type, file_size, created_at
		FROM receipts
		WHERE id = $1
	`, id).Scan(&rec.ID, &rec.ExpenseID, &rec.FileName, &rec.FileType, &rec.FileSize, &rec.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
