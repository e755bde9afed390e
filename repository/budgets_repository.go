package repository

import (
	"database/sql"
	"fintrack-api/models"
)

type BudgetsRepository struct {
	db *sql.DB
}

func NewBudgetsRepository(db *sql.DB) *BudgetsRepository {
	return &BudgetsRepository{db: db}
}

// CreateBudget inserts a budget for (userID, month). The budgets table has a
// UNIQUE (user_id, month) constraint; callers should check the returned error
// with IsUniqueViolation to distinguish a duplicate month from a real failure.
func (r *BudgetsRepository) CreateBudget(userID int, month string, totalBudget int64) (*models.Budget, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO budgets (user_id, month, total_budget, created_at, modified_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, userID, month, totalBudget).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetBudgetByID(id)
}

func (r *BudgetsRepository) GetBudgetByID(id int) (*models.Budget, error) {
	var b models.Budget
	err := r.db.QueryRow(`
		SELECT id, user_id, month, total_budget, created_at, modified_at
		FROM budgets
		WHERE id = $1
	`, id).Scan(&b.ID, &b.UserID, &b.Month, &b.TotalBudget, &b.CreatedAt, &b.ModifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetsRepository) GetBudgetByUserAndMonth(userID int, month string) (*models.Budget, error) {
	var b models.Budget
	err := r.db.QueryRow(`
		SELECT id, user_id, month, total_budget, created_at, modified_at
		FROM budgets
		WHERE user_id = $1 AND month = $2
	`, userID, month).Scan(&b.ID, &b.UserID, &b.Month, &b.TotalBudget, &b.CreatedAt, &b.ModifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BudgetsRepository) ExistsByUserAndMonth(userID int, month string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
		SELECT EXISTS (SELECT 1 FROM budgets WHERE user_id = $1 AND month = $2)
	`, userID, month).Scan(&exists)
	return exists, err
}

// UpdateBudget overwrites only the provided fields. Moving a budget into a
// month that already has one trips the unique constraint, same as create.
func (r *BudgetsRepository) UpdateBudget(id int, month *string, totalBudget *int64) (*models.Budget, error) {
	_, err := r.db.Exec(`
		UPDATE budgets SET
			month = COALESCE($2, month),
			total_budget = COALESCE($3, total_budget),
			modified_at = NOW()
		WHERE id = $1
	`, id, month, totalBudget)
	if err != nil {
		return nil, err
	}
	return r.GetBudgetByID(id)
}
