package repository

import (
	"database/sql"
	"fintrack-api/models"
	"time"
)

type ExpensesRepository struct {
	db *sql.DB
}

func NewExpensesRepository(db *sql.DB) *ExpensesRepository {
	return &ExpensesRepository{db: db}
}

func (r *ExpensesRepository) CreateExpense(userID int, date time.Time, category string, amount int64, description *string) (*models.Expense, error) {
	var id int
	err := r.db.QueryRow(`
		INSERT INTO expenses (user_id, date, category, amount, description, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`, userID, date, category, amount, description).Scan(&id)
	if err != nil {
		return nil, err
	}
	return r.GetExpenseByID(id)
}

func (r *ExpensesRepository) GetExpenseByID(id int) (*models.Expense, error) {
	var e models.Expense
	var description sql.NullString
	err := r.db.QueryRow(`
		SELECT id, user_id, date, category, amount, description, created_at, modified_at
		FROM expenses
		WHERE id = $1
	`, id).Scan(&e.ID, &e.UserID, &e.Date, &e.Category, &e.Amount, &description, &e.CreatedAt, &e.ModifiedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if description.Valid {
		e.Description = &description.String
	}
	return &e, nil
}

// ListByUser returns all of the user's expenses, newest date first.
func (r *ExpensesRepository) ListByUser(userID int) ([]*models.Expense, error) {
	return r.queryExpenses(`
		SELECT id, user_id, date, category, amount, description, created_at, modified_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
	`, userID)
}

// ListByUserAndDateRange returns the user's expenses with date in the
// inclusive [start, end] range, newest date first.
func (r *ExpensesRepository) ListByUserAndDateRange(userID int, start, end time.Time) ([]*models.Expense, error) {
	return r.queryExpenses(`
		SELECT id, user_id, date, category, amount, description, created_at, modified_at
		FROM expenses
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC, id DESC
	`, userID, start, end)
}

// ListByUserAndDate returns the user's expenses on the exact day.
func (r *ExpensesRepository) ListByUserAndDate(userID int, date time.Time) ([]*models.Expense, error) {
	return r.queryExpenses(`
		SELECT id, user_id, date, category, amount, description, created_at, modified_at
		FROM expenses
		WHERE user_id = $1 AND date = $2
		ORDER BY id
	`, userID, date)
}

// ListByUserAndMonth returns the user's expenses within the calendar month
// ("YYYY-MM"), newest date first.
func (r *ExpensesRepository) ListByUserAndMonth(userID int, month string) ([]*models.Expense, error) {
	return r.queryExpenses(`
		SELECT id, user_id, date, category, amount, description, created_at, modified_at
		FROM expenses
		WHERE user_id = $1 AND to_char(date, 'YYYY-MM') = $2
		ORDER BY date DESC, id DESC
	`, userID, month)
}

// UpdateExpense overwrites only the provided fields; nil pointers leave the
// stored values untouched.
func (r *ExpensesRepository) UpdateExpense(id int, date *time.Time, category *string, amount *int64, description *string) (*models.Expense, error) {
	_, err := r.db.Exec(`
		UPDATE expenses SET
			date = COALESCE($2, date),
			category = COALESCE($3, category),
			amount = COALESCE($4, amount),
			description = COALESCE($5, description),
			modified_at = NOW()
		WHERE id = $1
	`, id, date, category, amount, description)
	if err != nil {
		return nil, err
	}
	return r.GetExpenseByID(id)
}

func (r *ExpensesRepository) DeleteExpense(id int) error {
	_, err := r.db.Exec(`DELETE FROM expenses WHERE id = $1`, id)
	return err
}

func (r *ExpensesRepository) queryExpenses(query string, args ...interface{}) ([]*models.Expense, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	expenses := []*models.Expense{}
	for rows.Next() {
		var e models.Expense
		var description sql.NullString
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.Category, &e.Amount,
			&description, &e.CreatedAt, &e.ModifiedAt); err != nil {
			return nil, err
		}
		if description.Valid {
			e.Description = &description.String
		}
		expenses = append(expenses, &e)
	}
	return expenses, rows.Err()
}
