package repositories

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "moneyflow/internal/models/db_models"
)

type ExpenseRepository interface {
	CreateExpense(ctx context.Context, expense *dbm.Expense) error
	// ListCandidateExpenses returns every expense that could belong to the
	// trip: those pointing at it plus everything recorded by its members.
	// Attribution is decided by the budget reconciliation, not here.
	ListCandidateExpenses(ctx context.Context, tripID uuid.UUID, memberIDs []string) ([]dbm.Expense, error)
}

type expenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) ExpenseRepository {
	return &expenseRepository{db: db}
}

func (r *expenseRepository) CreateExpense(ctx context.Context, expense *dbm.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

func (r *expenseRepository) ListCandidateExpenses(ctx context.Context, tripID uuid.UUID, memberIDs []string) ([]dbm.Expense, error) {
	var expenses []dbm.Expense
	if err := candidateExpenses(r.db.WithContext(ctx), tripID, memberIDs).Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// candidateExpenses groups the trip/member OR so the soft-delete filter
// applies to both branches.
func candidateExpenses(db *gorm.DB, tripID uuid.UUID, memberIDs []string) *gorm.DB {
	match := db.Session(&gorm.Session{NewDB: true}).Where("trip_id = ?", tripID)
	if len(memberIDs) > 0 {
		match = match.Or("user_id IN ?", memberIDs)
	}
	return db.Where(match).Order("date ASC")
}
