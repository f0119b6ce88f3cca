package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// ErrInsufficientBalance is returned when an entry would overdraw a balance
var ErrInsufficientBalance = errors.New("insufficient balance")

// LedgerRepository handles the append-only drink-dollar ledger
type LedgerRepository struct {
	*Table[model.LedgerEntry]
	db database.Database
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db database.Database) *LedgerRepository {
	return &LedgerRepository{
		Table: NewTable[model.LedgerEntry](db, TableConfig{
			Name:   "drink_dollar",
			Search: []string{"reason", "reference"},
			Sorts:  []string{"created_on", "amount"},
			Filters: filter.Fields{
				"user_id":    filter.FieldString,
				"kind":       filter.FieldString,
				"amount":     filter.FieldInt,
				"created_on": filter.FieldTimestamp,
			},
			Immutable: true,
		}),
		db: db,
	}
}

// Append writes an entry. Negative entries are checked against the
// balance inside the same transaction as the insert.
func (r *LedgerRepository) Append(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	fields, err := toFields(entry)
	if err != nil {
		return nil, err
	}
	for _, col := range systemColumns {
		delete(fields, col)
	}
	assignments, vars, err := r.assignments(fields)
	if err != nil {
		return nil, err
	}
	assignments = append(assignments, "created_on = time::now()")

	query := `
		BEGIN TRANSACTION;
		LET $balance = math::sum((SELECT VALUE amount FROM drink_dollar WHERE user_id = $p_user_id));
		IF $p_amount < 0 AND $balance + $p_amount < 0 { THROW "insufficient balance" };
		CREATE drink_dollar SET ` + strings.Join(assignments, ", ") + `;
		COMMIT TRANSACTION;
	`
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		if strings.Contains(err.Error(), "insufficient balance") {
			return nil, ErrInsufficientBalance
		}
		return nil, err
	}

	// Only the CREATE statement returns rows
	for i := len(results) - 1; i >= 0; i-- {
		if rows := database.StatementRecords(results, i); len(rows) > 0 {
			return decodeRecord[model.LedgerEntry](rows[0])
		}
	}
	return nil, errors.New("no result returned")
}

// Balance sums a user's ledger
func (r *LedgerRepository) Balance(ctx context.Context, userID string) (*model.Balance, error) {
	query := `SELECT math::sum(amount) AS balance, count() AS entries FROM drink_dollar WHERE user_id = $user_id GROUP ALL`
	result, err := r.db.QueryOne(ctx, query, map[string]interface{}{"user_id": userID})
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	balance := &model.Balance{UserID: userID}
	if m, ok := result.(map[string]interface{}); ok {
		balance.Balance = getInt64(m, "balance")
		balance.Entries = extractCountValue(m["entries"])
	}
	return balance, nil
}
