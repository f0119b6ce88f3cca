package repository

import (
	"context"
	"errors"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
)

// QuestionRepository handles question data access
type QuestionRepository struct {
	*Table[model.Question]
	db database.Database
}

// NewQuestionRepository creates a new question repository
func NewQuestionRepository(db database.Database) *QuestionRepository {
	return &QuestionRepository{
		Table: NewTable[model.Question](db, TableConfig{
			Name:        "question",
			Search:      []string{"text", "category"},
			Sorts:       []string{"sort_order", "created_on"},
			DefaultSort: "sort_order",
			DefaultDir:  model.SortAsc,
			Filters: filter.Fields{
				"category":  filter.FieldString,
				"kind":      filter.FieldString,
				"is_active": filter.FieldBool,
			},
		}),
		db: db,
	}
}

// NextSortOrder returns one past the highest sort_order in use
func (r *QuestionRepository) NextSortOrder(ctx context.Context) (int, error) {
	query := `SELECT math::max(sort_order) AS max, count() AS total FROM question GROUP ALL`
	result, err := r.db.QueryOne(ctx, query, nil)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	m, ok := result.(map[string]interface{})
	if !ok || extractCountValue(m["total"]) == 0 {
		return 0, nil
	}
	return int(getInt64(m, "max")) + 1, nil
}

// Reorder assigns sort_order 0..n-1 following ids, in one atomic batch
func (r *QuestionRepository) Reorder(ctx context.Context, ids []string) error {
	batch := database.NewAtomicBatch()
	for i, id := range ids {
		batch.Add(
			"UPDATE type::record($id) SET sort_order = $order, updated_on = time::now()",
			map[string]interface{}{"id": id, "order": i},
		)
	}
	return batch.Execute(ctx, r.db)
}
