package service

import (
	"context"
	"fmt"

	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// QuestionRepository is the question storage needed by QuestionService
type QuestionRepository interface {
	Store[model.Question]
	NextSortOrder(ctx context.Context) (int, error)
	Reorder(ctx context.Context, ids []string) error
}

// QuestionService manages app questions and their display order
type QuestionService struct {
	questions QuestionRepository
}

// NewQuestionService creates a new question service
func NewQuestionService(questions QuestionRepository) *QuestionService {
	return &QuestionService{questions: questions}
}

// List returns a page of questions, in display order by default
func (s *QuestionService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Question], error) {
	return listPage(ctx, s.questions, q)
}

// Get returns one question
func (s *QuestionService) Get(ctx context.Context, id string) (*model.Question, error) {
	return getOr(ctx, s.questions, id, ErrQuestionNotFound)
}

// Create adds a question, at the end of the list unless a position is given
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	order := 0
	if req.SortOrder != nil {
		order = *req.SortOrder
	} else {
		next, err := s.questions.NextSortOrder(ctx)
		if err != nil {
			return nil, err
		}
		order = next
	}

	question, err := s.questions.Create(ctx, &model.Question{
		Text:      req.Text,
		Category:  req.Category,
		Kind:      req.Kind,
		Options:   orEmpty(req.Options),
		SortOrder: order,
		IsActive:  boolOr(req.IsActive, true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// Update edits a question. Options are checked against the kind the
// question ends up with; switching to free text drops the options.
func (s *QuestionService) Update(ctx context.Context, id string, req *model.UpdateQuestionRequest) (*model.Question, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	kind := current.Kind
	if req.Kind != nil {
		kind = *req.Kind
	}
	options := current.Options
	if req.Options != nil {
		options = *req.Options
	} else if !kind.HasOptions() {
		options = nil
	}
	if errs := model.ValidateQuestionOptions(nil, kind, options); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "text", req.Text)
	patch = repository.SetIf(patch, "category", req.Category)
	patch = repository.SetIf(patch, "kind", req.Kind)
	patch = repository.SetIf(patch, "sort_order", req.SortOrder)
	patch = repository.SetIf(patch, "is_active", req.IsActive)
	if req.Options != nil || kind != current.Kind {
		patch = patch.Set("options", orEmpty(options))
	}
	if patch.Len() == 0 {
		return current, nil
	}

	question, err := s.questions.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update question: %w", err)
	}
	if question == nil {
		return nil, ErrQuestionNotFound
	}
	return question, nil
}

// Delete removes a question
func (s *QuestionService) Delete(ctx context.Context, id string) error {
	deleted, err := s.questions.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if deleted == nil {
		return ErrQuestionNotFound
	}
	return nil
}

// Reorder rewrites the display order. The ids must name every question
// exactly once.
func (s *QuestionService) Reorder(ctx context.Context, req *model.ReorderQuestionsRequest) error {
	if errs := req.Validate(); len(errs) > 0 {
		return model.NewValidationError(errs)
	}

	total, err := s.questions.Count(ctx, filter.Condition{})
	if err != nil {
		return err
	}
	ok, err := s.questions.Exists(ctx, req.IDs...)
	if err != nil {
		return err
	}
	if !ok || total != len(req.IDs) {
		return model.NewValidationError([]model.FieldError{
			{Field: "ids", Message: "ids must list every question exactly once"},
		})
	}

	return s.questions.Reorder(ctx, req.IDs)
}
