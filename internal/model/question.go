package model

import (
	"strings"
	"time"
)

// QuestionKind is how a question is answered
type QuestionKind string

const (
	QuestionKindSingleChoice   QuestionKind = "single_choice"
	QuestionKindMultipleChoice QuestionKind = "multiple_choice"
	QuestionKindFreeText       QuestionKind = "free_text"
)

// IsValid returns true if the kind is known
func (k QuestionKind) IsValid() bool {
	switch k {
	case QuestionKindSingleChoice, QuestionKindMultipleChoice, QuestionKindFreeText:
		return true
	default:
		return false
	}
}

// HasOptions returns true for kinds answered by picking options
func (k QuestionKind) HasOptions() bool {
	return k == QuestionKindSingleChoice || k == QuestionKindMultipleChoice
}

// Question is an onboarding or profile question shown in the app
type Question struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Category  string       `json:"category,omitempty"`
	Kind      QuestionKind `json:"kind"`
	Options   []string     `json:"options"`
	SortOrder int          `json:"sort_order"`
	IsActive  bool         `json:"is_active"`
	CreatedOn time.Time    `json:"created_on"`
	UpdatedOn time.Time    `json:"updated_on"`
}

const (
	MaxQuestionTextLength     = 500
	MaxQuestionCategoryLength = 50
	MaxQuestionOptions        = 20
	MaxQuestionOptionLength   = 100
	MinQuestionOptions        = 2
)

// CreateQuestionRequest represents a request to create a question
type CreateQuestionRequest struct {
	Text      string       `json:"text"`
	Category  string       `json:"category,omitempty"`
	Kind      QuestionKind `json:"kind"`
	Options   []string     `json:"options,omitempty"`
	SortOrder *int         `json:"sort_order,omitempty"` // defaults to the end of the list
	IsActive  *bool        `json:"is_active,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateQuestionRequest) Validate() []FieldError {
	var errors []FieldError

	errors = required(errors, "text", r.Text)
	errors = maxLen(errors, "text", r.Text, MaxQuestionTextLength)
	errors = maxLen(errors, "category", r.Category, MaxQuestionCategoryLength)
	if !r.Kind.IsValid() {
		errors = append(errors, FieldError{Field: "kind", Message: "kind must be 'single_choice', 'multiple_choice' or 'free_text'"})
	} else {
		errors = ValidateQuestionOptions(errors, r.Kind, r.Options)
	}
	if r.SortOrder != nil && *r.SortOrder < 0 {
		errors = append(errors, FieldError{Field: "sort_order", Message: "sort_order cannot be negative"})
	}

	return errors
}

// UpdateQuestionRequest represents a request to update a question.
// Options are re-checked against the resulting kind by the service.
type UpdateQuestionRequest struct {
	Text      *string       `json:"text,omitempty"`
	Category  *string       `json:"category,omitempty"`
	Kind      *QuestionKind `json:"kind,omitempty"`
	Options   *[]string     `json:"options,omitempty"`
	SortOrder *int          `json:"sort_order,omitempty"`
	IsActive  *bool         `json:"is_active,omitempty"`
}

// Validate checks if the update request is valid
func (r *UpdateQuestionRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Text != nil {
		if *r.Text == "" {
			errors = append(errors, FieldError{Field: "text", Message: "text cannot be empty"})
		}
		errors = maxLen(errors, "text", *r.Text, MaxQuestionTextLength)
	}
	if r.Category != nil {
		errors = maxLen(errors, "category", *r.Category, MaxQuestionCategoryLength)
	}
	if r.Kind != nil && !r.Kind.IsValid() {
		errors = append(errors, FieldError{Field: "kind", Message: "kind must be 'single_choice', 'multiple_choice' or 'free_text'"})
	}
	if r.SortOrder != nil && *r.SortOrder < 0 {
		errors = append(errors, FieldError{Field: "sort_order", Message: "sort_order cannot be negative"})
	}

	return errors
}

// ReorderQuestionsRequest lists question ids in their new display order
type ReorderQuestionsRequest struct {
	IDs []string `json:"ids"`
}

// Validate checks if the reorder request is valid
func (r *ReorderQuestionsRequest) Validate() []FieldError {
	if len(r.IDs) == 0 {
		return []FieldError{{Field: "ids", Message: "ids is required"}}
	}
	seen := make(map[string]bool, len(r.IDs))
	for _, id := range r.IDs {
		if !IsRecordID(id, "question") {
			return []FieldError{{Field: "ids", Message: "ids must contain question ids"}}
		}
		if seen[id] {
			return []FieldError{{Field: "ids", Message: "ids must not repeat"}}
		}
		seen[id] = true
	}
	return nil
}

// ValidateQuestionOptions checks options against the question kind
func ValidateQuestionOptions(errors []FieldError, kind QuestionKind, options []string) []FieldError {
	if !kind.HasOptions() {
		if len(options) > 0 {
			errors = append(errors, FieldError{Field: "options", Message: "free_text questions cannot have options"})
		}
		return errors
	}

	if len(options) < MinQuestionOptions {
		return append(errors, FieldError{Field: "options", Message: "choice questions need at least 2 options"})
	}
	if len(options) > MaxQuestionOptions {
		return append(errors, FieldError{Field: "options", Message: "a question can have at most 20 options"})
	}
	seen := make(map[string]bool, len(options))
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt))
		if key == "" {
			return append(errors, FieldError{Field: "options", Message: "options cannot be empty"})
		}
		if runeLen(opt) > MaxQuestionOptionLength {
			return append(errors, FieldError{Field: "options", Message: "options must be 100 characters or less"})
		}
		if seen[key] {
			return append(errors, FieldError{Field: "options", Message: "options must be distinct"})
		}
		seen[key] = true
	}
	return errors
}
