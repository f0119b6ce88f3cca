package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// LanguageService manages the locales offered in the app
type LanguageService struct {
	languages Store[model.Language]
}

// NewLanguageService creates a new language service
func NewLanguageService(languages Store[model.Language]) *LanguageService {
	return &LanguageService{languages: languages}
}

// List returns a page of languages
func (s *LanguageService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Language], error) {
	return listPage(ctx, s.languages, q)
}

// Get returns one language
func (s *LanguageService) Get(ctx context.Context, id string) (*model.Language, error) {
	return getOr(ctx, s.languages, id, ErrLanguageNotFound)
}

// Create adds a language. The code is stored in canonical BCP 47 form and
// missing names are filled from the CLDR display names.
func (s *LanguageService) Create(ctx context.Context, req *model.CreateLanguageRequest) (*model.Language, error) {
	errs := req.Validate()
	var tag language.Tag
	if req.Code != "" {
		var err error
		tag, err = language.Parse(req.Code)
		if err != nil {
			errs = append(errs, model.FieldError{Field: "code", Message: "code must be a valid BCP 47 language tag"})
		}
	}
	if len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	name, native := req.Name, req.NativeName
	if name == "" {
		name = display.English.Tags().Name(tag)
	}
	if native == "" {
		native = display.Self.Name(tag)
	}
	if name == "" || native == "" {
		return nil, model.NewValidationError([]model.FieldError{
			{Field: "name", Message: "name is required for this code"},
		})
	}

	lang, err := s.languages.Create(ctx, &model.Language{
		Code:       tag.String(),
		Name:       name,
		NativeName: native,
		IsActive:   boolOr(req.IsActive, true),
		SortOrder:  intOr(req.SortOrder, 0),
	})
	if err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrLanguageExists
		}
		return nil, fmt.Errorf("failed to create language: %w", err)
	}
	return lang, nil
}

// Update edits a language. The code itself cannot change.
func (s *LanguageService) Update(ctx context.Context, id string, req *model.UpdateLanguageRequest) (*model.Language, error) {
	if errs := req.Validate(); len(errs) > 0 {
		return nil, model.NewValidationError(errs)
	}

	patch := repository.NewPatch()
	patch = repository.SetIf(patch, "name", req.Name)
	patch = repository.SetIf(patch, "native_name", req.NativeName)
	patch = repository.SetIf(patch, "is_active", req.IsActive)
	patch = repository.SetIf(patch, "sort_order", req.SortOrder)
	if patch.Len() == 0 {
		return s.Get(ctx, id)
	}

	lang, err := s.languages.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("failed to update language: %w", err)
	}
	if lang == nil {
		return nil, ErrLanguageNotFound
	}
	return lang, nil
}

// Delete removes a language
func (s *LanguageService) Delete(ctx context.Context, id string) error {
	deleted, err := s.languages.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete language: %w", err)
	}
	if deleted == nil {
		return ErrLanguageNotFound
	}
	return nil
}
