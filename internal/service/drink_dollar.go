package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/forgo/backoffice/internal/filter"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// LedgerRepository is the append-only ledger storage
type LedgerRepository interface {
	List(ctx context.Context, q model.ListQuery, extra ...filter.Condition) ([]model.LedgerEntry, int, error)
	Get(ctx context.Context, id string) (*model.LedgerEntry, error)
	Append(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error)
	Balance(ctx context.Context, userID string) (*model.Balance, error)
}

// DrinkDollarService records drink-dollar movements. Entries are never
// edited or removed; corrections are new entries.
type DrinkDollarService struct {
	ledger LedgerRepository
	users  Existence
}

// NewDrinkDollarService creates a new drink-dollar service
func NewDrinkDollarService(ledger LedgerRepository, users Existence) *DrinkDollarService {
	return &DrinkDollarService{ledger: ledger, users: users}
}

// List returns a page of ledger entries
func (s *DrinkDollarService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.LedgerEntry], error) {
	q = q.Normalize()
	items, total, err := s.ledger.List(ctx, q)
	if err != nil {
		return nil, err
	}
	return model.NewPage(items, total, q), nil
}

// Get returns one ledger entry
func (s *DrinkDollarService) Get(ctx context.Context, id string) (*model.LedgerEntry, error) {
	entry, err := s.ledger.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, ErrLedgerEntryNotFound
	}
	return entry, nil
}

// Append records an entry made by actorID. Debits that would take the
// balance below zero are refused.
func (s *DrinkDollarService) Append(ctx context.Context, actorID string, req *model.CreateLedgerEntryRequest) (*model.LedgerEntry, error) {
	errs := req.Validate()
	if len(errs) == 0 {
		var err error
		if errs, err = checkRefs(ctx, errs, s.users, "user_id", "user does not exist", req.UserID); err != nil {
			return nil, err
		}
	}
	if err := validationError(errs); err != nil {
		return nil, err
	}

	entry, err := s.ledger.Append(ctx, &model.LedgerEntry{
		UserID:    req.UserID,
		Amount:    req.Amount,
		Kind:      req.Kind,
		Reason:    req.Reason,
		Reference: req.Reference,
		CreatedBy: actorID,
	})
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to append ledger entry: %w", err)
	}

	slog.Info("drink dollars recorded",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", entry.UserID),
		slog.Int64("amount", entry.Amount),
		slog.String("kind", string(entry.Kind)),
		slog.String("actor_id", actorID),
	)
	return entry, nil
}

// Balance returns the running total of a user
func (s *DrinkDollarService) Balance(ctx context.Context, userID string) (*model.Balance, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUserNotFound
	}
	return s.ledger.Balance(ctx, userID)
}
