package handler

import (
	"context"
	"net/http"

	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/model"
)

// LedgerService is the drink-dollar ledger surface
type LedgerService interface {
	List(ctx context.Context, q model.ListQuery) (*model.Page[model.LedgerEntry], error)
	Get(ctx context.Context, id string) (*model.LedgerEntry, error)
	Append(ctx context.Context, actorID string, req *model.CreateLedgerEntryRequest) (*model.LedgerEntry, error)
	Balance(ctx context.Context, userID string) (*model.Balance, error)
}

// DrinkDollarHandler serves the append-only ledger
type DrinkDollarHandler struct {
	ledger LedgerService
}

// NewDrinkDollarHandler creates a ledger handler
func NewDrinkDollarHandler(ledger LedgerService) *DrinkDollarHandler {
	return &DrinkDollarHandler{ledger: ledger}
}

// List handles GET /v1/drink-dollars
func (h *DrinkDollarHandler) List(w http.ResponseWriter, r *http.Request) {
	q, problem := ParseListQuery(r)
	if problem != nil {
		WriteError(w, problem)
		return
	}

	page, err := h.ledger.List(r.Context(), q)
	if err != nil {
		WriteServiceError(w, err, "list ledger entries")
		return
	}

	WriteData(w, http.StatusOK, page, nil)
}

// Get handles GET /v1/drink-dollars/{id}
func (h *DrinkDollarHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	entry, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, err, "get ledger entry")
		return
	}

	WriteData(w, http.StatusOK, entry, nil)
}

// Create handles POST /v1/drink-dollars. Corrections are new entries;
// there is no update or delete route.
func (h *DrinkDollarHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateLedgerEntryRequest
	if !decodeBody(w, r, &req) {
		return
	}

	entry, err := h.ledger.Append(r.Context(), middleware.GetUserID(r.Context()), &req)
	if err != nil {
		WriteServiceError(w, err, "create ledger entry")
		return
	}

	WriteData(w, http.StatusCreated, entry, map[string]string{
		"balance": "/v1/drink-dollars/balances/" + entry.UserID,
	})
}

// Balance handles GET /v1/drink-dollars/balances/{userId}
func (h *DrinkDollarHandler) Balance(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}

	balance, err := h.ledger.Balance(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err, "get balance")
		return
	}

	WriteData(w, http.StatusOK, balance, nil)
}
