package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/service"
)

type mockLedgerService struct {
	appendFunc  func(ctx context.Context, actorID string, req *model.CreateLedgerEntryRequest) (*model.LedgerEntry, error)
	balanceFunc func(ctx context.Context, userID string) (*model.Balance, error)
}

func (m *mockLedgerService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.LedgerEntry], error) {
	return model.NewPage[model.LedgerEntry](nil, 0, q), nil
}

func (m *mockLedgerService) Get(ctx context.Context, id string) (*model.LedgerEntry, error) {
	return nil, service.ErrLedgerEntryNotFound
}

func (m *mockLedgerService) Append(ctx context.Context, actorID string, req *model.CreateLedgerEntryRequest) (*model.LedgerEntry, error) {
	return m.appendFunc(ctx, actorID, req)
}

func (m *mockLedgerService) Balance(ctx context.Context, userID string) (*model.Balance, error) {
	return m.balanceFunc(ctx, userID)
}

func ledgerRoutes(svc *mockLedgerService) *http.ServeMux {
	h := NewDrinkDollarHandler(svc)
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/drink-dollars", h.List)
	mux.HandleFunc("POST /v1/drink-dollars", h.Create)
	mux.HandleFunc("GET /v1/drink-dollars/{id}", h.Get)
	mux.HandleFunc("GET /v1/drink-dollars/balances/{userId}", h.Balance)
	return mux
}

func TestDrinkDollars_Create_RecordsActor(t *testing.T) {
	t.Parallel()

	var actor string
	mux := ledgerRoutes(&mockLedgerService{
		appendFunc: func(ctx context.Context, actorID string, req *model.CreateLedgerEntryRequest) (*model.LedgerEntry, error) {
			actor = actorID
			return &model.LedgerEntry{ID: "drink_dollar:1", UserID: req.UserID, Amount: req.Amount, Kind: req.Kind, CreatedBy: actorID}, nil
		},
	})

	req := withUserContext(makeJSONRequest(http.MethodPost, "/v1/drink-dollars", map[string]any{
		"user_id": "user:9", "amount": 500, "kind": "grant", "reason": "birthday",
	}), "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "user:admin", actor)
	assert.Contains(t, rr.Body.String(), "/v1/drink-dollars/balances/user:9")
}

func TestDrinkDollars_Overdraw_ReturnsUnprocessable(t *testing.T) {
	t.Parallel()

	mux := ledgerRoutes(&mockLedgerService{
		appendFunc: func(ctx context.Context, actorID string, req *model.CreateLedgerEntryRequest) (*model.LedgerEntry, error) {
			return nil, service.ErrInsufficientBalance
		},
	})

	req := withUserContext(makeJSONRequest(http.MethodPost, "/v1/drink-dollars", map[string]any{
		"user_id": "user:9", "amount": -10000, "kind": "redeem", "reason": "bottle",
	}), "user:admin")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestDrinkDollars_Balance(t *testing.T) {
	t.Parallel()

	mux := ledgerRoutes(&mockLedgerService{
		balanceFunc: func(ctx context.Context, userID string) (*model.Balance, error) {
			return &model.Balance{UserID: userID, Balance: 750, Entries: 3}, nil
		},
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/drink-dollars/balances/user:9", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var b model.Balance
	parseData(t, rr.Body.Bytes(), &b)
	assert.Equal(t, model.Balance{UserID: "user:9", Balance: 750, Entries: 3}, b)
}

func TestDrinkDollars_GetMissing(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	ledgerRoutes(&mockLedgerService{}).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/drink-dollars/drink_dollar:x", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// ============================================================================
// Blog author and question reorder
// ============================================================================

type mockBlogService struct {
	createFunc func(ctx context.Context, authorID string, req *model.CreateBlogRequest) (*model.Blog, error)
}

func (m *mockBlogService) List(ctx context.Context, q model.ListQuery) (*model.Page[model.Blog], error) {
	return model.NewPage[model.Blog](nil, 0, q), nil
}

func (m *mockBlogService) Get(ctx context.Context, id string) (*model.Blog, error) {
	return &model.Blog{ID: id}, nil
}

func (m *mockBlogService) Create(ctx context.Context, authorID string, req *model.CreateBlogRequest) (*model.Blog, error) {
	return m.createFunc(ctx, authorID, req)
}

func (m *mockBlogService) Update(ctx context.Context, id string, req *model.UpdateBlogRequest) (*model.Blog, error) {
	return &model.Blog{ID: id}, nil
}

func (m *mockBlogService) Delete(ctx context.Context, id string) error { return nil }

func TestBlogCreate_AuthorFromSession(t *testing.T) {
	t.Parallel()

	var author string
	h := NewBlogHandler(&mockBlogService{
		createFunc: func(ctx context.Context, authorID string, req *model.CreateBlogRequest) (*model.Blog, error) {
			author = authorID
			return &model.Blog{ID: "blog:1", Title: req.Title}, nil
		},
	})

	req := withUserContext(makeJSONRequest(http.MethodPost, "/v1/blogs", map[string]string{"title": "Summer menu"}), "user:editor")
	rr := httptest.NewRecorder()
	h.Create(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "user:editor", author)
}

type reorderFunc func(ctx context.Context, req *model.ReorderQuestionsRequest) error

func (f reorderFunc) Reorder(ctx context.Context, req *model.ReorderQuestionsRequest) error {
	return f(ctx, req)
}

func TestReorderQuestions(t *testing.T) {
	t.Parallel()

	var got []string
	h := ReorderQuestions(reorderFunc(func(ctx context.Context, req *model.ReorderQuestionsRequest) error {
		got = req.IDs
		return nil
	}))

	rr := httptest.NewRecorder()
	h(rr, makeJSONRequest(http.MethodPost, "/v1/questions/reorder", map[string][]string{
		"ids": {"question:b", "question:a"},
	}))

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []string{"question:b", "question:a"}, got)
}
