package handler

import (
	"context"
	"net/http"

	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/model"
)

// BlogService is the blog surface; Create takes the author from the session
type BlogService interface {
	List(ctx context.Context, q model.ListQuery) (*model.Page[model.Blog], error)
	Get(ctx context.Context, id string) (*model.Blog, error)
	Create(ctx context.Context, authorID string, req *model.CreateBlogRequest) (*model.Blog, error)
	Update(ctx context.Context, id string, req *model.UpdateBlogRequest) (*model.Blog, error)
	Delete(ctx context.Context, id string) error
}

// blogResource fills in the author of new posts from the caller
type blogResource struct {
	BlogService
}

func (b blogResource) Create(ctx context.Context, req *model.CreateBlogRequest) (*model.Blog, error) {
	return b.BlogService.Create(ctx, middleware.GetUserID(ctx), req)
}

// NewBlogHandler creates the blog CRUD handler
func NewBlogHandler(blogs BlogService) *ResourceHandler[model.Blog, model.CreateBlogRequest, model.UpdateBlogRequest] {
	return NewResourceHandler[model.Blog, model.CreateBlogRequest, model.UpdateBlogRequest]("blogs", blogResource{blogs})
}

// QuestionReorderer persists a new question order
type QuestionReorderer interface {
	Reorder(ctx context.Context, req *model.ReorderQuestionsRequest) error
}

// ReorderQuestions handles POST /v1/questions/reorder
func ReorderQuestions(questions QuestionReorderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.ReorderQuestionsRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if err := questions.Reorder(r.Context(), &req); err != nil {
			WriteServiceError(w, err, "reorder questions")
			return
		}

		WriteNoContent(w)
	}
}
