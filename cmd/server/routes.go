package main

import (
	"net/http"

	"github.com/forgo/backoffice/internal/handler"
	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/model"
)

// gate wraps a handler with the middleware that guards a route
type gate func(http.HandlerFunc) http.Handler

// routes builds the full handler tree, global middleware included
func (a *app) routes() http.Handler {
	mux := http.NewServeMux()

	authn := middleware.Auth(a.tokens)
	signedIn := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authn)
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authn, middleware.RequireStaff())
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, authn, middleware.RequireAdmin())
	}

	// Health and public objects
	mux.Handle("GET /health", handler.Health(a.db))
	mux.Handle("GET /storage/{bucket}/{key...}", handler.ServeStorage(a.store))

	// Auth endpoints
	authHandler := handler.NewAuthHandler(a.auth)
	mux.Handle("POST /v1/auth/login", middleware.Chain(http.HandlerFunc(authHandler.Login), middleware.RateLimit(a.loginLimiter)))
	mux.HandleFunc("POST /v1/auth/refresh", authHandler.Refresh)
	mux.Handle("POST /v1/auth/logout", signedIn(authHandler.Logout))
	mux.Handle("GET /v1/auth/session", signedIn(authHandler.Session))

	mux.Handle("GET /v1/dashboard", staff(handler.Dashboard(a.dashboard)))

	// Catalog: staff read, admin write
	registerResource(mux, "/v1/venues", handler.NewResourceHandler[model.Venue, model.CreateVenueRequest, model.UpdateVenueRequest]("venues", a.venues), staff, admin, admin)
	registerResource(mux, "/v1/tags", handler.NewResourceHandler[model.Tag, model.CreateTagRequest, model.UpdateTagRequest]("tags", a.tags), staff, admin, admin)
	registerResource(mux, "/v1/languages", handler.NewResourceHandler[model.Language, model.CreateLanguageRequest, model.UpdateLanguageRequest]("languages", a.languages), staff, admin, admin)
	registerResource(mux, "/v1/questions", handler.NewResourceHandler[model.Question, model.CreateQuestionRequest, model.UpdateQuestionRequest]("questions", a.questions), staff, admin, admin)
	registerResource(mux, "/v1/blogs", handler.NewBlogHandler(a.blogs), staff, admin, admin)
	registerResource(mux, "/v1/redeem-items", handler.NewResourceHandler[model.RedeemItem, model.CreateRedeemItemRequest, model.UpdateRedeemItemRequest]("redeem items", a.redeemItems), staff, admin, admin)
	registerResource(mux, "/v1/recipes", handler.NewResourceHandler[model.Recipe, model.CreateRecipeRequest, model.UpdateRecipeRequest]("recipes", a.recipes), staff, admin, admin)
	registerResource(mux, "/v1/manager-profiles", handler.NewResourceHandler[model.ManagerProfile, model.CreateManagerProfileRequest, model.UpdateManagerProfileRequest]("manager profiles", a.profiles), staff, admin, admin)

	// Bookings are handled day to day by venue staff
	registerResource(mux, "/v1/bookings", handler.NewResourceHandler[model.Booking, model.CreateBookingRequest, model.UpdateBookingRequest]("bookings", a.bookings), staff, staff, admin)

	mux.Handle("POST /v1/questions/reorder", admin(handler.ReorderQuestions(a.questions)))

	// Uploads follow the permissions of the entity update
	mux.Handle("POST /v1/venues/{id}/image", admin(handler.UploadImage[model.Venue]("venue image", a.maxUpload, a.venues.SetImage)))
	mux.Handle("DELETE /v1/venues/{id}/image", admin(handler.RemoveImage[model.Venue]("venue image", a.venues.RemoveImage)))
	mux.Handle("POST /v1/redeem-items/{id}/image", admin(handler.UploadImage[model.RedeemItem]("redeem item image", a.maxUpload, a.redeemItems.SetImage)))
	mux.Handle("DELETE /v1/redeem-items/{id}/image", admin(handler.RemoveImage[model.RedeemItem]("redeem item image", a.redeemItems.RemoveImage)))
	mux.Handle("POST /v1/recipes/{id}/image", admin(handler.UploadImage[model.Recipe]("recipe image", a.maxUpload, a.recipes.SetImage)))
	mux.Handle("DELETE /v1/recipes/{id}/image", admin(handler.RemoveImage[model.Recipe]("recipe image", a.recipes.RemoveImage)))
	mux.Handle("POST /v1/manager-profiles/{id}/avatar", admin(handler.UploadImage[model.ManagerProfile]("avatar", a.maxUpload, a.profiles.SetAvatar)))
	mux.Handle("DELETE /v1/manager-profiles/{id}/avatar", admin(handler.RemoveImage[model.ManagerProfile]("avatar", a.profiles.RemoveAvatar)))
	mux.Handle("POST /v1/blogs/{id}/cover", admin(handler.UploadImage[model.Blog]("blog cover", a.maxUpload, a.blogs.SetCover)))
	mux.Handle("DELETE /v1/blogs/{id}/cover", admin(handler.RemoveImage[model.Blog]("blog cover", a.blogs.RemoveCover)))

	// Account management - admin only
	usersHandler := handler.NewAdminUsersHandler(a.users)
	mux.Handle("GET /v1/users", admin(usersHandler.List))
	mux.Handle("POST /v1/users", admin(usersHandler.Create))
	mux.Handle("GET /v1/users/{id}", admin(usersHandler.Get))
	mux.Handle("PATCH /v1/users/{id}", admin(usersHandler.Update))
	mux.Handle("PATCH /v1/users/{id}/role", admin(usersHandler.UpdateRole))
	mux.Handle("DELETE /v1/users/{id}", admin(usersHandler.Delete))

	// Drink-dollar ledger: append only
	ledgerHandler := handler.NewDrinkDollarHandler(a.drinkDollars)
	mux.Handle("GET /v1/drink-dollars", staff(ledgerHandler.List))
	mux.Handle("POST /v1/drink-dollars", admin(ledgerHandler.Create))
	mux.Handle("GET /v1/drink-dollars/{id}", staff(ledgerHandler.Get))
	mux.Handle("GET /v1/drink-dollars/balances/{userId}", staff(ledgerHandler.Balance))

	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(a.cfg.Server.AllowedOrigins),
		middleware.Compress,
		middleware.Tracing,
	)
}

// registerResource mounts list, get, create, update and delete for one
// collection. read guards GET, write guards POST and PATCH, remove guards DELETE.
func registerResource[T, C, U any](mux *http.ServeMux, base string, h *handler.ResourceHandler[T, C, U], read, write, remove gate) {
	mux.Handle("GET "+base, read(h.List))
	mux.Handle("POST "+base, write(h.Create))
	mux.Handle("GET "+base+"/{id}", read(h.Get))
	mux.Handle("PATCH "+base+"/{id}", write(h.Update))
	mux.Handle("DELETE "+base+"/{id}", remove(h.Delete))
}
