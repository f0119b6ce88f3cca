package main

import (
	"github.com/forgo/backoffice/internal/config"
	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/middleware"
	"github.com/forgo/backoffice/internal/repository"
	"github.com/forgo/backoffice/internal/service"
	"github.com/forgo/backoffice/internal/storage"
	"github.com/forgo/backoffice/pkg/jwt"
)

// app holds the wired services behind the HTTP routes
type app struct {
	cfg   *config.Config
	db    database.Database
	store *storage.FileStore

	tokenRepo    *repository.TokenRepository
	loginLimiter *middleware.RateLimiter
	maxUpload    int64

	tokens       *service.TokenService
	auth         *service.AuthService
	users        *service.AdminUsersService
	venues       *service.VenueService
	bookings     *service.BookingService
	tags         *service.TagService
	languages    *service.LanguageService
	profiles     *service.ManagerProfileService
	questions    *service.QuestionService
	blogs        *service.BlogService
	redeemItems  *service.RedeemItemService
	drinkDollars *service.DrinkDollarService
	recipes      *service.RecipeService
	dashboard    *service.DashboardService
}

func newApp(cfg *config.Config, db database.Database, jwtService *jwt.Service, store *storage.FileStore) *app {
	// Repositories
	userRepo := repository.NewUserRepository(db)
	tokenRepo := repository.NewTokenRepository(db)
	venueRepo := repository.NewVenueRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	tagRepo := repository.NewTagRepository(db)
	languageRepo := repository.NewLanguageRepository(db)
	profileRepo := repository.NewManagerProfileRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	redeemRepo := repository.NewRedeemItemRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)

	uploader := storage.NewUploader(cfg.Storage.MaxUploadSize, cfg.Storage.AllowedTypes)
	images := func(bucket string) service.Images {
		return service.Images{Store: store, Uploader: uploader, Bucket: bucket}
	}

	// Services
	tokenService := service.NewTokenService(service.TokenServiceConfig{
		JWTService:      jwtService,
		TokenRepo:       tokenRepo,
		RefreshDuration: cfg.JWT.RefreshTTL,
	})

	return &app{
		cfg:       cfg,
		db:        db,
		store:     store,
		tokenRepo: tokenRepo,
		loginLimiter: middleware.NewRateLimiter(middleware.RateLimitConfig{
			PerMinute: cfg.Auth.LoginPerMinute,
			Burst:     cfg.Auth.LoginBurst,
		}),
		maxUpload: uploader.MaxSize(),

		tokens: tokenService,
		auth: service.NewAuthService(service.AuthServiceConfig{
			UserRepo:     userRepo,
			TokenService: tokenService,
		}),
		users: service.NewAdminUsersService(service.AdminUsersServiceConfig{
			UserRepo:    userRepo,
			ProfileRepo: profileRepo,
			Balances:    ledgerRepo,
			Tokens:      tokenRepo,
			Avatars:     images(storage.BucketAvatars),
		}),
		venues: service.NewVenueService(service.VenueServiceConfig{
			Venues:   venueRepo,
			Tags:     tagRepo,
			Bookings: bookingRepo,
			Images:   images(storage.BucketVenues),
		}),
		bookings:  service.NewBookingService(bookingRepo, venueRepo, userRepo),
		tags:      service.NewTagService(tagRepo),
		languages: service.NewLanguageService(languageRepo),
		profiles: service.NewManagerProfileService(service.ManagerProfileServiceConfig{
			Profiles: profileRepo,
			Users:    userRepo,
			Venues:   venueRepo,
			Avatars:  images(storage.BucketAvatars),
		}),
		questions:    service.NewQuestionService(questionRepo),
		blogs:        service.NewBlogService(blogRepo, tagRepo, images(storage.BucketBlogs)),
		redeemItems:  service.NewRedeemItemService(redeemRepo, venueRepo, images(storage.BucketRedeemItems)),
		drinkDollars: service.NewDrinkDollarService(ledgerRepo, userRepo),
		recipes: service.NewRecipeService(service.RecipeServiceConfig{
			Recipes: recipeRepo,
			Tags:    tagRepo,
			Venues:  venueRepo,
			Images:  images(storage.BucketRecipes),
		}),
		dashboard: service.NewDashboardService(map[string]service.Counter{
			"venues":           venueRepo,
			"bookings":         bookingRepo,
			"users":            userRepo,
			"tags":             tagRepo,
			"languages":        languageRepo,
			"manager_profiles": profileRepo,
			"questions":        questionRepo,
			"blogs":            blogRepo,
			"redeem_items":     redeemRepo,
			"recipes":          recipeRepo,
			"drink_dollars":    ledgerRepo,
		}, bookingRepo),
	}
}

func (a *app) close() {
	a.loginLimiter.Stop()
}
