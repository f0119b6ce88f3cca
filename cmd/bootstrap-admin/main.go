package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/forgo/backoffice/internal/config"
	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
	"github.com/forgo/backoffice/internal/service"
)

// adminStore is the user storage the bootstrap needs
type adminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) (*model.User, error)
	SetRole(ctx context.Context, userID string, role model.UserRole) (*model.User, error)
	UpdatePassword(ctx context.Context, userID, hash string) error
}

func main() {
	_ = godotenv.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	email := flag.String("email", "", "Admin email (required)")
	password := flag.String("password", "", "Admin password; defaults to $BOOTSTRAP_ADMIN_PASSWORD")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("BOOTSTRAP_ADMIN_PASSWORD")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db := database.NewSurrealDB(database.Config{
		Scheme:    cfg.Database.Scheme,
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	user, created, err := bootstrap(ctx, repository.NewUserRepository(db), *email, *password)
	if err != nil {
		slog.Error("bootstrap failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if created {
		fmt.Printf("Created admin %s (%s)\n", user.Email, user.ID)
	} else {
		fmt.Printf("Promoted %s (%s) to admin\n", user.Email, user.ID)
	}
}

// bootstrap creates an admin account for email, or promotes the existing
// account. An existing account keeps its password unless one is given.
func bootstrap(ctx context.Context, users adminStore, email, password string) (*model.User, bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !model.IsValidEmail(email) {
		return nil, false, fmt.Errorf("invalid email %q", email)
	}

	existing, err := users.GetByEmail(ctx, email)
	if err != nil {
		return nil, false, fmt.Errorf("look up user: %w", err)
	}

	if existing == nil {
		req := model.CreateUserRequest{Email: email, Password: password, Role: model.UserRoleAdmin}
		if errs := req.Validate(); len(errs) > 0 {
			return nil, false, fieldErrors(errs)
		}
		hash, err := service.HashPassword(password)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		user, err := users.Create(ctx, &model.User{
			Email:         email,
			Hash:          &hash,
			Role:          model.UserRoleAdmin,
			EmailVerified: true,
		})
		if err != nil {
			return nil, false, fmt.Errorf("create admin: %w", err)
		}
		return user, true, nil
	}

	if password != "" {
		if len(password) < model.MinPasswordLength || len(password) > model.MaxPasswordLength {
			return nil, false, fmt.Errorf("password must be %d to %d characters", model.MinPasswordLength, model.MaxPasswordLength)
		}
		hash, err := service.HashPassword(password)
		if err != nil {
			return nil, false, fmt.Errorf("hash password: %w", err)
		}
		if err := users.UpdatePassword(ctx, existing.ID, hash); err != nil {
			return nil, false, fmt.Errorf("update password: %w", err)
		}
	}

	if existing.Role == model.UserRoleAdmin {
		return existing, false, nil
	}
	user, err := users.SetRole(ctx, existing.ID, model.UserRoleAdmin)
	if err != nil {
		return nil, false, fmt.Errorf("promote user: %w", err)
	}
	return user, false, nil
}

func fieldErrors(errs []model.FieldError) error {
	joined := make([]error, len(errs))
	for i, fe := range errs {
		joined[i] = fmt.Errorf("%s: %s", fe.Field, fe.Message)
	}
	return errors.Join(joined...)
}
