package repository

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
)

// TokenRepository handles refresh token data access. Tokens are looked up
// by the SHA-256 of their value; the value itself is never stored.
type TokenRepository struct {
	db database.Database
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(db database.Database) *TokenRepository {
	return &TokenRepository{db: db}
}

// Create stores a new refresh token
func (r *TokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	query := `
		CREATE refresh_token CONTENT {
			user_id: $user_id,
			token_hash: $token_hash,
			expires_on: <datetime> $expires_on,
			created_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user_id":    token.UserID,
		"token_hash": token.TokenHash,
		"expires_on": formatTime(token.ExpiresOn),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := firstRecord[model.RefreshToken](result)
	if err != nil {
		return err
	}
	if created == nil {
		return errors.New("no result returned")
	}

	token.ID = created.ID
	token.CreatedOn = created.CreatedOn
	return nil
}

// GetByHash retrieves a refresh token by its hash
func (r *TokenRepository) GetByHash(ctx context.Context, hash string) (*model.RefreshToken, error) {
	query := `SELECT * FROM refresh_token WHERE token_hash = $hash LIMIT 1`
	vars := map[string]interface{}{"hash": hash}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	token, err := firstRecord[model.RefreshToken](result)
	if err != nil || token == nil {
		return nil, err
	}
	token.TokenHash = hash
	return token, nil
}

// Revoke marks one token as revoked. It reports false when the token was
// already revoked, so two concurrent refreshes cannot both succeed.
func (r *TokenRepository) Revoke(ctx context.Context, id string) (bool, error) {
	query := `UPDATE type::record($id) SET revoked_on = time::now() WHERE revoked_on = NONE RETURN AFTER`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"id": id})
	if err != nil {
		return false, err
	}
	return len(database.StatementRecords(result, 0)) > 0, nil
}

// RevokeAllForUser revokes every active refresh token of a user
func (r *TokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	query := `UPDATE refresh_token SET revoked_on = time::now() WHERE user_id = $user_id AND revoked_on = NONE`
	return r.db.Execute(ctx, query, map[string]interface{}{"user_id": userID})
}

// DeleteStale removes expired tokens and tokens revoked before cutoff.
// It returns how many rows were deleted.
func (r *TokenRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int, error) {
	query := `
		DELETE refresh_token
		WHERE expires_on < time::now()
			OR (revoked_on != NONE AND revoked_on < <datetime> $cutoff)
		RETURN BEFORE
	`
	result, err := r.db.Query(ctx, query, map[string]interface{}{"cutoff": formatTime(cutoff)})
	if err != nil {
		return 0, err
	}
	return len(database.StatementRecords(result, 0)), nil
}
