package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
	"github.com/forgo/backoffice/internal/testing/fixtures"
	"github.com/forgo/backoffice/internal/testing/helpers"
	"github.com/forgo/backoffice/internal/testing/testdb"
)

// These tests run against a live SurrealDB and skip when none is reachable.

func TestIntegration_UserEmailIsUnique(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	user := f.CreateUser(t)

	_, err := repository.NewUserRepository(tdb.DB).Create(tdb.Ctx(), &model.User{Email: user.Email})
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestIntegration_TagDeleteDetachesFromVenues(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	tag := f.CreateTag(t, model.TagCategoryVenue)
	venue := f.CreateVenue(t, fixtures.WithVenueTags(tag.ID))

	deleted, err := repository.NewTagRepository(tdb.DB).Delete(tdb.Ctx(), tag.ID)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	helpers.AssertRecordNotExists(t, tdb.DB, tag.ID)

	got, err := repository.NewVenueRepository(tdb.DB).Get(tdb.Ctx(), venue.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotContains(t, got.TagIDs, tag.ID)
}

func TestIntegration_VenueListSearchAndTotal(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	f.CreateVenue(t, func(o *fixtures.VenueOpts) { o.Name = "Harbor Lounge" })
	f.CreateVenue(t, func(o *fixtures.VenueOpts) { o.Name = "Harbor Deck" })
	f.CreateVenue(t, func(o *fixtures.VenueOpts) { o.Name = "Rooftop" })

	q := model.ListQuery{Search: "harbor", PageSize: 1}.Normalize()
	items, total, err := repository.NewVenueRepository(tdb.DB).List(tdb.Ctx(), q)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 1)
}

func TestIntegration_CountOpenBookingsForVenue(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	venue := f.CreateVenue(t)
	at := time.Now().Add(24 * time.Hour)
	f.CreateBooking(t, venue, at, model.BookingStatusPending)
	f.CreateBooking(t, venue, at, model.BookingStatusConfirmed)
	f.CreateBooking(t, venue, at, model.BookingStatusCancelled)

	n, err := repository.NewBookingRepository(tdb.DB).CountOpenForVenue(tdb.Ctx(), venue.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIntegration_LedgerRejectsOverdraw(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	user := f.CreateUser(t)
	f.Grant(t, user, 500)

	ledger := repository.NewLedgerRepository(tdb.DB)
	_, err := ledger.Append(tdb.Ctx(), &model.LedgerEntry{
		UserID: user.ID,
		Amount: -600,
		Kind:   model.LedgerKindRedeem,
		Reason: "too much",
	})
	assert.True(t, errors.Is(err, repository.ErrInsufficientBalance), "got %v", err)

	_, err = ledger.Append(tdb.Ctx(), &model.LedgerEntry{
		UserID: user.ID,
		Amount: -200,
		Kind:   model.LedgerKindRedeem,
		Reason: "cocktail",
	})
	require.NoError(t, err)

	balance, err := ledger.Balance(tdb.Ctx(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(300), balance.Balance)
	assert.Equal(t, 2, balance.Entries)
}

func TestIntegration_DeleteStaleTokens(t *testing.T) {
	tdb := testdb.New(t)
	defer tdb.Close()

	f := fixtures.New(tdb.DB)
	user := f.CreateUser(t)
	tokens := repository.NewTokenRepository(tdb.DB)
	ctx := context.Background()

	live := &model.RefreshToken{UserID: user.ID, TokenHash: "live", ExpiresOn: time.Now().Add(time.Hour)}
	expired := &model.RefreshToken{UserID: user.ID, TokenHash: "expired", ExpiresOn: time.Now().Add(-time.Hour)}
	revoked := &model.RefreshToken{UserID: user.ID, TokenHash: "revoked", ExpiresOn: time.Now().Add(time.Hour)}
	for _, tok := range []*model.RefreshToken{live, expired, revoked} {
		require.NoError(t, tokens.Create(ctx, tok))
	}
	_, err := tokens.Revoke(ctx, revoked.ID)
	require.NoError(t, err)

	// A cutoff in the past keeps the freshly revoked token for reuse detection
	n, err := tokens.DeleteStale(ctx, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	helpers.AssertRecordExists(t, tdb.DB, revoked.ID)

	n, err = tokens.DeleteStale(ctx, time.Now().Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	helpers.AssertRecordExists(t, tdb.DB, live.ID)
	helpers.AssertRecordNotExists(t, tdb.DB, revoked.ID)
}
