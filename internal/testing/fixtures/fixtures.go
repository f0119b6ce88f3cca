package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/forgo/backoffice/internal/database"
	"github.com/forgo/backoffice/internal/model"
	"github.com/forgo/backoffice/internal/repository"
)

// DefaultPassword is the plaintext password of every fixture user
const DefaultPassword = "password123"

// Factory creates test entities in the database
type Factory struct {
	users    *repository.UserRepository
	venues   *repository.VenueRepository
	tags     *repository.TagRepository
	bookings *repository.BookingRepository
	ledger   *repository.LedgerRepository
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{
		users:    repository.NewUserRepository(db),
		venues:   repository.NewVenueRepository(db),
		tags:     repository.NewTagRepository(db),
		bookings: repository.NewBookingRepository(db),
		ledger:   repository.NewLedgerRepository(db),
	}
}

func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email         string
	Password      string
	Role          model.UserRole
	EmailVerified bool
}

// WithEmail sets the user's email
func WithEmail(email string) func(*UserOpts) {
	return func(o *UserOpts) { o.Email = email }
}

// WithRole sets the user's role
func WithRole(role model.UserRole) func(*UserOpts) {
	return func(o *UserOpts) { o.Role = role }
}

// CreateUser creates a user with a unique email and DefaultPassword
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	o := &UserOpts{
		Email:         "user_" + randomID() + "@example.com",
		Password:      DefaultPassword,
		Role:          model.UserRoleUser,
		EmailVerified: true,
	}
	for _, opt := range opts {
		opt(o)
	}

	// MinCost keeps fixture setup fast
	hash, err := bcrypt.GenerateFromPassword([]byte(o.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("fixtures: failed to hash password: %v", err)
	}
	h := string(hash)

	user, err := f.users.Create(ctx(t), &model.User{
		Email:         o.Email,
		Hash:          &h,
		Role:          o.Role,
		EmailVerified: o.EmailVerified,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create user: %v", err)
	}
	return user
}

// CreateAdmin creates an admin user
func (f *Factory) CreateAdmin(t *testing.T) *model.User {
	t.Helper()
	return f.CreateUser(t, WithRole(model.UserRoleAdmin))
}

// CreateManager creates a manager user
func (f *Factory) CreateManager(t *testing.T) *model.User {
	t.Helper()
	return f.CreateUser(t, WithRole(model.UserRoleManager))
}

// ============================================================================
// Catalog Fixtures
// ============================================================================

// CreateTag creates a tag with a unique slug
func (f *Factory) CreateTag(t *testing.T, category model.TagCategory) *model.Tag {
	t.Helper()

	id := randomID()
	tag, err := f.tags.Create(ctx(t), &model.Tag{
		Name:     "Tag " + id,
		Slug:     "tag-" + id,
		Category: category,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create tag: %v", err)
	}
	return tag
}

// VenueOpts customizes venue creation
type VenueOpts struct {
	Name   string
	City   string
	Status model.VenueStatus
	TagIDs []string
}

// WithVenueStatus sets the venue's status
func WithVenueStatus(status model.VenueStatus) func(*VenueOpts) {
	return func(o *VenueOpts) { o.Status = status }
}

// WithVenueTags attaches tags to the venue
func WithVenueTags(ids ...string) func(*VenueOpts) {
	return func(o *VenueOpts) { o.TagIDs = ids }
}

// CreateVenue creates an active venue
func (f *Factory) CreateVenue(t *testing.T, opts ...func(*VenueOpts)) *model.Venue {
	t.Helper()

	o := &VenueOpts{
		Name:   "Venue " + randomID(),
		City:   "Lisbon",
		Status: model.VenueStatusActive,
		TagIDs: []string{},
	}
	for _, opt := range opts {
		opt(o)
	}

	venue, err := f.venues.Create(ctx(t), &model.Venue{
		Name:    o.Name,
		Address: "1 Harbour Street",
		City:    o.City,
		Status:  o.Status,
		TagIDs:  o.TagIDs,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create venue: %v", err)
	}
	return venue
}

// CreateBooking creates a booking at venue starting at the given time
func (f *Factory) CreateBooking(t *testing.T, venue *model.Venue, at time.Time, status model.BookingStatus) *model.Booking {
	t.Helper()

	booking, err := f.bookings.Create(ctx(t), &model.Booking{
		VenueID:     venue.ID,
		GuestName:   "Guest " + randomID(),
		PartySize:   2,
		BookingTime: at.UTC(),
		Status:      status,
	})
	if err != nil {
		t.Fatalf("fixtures: failed to create booking: %v", err)
	}
	return booking
}

// ============================================================================
// Ledger Fixtures
// ============================================================================

// Grant credits amount drink dollars to user
func (f *Factory) Grant(t *testing.T, user *model.User, amount int64) *model.LedgerEntry {
	t.Helper()

	entry, err := f.ledger.Append(ctx(t), &model.LedgerEntry{
		UserID: user.ID,
		Amount: amount,
		Kind:   model.LedgerKindGrant,
		Reason: "fixture grant",
	})
	if err != nil {
		t.Fatalf("fixtures: failed to grant drink dollars: %v", err)
	}
	return entry
}
