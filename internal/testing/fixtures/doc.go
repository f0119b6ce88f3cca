// Package fixtures creates back-office rows for integration tests.
//
// A Factory writes through the real repositories, so fixtures go through the
// same encoding and indexes as production writes:
//
//	f := fixtures.New(tdb.DB)
//	admin := f.CreateAdmin(t)
//	venue := f.CreateVenue(t, fixtures.WithVenueStatus(model.VenueStatusDraft))
//	f.CreateBooking(t, venue, time.Now().Add(time.Hour), model.BookingStatusPending)
//	f.Grant(t, admin, 500)
//
// Users get unique emails and DefaultPassword hashed at bcrypt.MinCost.
package fixtures
