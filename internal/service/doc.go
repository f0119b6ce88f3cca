// Package service implements the back-office business rules.
//
// Services validate requests, check references between records and map
// storage results onto the sentinel errors in errors.go. Each service
// declares the narrow repository interface it needs, so tests substitute
// function-field fakes for the SurrealDB repositories.
//
// Entity services share the generic helpers in crud.go: Store for table
// access, listPage and getOr for reads, and Images for the storage bucket
// an entity keeps its picture in.
//
//	venues := NewVenueService(VenueServiceConfig{
//	    Venues:   venueRepo,
//	    Tags:     tagRepo,
//	    Bookings: bookingRepo,
//	    Images:   Images{Store: files, Uploader: uploader, Bucket: storage.BucketVenues},
//	})
//	page, err := venues.List(ctx, model.ListQuery{Search: "harbour"})
package service
