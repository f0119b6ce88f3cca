// Package handler provides HTTP request handlers for the back-office API.
//
// Handlers decode requests, call a service through a narrow interface and
// write the result. Most entities share ResourceHandler, a generic CRUD
// handler over a ResourceService; accounts, blogs and the drink-dollar
// ledger have their own handlers because their operations take the caller
// from the session.
//
// # Response Format
//
//   - WriteData: {"data": ..., "_links": {...}} envelope for single results and pages
//   - WriteError: RFC 9457 Problem Details (application/problem+json)
//   - WriteServiceError: MapServiceError plus logging of unexpected failures
//
// List endpoints read page, page_size, search, sort_by, sort_dir and filter
// with ParseListQuery and return a model.Page.
//
// # Example Usage
//
//	venues := handler.NewResourceHandler[model.Venue, model.CreateVenueRequest, model.UpdateVenueRequest]("venues", venueService)
//	mux.Handle("GET /v1/venues", staff(venues.List))
//	mux.Handle("POST /v1/venues/{id}/image", admin(handler.UploadImage("venues", maxSize, venueService.SetImage)))
package handler
