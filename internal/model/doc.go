// Package model defines the entities and request types of the back-office API.
//
// Each managed table has an entity struct (Venue, Booking, Tag, ...) plus
// Create and Update request types. Update requests use pointer fields so a
// PATCH only touches what the client sent. Validate methods return
// []FieldError, which services wrap with NewValidationError.
//
// # Record IDs
//
// References between rows are stored as SurrealDB record id strings such as
// "venue:abc". IsRecordID checks the table prefix.
//
// # Errors
//
// RFC 9457 Problem Details are defined in errors.go and written by handlers
// as application/problem+json.
package model
