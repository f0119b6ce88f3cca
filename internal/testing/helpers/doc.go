// Package helpers holds HTTP and database test utilities.
//
// JWTHelper mints RS256 access tokens for any fixture user, RequestBuilder
// assembles httptest requests, and the Assert helpers check status codes,
// problem+json bodies and record existence:
//
//	jwt := helpers.NewJWTHelper(t)
//	rec := helpers.NewRequest(t, http.MethodGet, "/v1/venues").
//	    WithAuth(jwt, manager).
//	    Do(router)
//	helpers.AssertStatus(t, rec, http.StatusOK)
package helpers
