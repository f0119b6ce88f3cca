// Package middleware provides HTTP middleware for the back-office API.
//
// Middlewares are plain func(http.Handler) http.Handler values composed
// with Chain. The server wraps the whole mux with:
//
//	RequestID, Logger, Recovery, CORS, Compress, Tracing
//
// and individual routes with Auth followed by RequireStaff or RequireAdmin.
// The sign-in route is additionally wrapped with RateLimit, which keeps a
// token bucket per client IP.
//
// # Context Values
//
// After Auth succeeds handlers can read:
//
//   - GetUserID(ctx): authenticated user record ID
//   - GetRole(ctx): role carried in the access token
//   - GetClaims(ctx): full token claims
//   - GetRequestID(ctx): request identifier set by RequestID
package middleware
