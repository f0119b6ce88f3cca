// Package jwt signs and validates the back office's RS256 access tokens.
//
// Tokens are built with golang-jwt. The subject is the user's record id and
// the role claim decides what the bearer may do:
//
//	svc, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    Issuer:         "backoffice.forgo.software",
//	    ExpirationMins: 60,
//	})
//
//	token, err := svc.Sign(jwt.Claims{
//	    RegisteredClaims: gojwt.RegisteredClaims{Subject: "user:abc"},
//	    Role:             jwt.RoleAdmin,
//	})
//
//	claims, err := svc.Validate(token)
//
// Validation errors collapse to ErrTokenExpired, ErrTokenNotYetValid,
// ErrInvalidSignature or ErrInvalidToken.
package jwt
