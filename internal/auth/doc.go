// Package auth resolves the caller of an API request.
//
// Authentication happens upstream: a gateway verifies credentials and forwards
// the user's ID in the X-User-ID header. This package trusts that header,
// loads the user and rejects unknown or inactive accounts.
//
// # Usage
//
//	identity := auth.NewMiddleware(userRepo)
//	api := router.Group("/api", identity.Handler())
//	api.PUT("/borrowings/:id/confirm", auth.RequireRole(entities.UserRoleLibrarian, entities.UserRoleAdmin), ...)
//
// Extract the caller in handlers:
//
//	userID := auth.GetUserID(c)
package auth
