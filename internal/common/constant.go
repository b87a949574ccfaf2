package common

const (
	// AuthorizationHeaderName carries the bearer credential.
	AuthorizationHeaderName = "Authorization"
	// BearerPrefix precedes the token inside the Authorization header.
	BearerPrefix = "Bearer "
)

// Roles an account can hold.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)
