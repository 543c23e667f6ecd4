package constant

type contextKey string

// UserIDKey carries the authenticated user id through request contexts.
const UserIDKey contextKey = "user_id"

type UserType string

const (
	UserTypeCustomer UserType = "customer"
	UserTypeVendor   UserType = "vendor"
)

// PlaceholderPhonePrefix marks synthetic phone values generated for social
// signups without a provider-supplied phone. Prefix (2) + 13 hex chars = 15.
const (
	PlaceholderPhonePrefix = "g_"
	PlaceholderPhoneLen    = 15
)

// TokenKeyLen is the length of an opaque bearer token key in hex characters.
const TokenKeyLen = 40
