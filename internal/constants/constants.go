package constants

const (
	// ContextKeyUserID is the gin context and session key holding the authenticated user ID
	ContextKeyUserID = "user_id"

	// ContextKeyRequestID is the gin context key holding the request ID
	ContextKeyRequestID = "request_id"

	// SessionCookieName is the name of the session cookie
	SessionCookieName = "playhub_session"

	// MinPasswordLength is the minimum accepted password length on signup
	MinPasswordLength = 5

	// Pagination bounds for catalogue listings
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HumanTimestampLayout renders timestamps for display at the API boundary
	HumanTimestampLayout = "1/2/2006, 3:04:05 PM"
)
