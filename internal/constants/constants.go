package constants

// Session
const (
	SessionCookieName = "todo_session"
	ContextKeyUserID  = "user_id"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Auth
const (
	MinPasswordLength = 8
)
