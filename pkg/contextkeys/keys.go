package contextkeys

type contextKey string

const (
	StaffIDKey   contextKey = "StaffID"
	StaffRoleKey contextKey = "StaffRole"
	RequestIDKey contextKey = "RequestID"
)
