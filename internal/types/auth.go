package types

// AuthProvider identifies the backend that verifies credentials and issues
// tokens.
type AuthProvider string

const (
	AuthProviderLocal    AuthProvider = "local"
	AuthProviderSupabase AuthProvider = "supabase"
)
