//go:build !prod

package database

// GetDefaultDBPath returns the database path for development mode.
// In dev mode, the cache is stored in the project root for easy access and debugging.
func GetDefaultDBPath() string {
	return "openhands.db"
}

func IsDevelopment() bool {
	return true
}
