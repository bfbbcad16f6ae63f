package pkg

import "os"

// Getenv returns the value of the environment variable key, or defaultValue if it isn't set.
// An empty but set variable is returned as is.
func Getenv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}
