package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	DataPath        string
	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string

	// SpotifyClientID enables the playback integration; empty disables it
	// without affecting gameplay.
	SpotifyClientID    string
	SpotifyRedirectURL string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabaseType:       getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:        getEnv("DB_URL", ""),
		DatabasePath:       getEnv("DB_PATH", "./jeoparty.db"),
		DataPath:           getEnv("DATA_PATH", "./data"),
		StaticFilesPath:    getEnv("STATIC_PATH", "./static"),
		TemplatesPath:      getEnv("TEMPLATES_PATH", "./internal/templates"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		SpotifyClientID:    getEnv("SPOTIFY_CLIENT_ID", ""),
		SpotifyRedirectURL: getEnv("SPOTIFY_REDIRECT_URL", "http://127.0.0.1:8080/auth/spotify/callback"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
