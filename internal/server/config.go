// Package server implements the map-processing backend: map CRUD, the
// occupancy raster endpoint, and the smooth/mask region edits the editor
// sends against it.
package server

import (
	"os"
	"strconv"
)

// Config holds server settings, loaded from the environment with
// fallbacks.
type Config struct {
	Port         string
	DBPath       string
	ReadTimeout  int
	WriteTimeout int
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		Port:         getEnv("PORT", "3000"),
		DBPath:       getEnv("MAPS_DB_PATH", "data/maps.db"),
		ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
		WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
