package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port       string
	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string
	JWTSecret  string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string

	// ModelEndpoint is the chat-completion endpoint agents are run against.
	ModelEndpoint string

	// PackagesFile points at the packages.yaml registry file.
	PackagesFile string
}

func LoadConfig() Config {
	// .env is optional, system environment wins when absent
	_ = godotenv.Load()

	return Config{
		Port:           getEnv("PORT", "8000"),
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBHost:         getEnv("DB_HOST", ""),
		DBPort:         getEnv("DB_PORT", ""),
		DBName:         getEnv("DB_NAME", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "johan-attachments"),
		ModelEndpoint:  getEnv("MODEL_ENDPOINT", "http://localhost:11434/api/chat"),
		PackagesFile:   getEnv("PACKAGES_FILE", "packages.yaml"),
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}

// Packages is the packages.yaml registry file: which installed packages the
// host activates at startup, and where external package directories live.
type Packages struct {
	Dir     string   `yaml:"packages_dir"`
	Enabled []string `yaml:"enabled"`
}

func LoadPackages(path string) (Packages, error) {
	var p Packages
	data, err := os.ReadFile(path)
	if err != nil {
		return p, fmt.Errorf("failed to read packages file: %w", err)
	}
	if err := yaml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("failed to parse packages file: %w", err)
	}
	return p, nil
}
