package config

import (
	"errors"
	"os"
	"time"
)

type Config struct {
	Env  string
	Port string

	MongoURI string
	MongoDB  string

	JWTSecret    string
	JWTExpiresIn time.Duration

	BcryptCost int

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// Load reads the environment once at process start. The token secret is the
// only hard requirement; everything else has a development default.
func Load() (Config, error) {
	cfg := Config{
		Env:  getEnv("APP_ENV", "development"),
		Port: getEnv("PORT", "3000"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "blogapi"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTExpiresIn: 72 * time.Hour,

		BcryptCost: 12,

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "blogapi"),
	}

	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return Config{}, errors.New("JWT_EXPIRES_IN must be a duration, e.g. 72h")
		}
		cfg.JWTExpiresIn = d
	}

	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET is required")
	}
	return cfg, nil
}

func (c Config) IsDevelopment() bool { return c.Env != "production" }

// HasCloudinary reports whether image uploads are configured.
func (c Config) HasCloudinary() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
