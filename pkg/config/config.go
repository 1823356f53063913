package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Cloudinary holds the storage provider credentials and the folder all
// uploads are namespaced under.
type Cloudinary struct {
	CloudName    string
	APIKey       string
	APISecret    string
	UploadFolder string
}

type Config struct {
	Port                    string
	Env                     string
	MongoURI                string
	MongoDatabase           string
	JWTSecret               string
	FirebaseCredentialsPath string
	Cloudinary              Cloudinary
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	return &Config{
		Port:                    getEnv("PORT", "8080"),
		Env:                     getEnv("ENV", "development"),
		MongoURI:                getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:           getEnv("MONGO_DATABASE", "mediashare"),
		JWTSecret:               getEnv("JWT_SECRET", "supersecretjwtkey"),
		FirebaseCredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
		Cloudinary: Cloudinary{
			CloudName:    getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:       getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:    getEnv("CLOUDINARY_API_SECRET", ""),
			UploadFolder: getEnv("CLOUDINARY_UPLOAD_FOLDER", "media"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
