package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`
	DBTimeZone string `yaml:"DB_TIMEZONE"`

	// Session
	JWTSecret     string `yaml:"JWT_SECRET"`
	JWTTTLMinutes int    `yaml:"JWT_TTL_MINUTES"`

	// HTTP server
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	LogFile     string `yaml:"LOG_FILE"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Image storage: "local" or "s3"
	StorageDriver string `yaml:"STORAGE_DRIVER"`
	UploadDir     string `yaml:"UPLOAD_DIR"`

	// AWS S3 configuration
	AWSS3Bucket   string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region   string `yaml:"AWS_S3_REGION"`
	AWSS3Endpoint string `yaml:"AWS_S3_ENDPOINT"`
	AWSAccessKey  string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey  string `yaml:"AWS_SECRET_KEY"`
}

var config Config

var defaults = map[string]string{
	"DB_PORT":         "5432",
	"DB_TIMEZONE":     "UTC",
	"JWT_TTL_MINUTES": "120",
	"APP_PORT":        "8080",
	"APP_URL":         "http://localhost:8080",
	"LOG_FILE":        "./logs/app.log",
	"STORAGE_DRIVER":  "local",
	"UPLOAD_DIR":      "./public/uploads",
}

func LoadConfig() {
	LoadConfigFile("config.yaml")
}

// LoadConfigFile replaces the current configuration with the contents of
// path. A missing or broken file leaves the configuration empty so that
// environment variables and defaults still apply.
func LoadConfigFile(path string) {
	config = Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func fromFile(key string) string {
	switch key {
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_TIMEZONE":
		return config.DBTimeZone
	case "JWT_SECRET":
		return config.JWTSecret
	case "JWT_TTL_MINUTES":
		if config.JWTTTLMinutes > 0 {
			return strconv.Itoa(config.JWTTTLMinutes)
		}
		return ""
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "LOG_FILE":
		return config.LogFile
	case "CORS_ORIGINS":
		return config.CORSOrigins
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "UPLOAD_DIR":
		return config.UploadDir
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_S3_ENDPOINT":
		return config.AWSS3Endpoint
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}

// GetConfig resolves key from config.yaml, then the environment, then the
// built-in default.
func GetConfig(key string) string {
	if v := fromFile(key); v != "" {
		return v
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaults[key]
}

// GetConfigInt is GetConfig for numeric keys; fallback is returned when the
// value is missing or not a number.
func GetConfigInt(key string, fallback int) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return fallback
	}
	return v
}
