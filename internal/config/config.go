package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const defaultInvoiceValidity = 3600 // seconds

type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	AppPort    string
	AppEnv     string

	MonoToken         string
	MonoBaseURL       string
	MonoWebhookSecret string
	RedirectURL       string
	WebhookURL        string
	InvoiceValidity   int

	StorageBaseURL string
	SecretKey      string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBPort:     os.Getenv("DB_PORT"),
		AppPort:    os.Getenv("APP_PORT"),
		AppEnv:     os.Getenv("APP_ENV"),

		MonoToken:         os.Getenv("MONOPAY_TOKEN"),
		MonoBaseURL:       os.Getenv("MONOPAY_BASE_URL"),
		MonoWebhookSecret: os.Getenv("MONOPAY_WEBHOOK_SECRET"),
		RedirectURL:       os.Getenv("PAYMENT_REDIRECT_URL"),
		WebhookURL:        os.Getenv("PAYMENT_WEBHOOK_URL"),
		InvoiceValidity:   envInt("INVOICE_VALIDITY", defaultInvoiceValidity),

		StorageBaseURL: os.Getenv("STORAGE_BASE_URL"),
		SecretKey:      os.Getenv("SECRET_KEY"),
	}

	if cfg.DBHost == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	return cfg
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
