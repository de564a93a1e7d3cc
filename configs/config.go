package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBSource string
	Port     string

	JWTSecret string
	JWTTTL    time.Duration

	// Order creation policy: true persists new orders as "confirmed"
	// (auto-confirm), false leaves them "pending" until the provider acts.
	OrderAutoConfirm bool

	RazorpayKeyID     string
	RazorpayKeySecret string

	BrevoAPIKey string
	BrevoSender string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string

	AdminEmail    string
	AdminPassword string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	return &Config{
		DBSource:          getEnv("DB_SOURCE", "tiffinhub.db"),
		Port:              getEnv("PORT", "8000"),
		JWTSecret:         getEnv("JWT_SECRET", "changeme"),
		JWTTTL:            7 * 24 * time.Hour,
		OrderAutoConfirm:  getEnvBool("ORDER_AUTO_CONFIRM", true),
		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),
		BrevoAPIKey:       os.Getenv("BREVO_API_KEY"),
		BrevoSender:       getEnv("BREVO_SENDER", "orders@tiffinhub.in"),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:        os.Getenv("TWILIO_FROM"),
		AdminEmail:        os.Getenv("ADMIN_EMAIL"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("invalid bool for %s=%q, using default", key, v)
		return fallback
	}
	return b
}
