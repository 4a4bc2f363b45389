package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// AdminSeed is the admin account created on boot when missing.
type AdminSeed struct {
	FirstName   string
	LastName    string
	CompanyName string
	Email       string
	Phone       string
	Address     string
	ProductType string
	Password    string
}

type Config struct {
	Port      string
	DBUrl     string
	JWTSecret string
	JWTExpiry time.Duration
	SMTP      SMTP
	Admin     AdminSeed
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, falling back to process environment")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "default-secret-key-change-in-production"
		log.Println("JWT_SECRET not set, using default key")
	}

	expiryHours := 24
	if v := os.Getenv("JWT_EXPIRE_HOURS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			expiryHours = parsed
		}
	}

	return Config{
		Port:      port,
		DBUrl:     dbURL(),
		JWTSecret: secret,
		JWTExpiry: time.Duration(expiryHours) * time.Hour,
		SMTP: SMTP{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     os.Getenv("SMTP_PORT"),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     os.Getenv("SMTP_FROM"),
		},
		Admin: AdminSeed{
			FirstName:   os.Getenv("ADMIN_FIRST_NAME"),
			LastName:    os.Getenv("ADMIN_LAST_NAME"),
			CompanyName: os.Getenv("ADMIN_COMPANY_NAME"),
			Email:       os.Getenv("ADMIN_EMAIL"),
			Phone:       os.Getenv("ADMIN_PHONE"),
			Address:     os.Getenv("ADMIN_ADDRESS"),
			ProductType: os.Getenv("ADMIN_PRODUCT_TYPE"),
			Password:    os.Getenv("ADMIN_PASSWORD"),
		},
	}
}

func dbURL() string {
	if url := os.Getenv("DB_URL"); url != "" {
		return url
	}
	// parseTime is required so DATETIME columns scan into time.Time.
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true",
		os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
}

// Complete reports whether every field needed to seed the admin account is set.
func (a AdminSeed) Complete() bool {
	return a.FirstName != "" && a.LastName != "" && a.CompanyName != "" &&
		a.Email != "" && a.Phone != "" && a.Address != "" &&
		a.ProductType != "" && a.Password != ""
}
