package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	CategoryDeleteBlock  = "block"
	CategoryDeleteDetach = "detach"
)

type ENV struct {
	DBHost               string
	DBUser               string
	DBPassword           string
	DBName               string
	DBPort               string
	Port                 string
	AppEnv               string
	AppAuthKey           string
	AppEncKey            string
	CookieSecure         bool
	CategoryDeletePolicy string
	EmailHost            string
	EmailPort            string
	EmailUsername        string
	EmailPassword        string
	EmailFrom            string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	env := ENV{
		DBHost:               os.Getenv("DB_HOST"),
		DBUser:               os.Getenv("DB_USER"),
		DBPassword:           os.Getenv("DB_PASSWORD"),
		DBName:               os.Getenv("DB_NAME"),
		DBPort:               os.Getenv("DB_PORT"),
		Port:                 os.Getenv("APP_PORT"),
		AppEnv:               os.Getenv("APP_ENV"),
		AppAuthKey:           os.Getenv("APP_AUTH_KEY"),
		AppEncKey:            os.Getenv("APP_ENC_KEY"),
		CategoryDeletePolicy: os.Getenv("CATEGORY_DELETE_POLICY"),
		EmailHost:            os.Getenv("EMAIL_HOST"),
		EmailPort:            os.Getenv("EMAIL_PORT"),
		EmailUsername:        os.Getenv("EMAIL_USERNAME"),
		EmailPassword:        os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:            os.Getenv("EMAIL_FROM"),
	}

	if env.Port == "" {
		env.Port = ":8080"
	}
	if env.EmailFrom == "" {
		env.EmailFrom = env.EmailUsername
	}
	if env.CategoryDeletePolicy != CategoryDeleteDetach {
		env.CategoryDeletePolicy = CategoryDeleteBlock
	}

	if raw := os.Getenv("COOKIE_SECURE"); raw != "" {
		secure, err := strconv.ParseBool(raw)
		if err != nil {
			log.Printf("Warning: invalid COOKIE_SECURE value %q, falling back to APP_ENV", raw)
		}
		env.CookieSecure = secure
	} else {
		env.CookieSecure = env.IsProduction()
	}

	return env
}

func (e ENV) IsProduction() bool {
	return e.AppEnv == "production"
}

func (e ENV) MailerEnabled() bool {
	return e.EmailHost != "" && e.EmailPort != ""
}
