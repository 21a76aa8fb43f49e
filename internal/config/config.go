package config

import (
	"errors"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DBType string // "postgres" or "file"
	DBDSN  string

	FileUsers          string
	FileCopingMaster   string
	FileCopingMessages string
	FileDailyMessages  string

	OuraAPIKey1 string
	OuraAPIKey2 string
	OpenAIKey   string

	JWTSecret string
	Timezone  string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = godotenv.Load()
		cfg = &Config{
			Env:                getEnv("APP_ENV", "development"),
			LogLevel:           getEnv("LOG_LEVEL", "info"),
			Port:               getEnv("PORT", "8000"),
			DBType:             getEnv("STORAGE_BACKEND", "file"),
			DBDSN:              getEnv("POSTGRES_DSN", ""),
			FileUsers:          getEnv("USERS_FILE", "data/users.json"),
			FileCopingMaster:   getEnv("COPING_MASTER_FILE", "data/coping_master.json"),
			FileCopingMessages: getEnv("COPING_MESSAGES_FILE", "data/coping_messages.json"),
			FileDailyMessages:  getEnv("DAILY_MESSAGES_FILE", "data/daily_messages.json"),
			OuraAPIKey1:        getEnv("OURA_API_KEY_1", ""),
			OuraAPIKey2:        getEnv("OURA_API_KEY_2", ""),
			OpenAIKey:          getEnv("GPT_API_KEY", ""),
			JWTSecret:          getEnv("JWT_SECRET", ""),
			Timezone:           getEnv("APP_TIMEZONE", "Asia/Tokyo"),
		}
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

func (c *Config) Validate() error {
	if c.DBType != "postgres" && c.DBType != "file" {
		return errors.New("STORAGE_BACKEND must be one of: postgres, file")
	}
	if c.DBType == "postgres" && c.DBDSN == "" {
		return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
	}
	if c.DBType == "file" && (c.FileUsers == "" || c.FileCopingMaster == "" ||
		c.FileCopingMessages == "" || c.FileDailyMessages == "") {
		return errors.New("File storage requires USERS_FILE, COPING_MASTER_FILE, COPING_MESSAGES_FILE and DAILY_MESSAGES_FILE to be set")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
