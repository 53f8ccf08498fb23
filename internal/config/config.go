package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the optional .env file. Safe to call multiple times.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}
}

func GetString(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return val
}

func GetInt(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	valInt, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return valInt
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type MailConfig struct {
	Transport string // "smtp" or "amqp"
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	Timeout   time.Duration
	Insecure  bool
}

type S3Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
	UsePathStyle    bool
}

type Config struct {
	Addr      string
	AppLink   string
	JWTSecret string
	DB        DBConfig
	RedisAddr string
	AmqpURL   string
	Mail      MailConfig
	S3        S3Config
}

func FromEnv() Config {
	return Config{
		Addr:      ":" + GetString("PORT", "3000"),
		AppLink:   GetString("APP_LINK", "http://localhost:3000"),
		JWTSecret: GetString("JWT_SECRET_KEY", ""),
		DB: DBConfig{
			Host:     GetString("DB_HOST", "localhost"),
			Port:     GetString("DB_PORT", "5432"),
			User:     GetString("DB_USER", "postgres"),
			Password: GetString("DB_PASSWORD", ""),
			Name:     GetString("DB_NAME", "account"),
		},
		RedisAddr: GetString("REDIS_ADDR", "localhost:6379"),
		AmqpURL:   GetString("AMQP_URL", ""),
		Mail: MailConfig{
			Transport: GetString("MAIL_TRANSPORT", "smtp"),
			Host:      GetString("MAIL_HOST", "localhost"),
			Port:      GetInt("MAIL_PORT", 587),
			Username:  GetString("MAIL_USER", ""),
			Password:  GetString("MAIL_PASSWORD", ""),
			From:      GetString("MAIL_FROM", "no-reply@localhost"),
			Timeout:   time.Duration(GetInt("MAIL_TIMEOUT_SECONDS", 10)) * time.Second,
			Insecure:  GetString("MAIL_INSECURE", "false") == "true",
		},
		S3: S3Config{
			Endpoint:        GetString("S3_ENDPOINT", ""),
			Region:          GetString("S3_REGION", "us-east-1"),
			AccessKeyID:     GetString("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: GetString("S3_SECRET_ACCESS_KEY", ""),
			Bucket:          GetString("S3_BUCKET", "avatars"),
			PublicBaseURL:   GetString("S3_PUBLIC_BASE_URL", ""),
			UsePathStyle:    GetString("S3_USE_PATH_STYLE", "true") == "true",
		},
	}
}

// DSN builds the postgres connection string.
func (c DBConfig) DSN() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + c.Port + "/" + c.Name + "?sslmode=disable"
}
