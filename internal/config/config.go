package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/arfandy/journal-backend/internal/models"
)

type Config struct {
	Port            string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTAccessSecret string
	RedisAddr       string
	KafkaAddress    string
	PushURL         string
	PushServerKey   string
	LogLevel        string
}

func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	return &Config{
		Port:            getenv("PORT", "3000"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          getenv("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		JWTAccessSecret: os.Getenv("JWT_ACCESS_SECRET"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		KafkaAddress:    os.Getenv("KAFKA_ADDRESS"),
		PushURL:         os.Getenv("PUSH_URL"),
		PushServerKey:   os.Getenv("PUSH_SERVER_KEY"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func InitDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("cannot connect to database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate wires the explicit journal↔tag join entity and creates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Journal{}, "Tags", &models.JournalTag{}); err != nil {
		return fmt.Errorf("cannot set up join table: %w", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Category{},
		&models.Tag{},
		&models.Journal{},
	); err != nil {
		return fmt.Errorf("cannot run migration: %w", err)
	}
	return nil
}

// InitRedis returns nil when no address is configured; the response cache
// is optional.
func InitRedis(cfg *Config) *redis.Client {
	if cfg.RedisAddr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
}
