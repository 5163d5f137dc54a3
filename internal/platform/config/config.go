package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration for the registration gateway.
type Server struct {
	Addr string

	Database   Database
	Redis      RedisConfig
	Telegram   Telegram
	GameServer GameServer
	Kafka      Kafka

	// QueueRequests names the Redis list downstream workers consume.
	QueueRequests string
}

// Database holds the relational store DSN parts. DB_MODE selects between the
// TEST_* and PROD_* variable sets so the same binary serves both stands.
type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN renders a pgx-compatible connection URL. Empty when no host is
// configured, which callers treat as "run on the in-memory store".
func (d Database) DSN() string {
	if d.Host == "" {
		return ""
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig holds broker connection settings.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Telegram configures the optional membership check. Both fields must be set
// for the verifier to be enabled.
type Telegram struct {
	BotToken        string
	RequiredGroupID int64
}

// Enabled reports whether the membership check is configured.
func (t Telegram) Enabled() bool {
	return t.BotToken != "" && t.RequiredGroupID != 0
}

// GameServer holds the legacy game-server endpoint registered users are
// pushed to.
type GameServer struct {
	Host string
	Port int
}

// Kafka configures the optional audit trail. Empty brokers disable it.
type Kafka struct {
	Brokers    string
	AuditTopic string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("API_FATHER_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	queueName := os.Getenv("QUEUE_REQUESTS")
	if queueName == "" {
		queueName = "queue:requests"
	}

	auditTopic := os.Getenv("KAFKA_AUDIT_TOPIC")
	if auditTopic == "" {
		auditTopic = "registration.audit"
	}

	gsPort, _ := strconv.Atoi(os.Getenv("GAME_SERVER_PORT"))
	groupID, _ := strconv.ParseInt(os.Getenv("TELEGRAM_REQUIRED_GROUP_ID"), 10, 64)

	return Server{
		Addr:     addr,
		Database: databaseFromEnv(),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Telegram: Telegram{
			BotToken:        os.Getenv("TELEGRAM_BOT_TOKEN"),
			RequiredGroupID: groupID,
		},
		GameServer: GameServer{
			Host: os.Getenv("GAME_SERVER_HOST"),
			Port: gsPort,
		},
		Kafka: Kafka{
			Brokers:    os.Getenv("KAFKA_BROKERS"),
			AuditTopic: auditTopic,
		},
		QueueRequests: queueName,
	}
}

func databaseFromEnv() Database {
	prefix := "TEST"
	if os.Getenv("DB_MODE") == "prod" {
		prefix = "PROD"
	}
	port := os.Getenv(prefix + "_DB_PORT")
	if port == "" {
		port = "5432"
	}
	return Database{
		Host:     os.Getenv(prefix + "_DB_HOST"),
		Port:     port,
		User:     os.Getenv(prefix + "_DB_USER"),
		Password: os.Getenv(prefix + "_DB_PASSWORD"),
		Name:     os.Getenv(prefix + "_DB_NAME"),
	}
}
