package helper

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
)

// Environment variables read by NewDatabaseConfiguration.
const (
	EnvDatabaseHost     = "RANKER_DB_HOST"
	EnvDatabasePort     = "RANKER_DB_PORT"
	EnvDatabaseName     = "RANKER_DB_DATABASE"
	EnvDatabaseUsername = "RANKER_DB_USERNAME"
	EnvDatabasePassword = "RANKER_DB_PASSWORD"
	EnvDatabaseSchema   = "RANKER_DB_SCHEMA"
	EnvDatabaseSSLMode  = "RANKER_DB_SSLMODE"
)

// DatabaseConfiguration holds the connection settings for PostgreSQL
type DatabaseConfiguration struct {
	Host     string
	Port     string
	Database string
	Username string
	Password string
	Schema   string
	SSLMode  string
}

// NewDatabaseConfiguration reads the configuration from the environment.
// A .env file in the working directory is loaded first if it exists.
func NewDatabaseConfiguration() (*DatabaseConfiguration, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, NewError("load .env", err)
		}
	}

	config := &DatabaseConfiguration{
		Host:     os.Getenv(EnvDatabaseHost),
		Port:     os.Getenv(EnvDatabasePort),
		Database: os.Getenv(EnvDatabaseName),
		Username: os.Getenv(EnvDatabaseUsername),
		Password: os.Getenv(EnvDatabasePassword),
		Schema:   os.Getenv(EnvDatabaseSchema),
		SSLMode:  os.Getenv(EnvDatabaseSSLMode),
	}
	if config.Schema == "" {
		config.Schema = "public"
	}
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	if config.Host == "" || config.Port == "" || config.Database == "" || config.Username == "" {
		return nil, NewError("database configuration", fmt.Errorf("%s, %s, %s and %s must be set", EnvDatabaseHost, EnvDatabasePort, EnvDatabaseName, EnvDatabaseUsername))
	}

	return config, nil
}

// DSN returns the connection string for lib/pq
func (c *DatabaseConfiguration) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   fmt.Sprintf("%s:%s", c.Host, c.Port),
		Path:   c.Database,
	}
	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	if c.Schema != "" {
		q.Set("search_path", c.Schema)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Database holds an open connection pool and the logger of its owner
type Database struct {
	Name     string
	Logger   *slog.Logger
	Instance *sql.DB
}

// NewDatabase opens and pings the database and creates the configured schema.
// It panics if the database is not reachable.
func NewDatabase(name string, config *DatabaseConfiguration, logger *slog.Logger) *Database {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := connect(config)
	if err != nil {
		log.Panicf("error connecting to database %s: %v", name, err)
	}

	logger.Info("Connected to database", slog.String("name", name), slog.String("host", config.Host), slog.String("schema", config.Schema))

	return &Database{
		Name:     name,
		Logger:   logger,
		Instance: db,
	}
}

// NewTestDatabase opens a database with a discarding logger
func NewTestDatabase(config *DatabaseConfiguration) *Database {
	return NewDatabase("test", config, slog.New(slog.DiscardHandler))
}

// Close closes the connection pool
func (d *Database) Close() error {
	if d == nil || d.Instance == nil {
		return nil
	}
	return d.Instance.Close()
}

func connect(config *DatabaseConfiguration) (*sql.DB, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	if config.Schema != "" && config.Schema != "public" {
		_, err = db.ExecContext(ctx, createSchemaStatement(config.Schema))
		if err != nil {
			db.Close()
			return nil, err
		}
	}

	return db, nil
}

func createSchemaStatement(schema string) string {
	return fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s;`, pq.QuoteIdentifier(schema))
}
