package helper

import (
	"context"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabaseImage    = "postgres:17-alpine"
	testDatabaseName     = "database"
	testDatabaseUsername = "user"
	testDatabasePassword = "password"
)

// MustStartPostgresContainer starts a throwaway PostgreSQL container.
// It returns the terminate function and the mapped host port.
func MustStartPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(
		ctx,
		testDatabaseImage,
		postgres.WithDatabase(testDatabaseName),
		postgres.WithUsername(testDatabaseUsername),
		postgres.WithPassword(testDatabasePassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", NewError("start postgres container", err)
	}

	port, err := pgContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		return nil, "", NewError("get mapped port", err)
	}

	return pgContainer.Terminate, port.Port(), nil
}

// SetTestDatabaseConfigEnvs points the database environment at a test container
func SetTestDatabaseConfigEnvs(t *testing.T, dbPort string) {
	t.Setenv(EnvDatabaseHost, "localhost")
	t.Setenv(EnvDatabasePort, dbPort)
	t.Setenv(EnvDatabaseName, testDatabaseName)
	t.Setenv(EnvDatabaseUsername, testDatabaseUsername)
	t.Setenv(EnvDatabasePassword, testDatabasePassword)
	t.Setenv(EnvDatabaseSchema, "public")
	t.Setenv(EnvDatabaseSSLMode, "disable")
}

// TestDatabaseConfiguration returns the configuration of a test container on dbPort
func TestDatabaseConfiguration(dbPort string) *DatabaseConfiguration {
	return &DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: testDatabaseName,
		Username: testDatabaseUsername,
		Password: testDatabasePassword,
		Schema:   "public",
		SSLMode:  "disable",
	}
}
