package testinternals

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/mfarag11047/RepCoach/internal/db"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
)

const testDBName = "repcoach"

// NewPostgres returns a migrated connection pool for repo tests and its
// teardown func. POSTGRES_HOST selects an already running database,
// otherwise a postgres container is started via dockertest.
func NewPostgres(t *testing.T) (*pgxpool.Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("postgres tests skipped in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if host := os.Getenv("POSTGRES_HOST"); host != "" {
		t.Logf("using postgres host: %s", host)
		pool := connectAndMigrate(ctx, t, db.NewDBPoolParams{
			DBHost: host,
			DBPort: "5432",
			DBName: testDBName,
		}, nil)
		return pool, pool.Close
	}

	dockerPool, err := dockertest.NewPool("")
	require.NoError(t, err)
	if err := dockerPool.Client.Ping(); err != nil {
		t.Skipf("docker not available: %s", err)
	}

	pgResource, err := dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + testDBName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	require.NoError(t, err)
	_ = pgResource.Expire(120)

	teardownResource := func() {
		if err := dockerPool.Purge(pgResource); err != nil {
			fmt.Printf("postgres teardown: %s\n", err)
		}
	}

	pool := connectAndMigrate(ctx, t, db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: pgResource.GetPort("5432/tcp"),
		DBName: testDBName,
	}, dockerPool)

	return pool, func() {
		pool.Close()
		teardownResource()
	}
}

func connectAndMigrate(ctx context.Context, t *testing.T, params db.NewDBPoolParams, dockerPool *dockertest.Pool) *pgxpool.Pool {
	t.Helper()

	if dockerPool != nil {
		// wait for the container to accept connections
		require.NoError(t, dockerPool.Retry(func() error {
			sqlDB, err := sql.Open("postgres", db.ConnString(params))
			if err != nil {
				return err
			}
			defer sqlDB.Close()
			return sqlDB.PingContext(ctx)
		}))
	}

	pool, err := db.NewDBPool(ctx, params)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	require.NoError(t, db.RunMigrations(db.ConnString(params)))
	return pool
}

// TruncateAll empties the domain tables between tests.
func TruncateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE workout, exercise`)
	require.NoError(t, err)
}
