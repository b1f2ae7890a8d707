package suite

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"github.com/rocketscienceinc/tictactoe-sessions/internal/repository/storage"
)

const (
	expireDuration  = 120
	maxWaitDuration = 120 * time.Second
)

const (
	redisPort  = "6379/tcp"
	redisImage = "redis"
	redisTag   = "alpine"

	postgresPort     = "5432/tcp"
	postgresImage    = "postgres"
	postgresTag      = "16-alpine"
	postgresPassword = "secret"
	postgresDB       = "tictactoe"
)

type Suite struct {
	*testing.T
	Logger *slog.Logger
}

type RedisSuite struct {
	Suite

	Storage *storage.RedisStorage
}

type PostgresSuite struct {
	Suite

	Storage *storage.PostgresStorage
}

// New - starts a disposable redis container and returns a connected storage.
func New(t *testing.T) (context.Context, *RedisSuite) {
	t.Helper()

	ctx, pool, resource := run(t, &dockertest.RunOptions{
		Repository: redisImage,
		Tag:        redisTag,
		Env:        []string{},
	})

	redisHost := resource.GetHostPort(redisPort)

	var redisStorage *storage.RedisStorage
	if err := pool.Retry(func() error {
		var err error
		redisStorage, err = storage.NewRedisStorage(ctx, redisHost)
		return err
	}); err != nil {
		purge(t, pool, resource)
		t.Fatalf("could not connect to redis: %v", err)
	}

	if err := redisStorage.Connection.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("could not flush database: %v", err)
	}

	t.Cleanup(func() {
		_ = redisStorage.Close()
	})

	return ctx, &RedisSuite{
		Suite:   newSuite(t),
		Storage: redisStorage,
	}
}

// NewPostgres - starts a disposable postgres container and returns an initialized storage.
func NewPostgres(t *testing.T) (context.Context, *PostgresSuite) {
	t.Helper()

	ctx, pool, resource := run(t, &dockertest.RunOptions{
		Repository: postgresImage,
		Tag:        postgresTag,
		Env: []string{
			"POSTGRES_PASSWORD=" + postgresPassword,
			"POSTGRES_DB=" + postgresDB,
		},
	})

	dsn := fmt.Sprintf("postgres://postgres:%s@%s/%s?sslmode=disable",
		postgresPassword, resource.GetHostPort(postgresPort), postgresDB)

	var postgresStorage *storage.PostgresStorage
	if err := pool.Retry(func() error {
		var err error
		postgresStorage, err = storage.NewPostgresStorage(dsn)
		if err != nil {
			return err
		}

		db, err := postgresStorage.Connection.DB()
		if err != nil {
			return err
		}

		return db.PingContext(ctx)
	}); err != nil {
		purge(t, pool, resource)
		t.Fatalf("could not connect to postgres: %v", err)
	}

	if err := postgresStorage.Init(ctx); err != nil {
		t.Fatalf("could not init database: %v", err)
	}

	t.Cleanup(func() {
		_ = postgresStorage.Close()
	})

	return ctx, &PostgresSuite{
		Suite:   newSuite(t),
		Storage: postgresStorage,
	}
}

func newSuite(t *testing.T) Suite {
	return Suite{
		T:      t,
		Logger: slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

// run - pulls an image, creates a container based on it and runs it.
func run(t *testing.T, opts *dockertest.RunOptions) (context.Context, *dockertest.Pool, *dockertest.Resource) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), maxWaitDuration)
	t.Cleanup(func() {
		cancel()
	})

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		// set AutoRemove to true so that stopped container goes away by itself
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start resource: %v", err)
	}

	// never returns error
	_ = resource.Expire(expireDuration) // Tell docker to hard kill the container in 120 seconds

	// exponential backoff-retry, because the application in the container might not be ready to accept connections yet
	pool.MaxWait = maxWaitDuration

	t.Cleanup(func() {
		purge(t, pool, resource)
	})

	return ctx, pool, resource
}

func purge(t *testing.T, pool *dockertest.Pool, resource *dockertest.Resource) {
	t.Helper()

	if err := pool.Purge(resource); err != nil {
		t.Logf("could not purge resource: %v", err)
	}
}
