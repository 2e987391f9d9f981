package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/festivals-api/internal/db"
)

// newPostgresDB starts a throwaway postgres container. The test is skipped
// in -short mode or when no docker daemon is reachable.
func newPostgresDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=festivals",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=festivals",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = pool.Purge(resource) })
	_ = resource.Expire(120)

	dsn := fmt.Sprintf("postgres://festivals:secret@%s/festivals?sslmode=disable", resource.GetHostPort("5432/tcp"))

	var gdb *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		var openErr error
		gdb, openErr = db.OpenPostgresWithURL(dsn)
		if openErr != nil {
			return openErr
		}
		sqlDB, openErr := gdb.DB()
		if openErr != nil {
			return openErr
		}
		return sqlDB.Ping()
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(gdb) })

	require.NoError(t, InitTables(gdb))

	return gdb
}

func TestPostgres_FestivalLifecycle(t *testing.T) {
	gdb := newPostgresDB(t)
	d := NewFestivalDAO(gdb)
	ctx := context.Background()

	created, err := d.Insert(ctx, Festival{
		Name:      "Almabtrieb",
		Location:  "Innsbruck",
		StartDate: date(t, "2025-09-01"),
		EndDate:   date(t, "2025-09-03"),
		Region:    "tirol",
	})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Festival{
		Name:      "Oktoberfest",
		Location:  "Munich",
		StartDate: date(t, "2025-09-20"),
		EndDate:   date(t, "2025-10-05"),
		Region:    "bayern",
	})
	require.NoError(t, err)

	bayern, err := d.FindAll(ctx, "bayern")
	require.NoError(t, err)
	assert.Equal(t, []string{"Oktoberfest"}, names(bayern))

	found, err := d.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-09-01", found.StartDate.Format("2006-01-02"))

	changes, err := d.Update(ctx, created.ID+100, found)
	require.NoError(t, err)
	assert.Zero(t, changes)

	changes, err = d.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changes)

	_, err = d.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrFestivalNotFound)
}

func TestPostgres_AdminUniqueViolation(t *testing.T) {
	d := NewAdminDAO(newPostgresDB(t))
	ctx := context.Background()

	_, err := d.Insert(ctx, Admin{Username: "admin", Password: "hash"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, Admin{Username: "admin", Password: "hash"})
	assert.ErrorIs(t, err, ErrAdminExists)
}
