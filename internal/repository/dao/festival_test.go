package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vietanh2810/festivals-api/internal/db"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close(gdb) })

	require.NoError(t, InitTables(gdb))

	return gdb
}

func date(t *testing.T, s string) time.Time {
	t.Helper()

	d, err := time.Parse("2006-01-02", s)
	require.NoError(t, err)

	return d
}

func strPtr(s string) *string { return &s }

func TestFestivalDAO_InsertAndFindByID(t *testing.T) {
	d := NewFestivalDAO(newTestDB(t))
	ctx := context.Background()

	lat := 47.2692
	created, err := d.Insert(ctx, Festival{
		Name:        "Almabtrieb",
		Description: strPtr("cattle drive"),
		Location:    "Innsbruck",
		Latitude:    &lat,
		StartDate:   date(t, "2025-09-01"),
		EndDate:     date(t, "2025-09-03"),
		Region:      "tirol",
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	found, err := d.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Almabtrieb", found.Name)
	assert.Equal(t, "cattle drive", *found.Description)
	assert.Equal(t, "Innsbruck", found.Location)
	require.NotNil(t, found.Latitude)
	assert.InDelta(t, lat, *found.Latitude, 1e-9)
	assert.Nil(t, found.Longitude)
	assert.Nil(t, found.Address)
	assert.Nil(t, found.ImageURL)
	assert.Equal(t, "2025-09-01", found.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-09-03", found.EndDate.Format("2006-01-02"))
	assert.Equal(t, "tirol", found.Region)
	assert.False(t, found.CreatedAt.IsZero())
}

func TestFestivalDAO_FindByID_NotFound(t *testing.T) {
	d := NewFestivalDAO(newTestDB(t))

	_, err := d.FindByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrFestivalNotFound)
}

func TestFestivalDAO_FindAll_FilterAndOrder(t *testing.T) {
	d := NewFestivalDAO(newTestDB(t))
	ctx := context.Background()

	for _, f := range []Festival{
		{Name: "late", Location: "Munich", StartDate: date(t, "2025-10-01"), EndDate: date(t, "2025-10-02"), Region: "bayern"},
		{Name: "early", Location: "Innsbruck", StartDate: date(t, "2025-01-15"), EndDate: date(t, "2025-01-16"), Region: "tirol"},
		{Name: "middle", Location: "Kufstein", StartDate: date(t, "2025-06-01"), EndDate: date(t, "2025-06-01"), Region: "tirol"},
	} {
		_, err := d.Insert(ctx, f)
		require.NoError(t, err)
	}

	all, err := d.FindAll(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"early", "middle", "late"}, names(all))

	tirol, err := d.FindAll(ctx, "tirol")
	require.NoError(t, err)
	assert.Equal(t, []string{"early", "middle"}, names(tirol))

	bayern, err := d.FindAll(ctx, "bayern")
	require.NoError(t, err)
	assert.Equal(t, []string{"late"}, names(bayern))
}

func TestFestivalDAO_Update(t *testing.T) {
	d := NewFestivalDAO(newTestDB(t))
	ctx := context.Background()

	created, err := d.Insert(ctx, Festival{
		Name:      "Oktoberfest",
		Location:  "Munich",
		Website:   strPtr("https://example.org"),
		StartDate: date(t, "2025-09-20"),
		EndDate:   date(t, "2025-10-05"),
		Region:    "bayern",
	})
	require.NoError(t, err)

	changes, err := d.Update(ctx, created.ID, Festival{
		Name:      "Oktoberfest 2025",
		Location:  "München",
		ImageURL:  strPtr("/uploads/1.png"),
		StartDate: date(t, "2025-09-21"),
		EndDate:   date(t, "2025-10-06"),
		Region:    "bayern",
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, changes)

	found, err := d.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Oktoberfest 2025", found.Name)
	assert.Equal(t, "München", found.Location)
	assert.Nil(t, found.Website, "full replace clears omitted fields")
	require.NotNil(t, found.ImageURL)
	assert.Equal(t, "/uploads/1.png", *found.ImageURL)
	assert.Equal(t, "2025-09-21", found.StartDate.Format("2006-01-02"))
}

func TestFestivalDAO_Update_Missing(t *testing.T) {
	gdb := newTestDB(t)
	d := NewFestivalDAO(gdb)
	ctx := context.Background()

	changes, err := d.Update(ctx, 99, Festival{
		Name:      "ghost",
		Location:  "nowhere",
		StartDate: date(t, "2025-01-01"),
		EndDate:   date(t, "2025-01-01"),
		Region:    "tirol",
	})
	require.NoError(t, err)
	assert.Zero(t, changes)

	var count int64
	require.NoError(t, gdb.Model(&Festival{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestFestivalDAO_Delete(t *testing.T) {
	d := NewFestivalDAO(newTestDB(t))
	ctx := context.Background()

	created, err := d.Insert(ctx, Festival{
		Name:      "Gauder Fest",
		Location:  "Zell am Ziller",
		StartDate: date(t, "2025-05-01"),
		EndDate:   date(t, "2025-05-04"),
		Region:    "tirol",
	})
	require.NoError(t, err)

	changes, err := d.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, changes)

	_, err = d.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrFestivalNotFound)

	changes, err = d.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Zero(t, changes)
}

func names(festivals []Festival) []string {
	out := make([]string, 0, len(festivals))
	for _, f := range festivals {
		out = append(out, f.Name)
	}
	return out
}
