package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/festivals-api/internal/domain"
	"github.com/vietanh2810/festivals-api/internal/repository/dao"
)

type fakeFestivalDAO struct {
	region  string
	rows    []dao.Festival
	findErr error
}

func (f *fakeFestivalDAO) FindAll(_ context.Context, region string) ([]dao.Festival, error) {
	f.region = region
	return f.rows, f.findErr
}

func (f *fakeFestivalDAO) FindByID(_ context.Context, _ uint) (dao.Festival, error) {
	if f.findErr != nil {
		return dao.Festival{}, f.findErr
	}
	return f.rows[0], nil
}

func (f *fakeFestivalDAO) Insert(_ context.Context, festival dao.Festival) (dao.Festival, error) {
	festival.ID = 7
	return festival, nil
}

func (f *fakeFestivalDAO) Update(_ context.Context, _ uint, _ dao.Festival) (int64, error) {
	return 1, nil
}

func (f *fakeFestivalDAO) Delete(_ context.Context, _ uint) (int64, error) {
	return 1, nil
}

func TestFestivalRepository_FindAll_RegionMapping(t *testing.T) {
	tests := []struct {
		name   string
		region domain.Region
		want   string
	}{
		{"absent", "", ""},
		{"all", domain.RegionAll, ""},
		{"tirol", domain.RegionTirol, "tirol"},
		{"bayern", domain.RegionBayern, "bayern"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeFestivalDAO{}
			r := NewFestivalRepository(d)

			festivals, err := r.FindAll(context.Background(), domain.FestivalFilter{Region: tt.region})
			require.NoError(t, err)
			assert.NotNil(t, festivals)
			assert.Empty(t, festivals)
			assert.Equal(t, tt.want, d.region)
		})
	}
}

func TestFestivalRepository_FindByID_WrapsNotFound(t *testing.T) {
	r := NewFestivalRepository(&fakeFestivalDAO{findErr: dao.ErrFestivalNotFound})

	_, err := r.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, ErrFestivalNotFound)
}

func TestFestivalRepository_FindAll_StorageError(t *testing.T) {
	storageErr := errors.New("disk I/O error")
	r := NewFestivalRepository(&fakeFestivalDAO{findErr: storageErr})

	_, err := r.FindAll(context.Background(), domain.FestivalFilter{})
	assert.ErrorIs(t, err, storageErr)
}

func TestFestivalRepository_NormalisesDates(t *testing.T) {
	berlin := time.FixedZone("CEST", 2*60*60)
	r := NewFestivalRepository(&fakeFestivalDAO{rows: []dao.Festival{{
		ID:        3,
		StartDate: time.Date(2025, 9, 1, 0, 0, 0, 0, berlin),
		EndDate:   time.Date(2025, 9, 3, 13, 30, 0, 0, time.UTC),
		Region:    "tirol",
	}}})

	festival, err := r.FindByID(context.Background(), 3)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), festival.StartDate)
	assert.Equal(t, time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC), festival.EndDate)
	assert.Equal(t, domain.RegionTirol, festival.Region)
}
