package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/vietanh2810/festivals-api/internal/domain"
	"github.com/vietanh2810/festivals-api/internal/repository/dao"
)

var (
	ErrFestivalNotFound = dao.ErrFestivalNotFound
)

type FestivalDAO interface {
	FindAll(ctx context.Context, region string) ([]dao.Festival, error)
	FindByID(ctx context.Context, id uint) (dao.Festival, error)
	Insert(ctx context.Context, festival dao.Festival) (dao.Festival, error)
	Update(ctx context.Context, id uint, festival dao.Festival) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type FestivalRepository struct {
	dao FestivalDAO
}

func NewFestivalRepository(dao FestivalDAO) *FestivalRepository {
	return &FestivalRepository{
		dao: dao,
	}
}

func (r *FestivalRepository) FindAll(ctx context.Context, filter domain.FestivalFilter) ([]domain.Festival, error) {
	region := string(filter.Region)
	if filter.Region == domain.RegionAll {
		region = ""
	}

	found, err := r.dao.FindAll(ctx, region)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	festivals := make([]domain.Festival, 0, len(found))
	for _, f := range found {
		festivals = append(festivals, r.daoToDomain(f))
	}

	return festivals, nil
}

func (r *FestivalRepository) FindByID(ctx context.Context, id uint) (domain.Festival, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FestivalRepository) Create(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(festival))
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FestivalRepository) Update(ctx context.Context, id uint, festival domain.Festival) (int64, error) {
	changes, err := r.dao.Update(ctx, id, r.domainToDao(festival))
	if err != nil {
		return 0, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return changes, nil
}

func (r *FestivalRepository) Delete(ctx context.Context, id uint) (int64, error) {
	changes, err := r.dao.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return changes, nil
}

func (r *FestivalRepository) domainToDao(f domain.Festival) dao.Festival {
	return dao.Festival{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Location:     f.Location,
		Address:      f.Address,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		StartDate:    toDate(f.StartDate),
		EndDate:      toDate(f.EndDate),
		Region:       string(f.Region),
		ImageURL:     f.ImageURL,
		Website:      f.Website,
		ContactEmail: f.ContactEmail,
		ContactPhone: f.ContactPhone,
		CreatedAt:    f.CreatedAt,
	}
}

func (r *FestivalRepository) daoToDomain(f dao.Festival) domain.Festival {
	return domain.Festival{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Location:     f.Location,
		Address:      f.Address,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		StartDate:    toDate(f.StartDate),
		EndDate:      toDate(f.EndDate),
		Region:       domain.Region(f.Region),
		ImageURL:     f.ImageURL,
		Website:      f.Website,
		ContactEmail: f.ContactEmail,
		ContactPhone: f.ContactPhone,
		CreatedAt:    f.CreatedAt,
	}
}

// toDate drops the time of day and zone so that dates compare equal no
// matter how the driver handed them back.
func toDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
