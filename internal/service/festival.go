package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/vietanh2810/festivals-api/internal/domain"
	"github.com/vietanh2810/festivals-api/internal/repository"
)

var (
	ErrFestivalNotFound = repository.ErrFestivalNotFound
)

type FestivalRepository interface {
	FindAll(ctx context.Context, filter domain.FestivalFilter) ([]domain.Festival, error)
	FindByID(ctx context.Context, id uint) (domain.Festival, error)
	Create(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	Update(ctx context.Context, id uint, festival domain.Festival) (int64, error)
	Delete(ctx context.Context, id uint) (int64, error)
}

type ImageStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

type FestivalService struct {
	repo   FestivalRepository
	images ImageStore
}

func NewFestivalService(repo FestivalRepository, images ImageStore) *FestivalService {
	return &FestivalService{
		repo:   repo,
		images: images,
	}
}

func (s *FestivalService) ListFestivals(ctx context.Context, region domain.Region) ([]domain.Festival, error) {
	festivals, err := s.repo.FindAll(ctx, domain.FestivalFilter{Region: region})
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return festivals, nil
}

func (s *FestivalService) GetFestival(ctx context.Context, id uint) (domain.Festival, error) {
	festival, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return festival, nil
}

// CreateFestival stores the optional image first and then inserts the
// record. If the insert fails the stored image is left behind.
func (s *FestivalService) CreateFestival(ctx context.Context, festival domain.Festival, image *domain.Image) (uint, error) {
	festival.ImageURL = nil
	if image != nil {
		ref, err := s.saveImage(ctx, image)
		if err != nil {
			return 0, err
		}
		festival.ImageURL = &ref
	}

	created, err := s.repo.Create(ctx, festival)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created.ID, nil
}

// UpdateFestival replaces every mutable field of the festival. A new image
// wins over existingImage, which is otherwise written back unchanged.
func (s *FestivalService) UpdateFestival(ctx context.Context, id uint, festival domain.Festival, image *domain.Image, existingImage *string) (int64, error) {
	festival.ImageURL = existingImage
	if image != nil {
		ref, err := s.saveImage(ctx, image)
		if err != nil {
			return 0, err
		}
		festival.ImageURL = &ref
	}

	changes, err := s.repo.Update(ctx, id, festival)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return changes, nil
}

func (s *FestivalService) DeleteFestival(ctx context.Context, id uint) (int64, error) {
	changes, err := s.repo.Delete(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return changes, nil
}

func (s *FestivalService) saveImage(ctx context.Context, image *domain.Image) (string, error) {
	ref, err := s.images.Save(ctx, image.Filename, image.Content)
	if err != nil {
		return "", fmt.Errorf("s.images.Save -> %w", err)
	}

	zap.L().Debug("stored festival image", zap.String("filename", image.Filename), zap.String("ref", ref), zap.Int64("size", image.Size))

	return ref, nil
}
