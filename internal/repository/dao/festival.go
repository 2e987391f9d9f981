package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrFestivalNotFound = errors.New("festival not found")
)

type Festival struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description *string
	Location    string `gorm:"not null"`
	Address     *string
	Latitude    *float64
	Longitude   *float64

	StartDate time.Time `gorm:"type:date;not null;index"`
	EndDate   time.Time `gorm:"type:date;not null"`
	Region    string    `gorm:"not null;index"`

	ImageURL     *string `gorm:"column:image_url"`
	Website      *string
	ContactEmail *string
	ContactPhone *string

	CreatedAt time.Time `gorm:"not null"`
}

type FestivalDAO struct {
	db *gorm.DB
}

func NewFestivalDAO(db *gorm.DB) *FestivalDAO {
	return &FestivalDAO{
		db: db,
	}
}

// FindAll returns festivals ordered by start date. An empty region matches
// every row.
func (d *FestivalDAO) FindAll(ctx context.Context, region string) ([]Festival, error) {
	var festivals []Festival

	query := d.db.WithContext(ctx).Order("start_date ASC").Order("id ASC")
	if region != "" {
		query = query.Where("region = ?", region)
	}

	if result := query.Find(&festivals); result.Error != nil {
		return nil, result.Error
	}

	return festivals, nil
}

func (d *FestivalDAO) FindByID(ctx context.Context, id uint) (Festival, error) {
	var festival Festival

	result := d.db.WithContext(ctx).First(&festival, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Festival{}, ErrFestivalNotFound
		}

		return Festival{}, result.Error
	}

	return festival, nil
}

func (d *FestivalDAO) Insert(ctx context.Context, festival Festival) (Festival, error) {
	festival.ID = 0

	result := d.db.WithContext(ctx).Create(&festival)
	if result.Error != nil {
		return Festival{}, result.Error
	}

	return festival, nil
}

// Update overwrites every mutable column of the festival with the given id,
// writing NULL for nil fields. It returns the number of rows changed.
func (d *FestivalDAO) Update(ctx context.Context, id uint, festival Festival) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&Festival{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":          festival.Name,
			"description":   festival.Description,
			"location":      festival.Location,
			"address":       festival.Address,
			"latitude":      festival.Latitude,
			"longitude":     festival.Longitude,
			"start_date":    festival.StartDate,
			"end_date":      festival.EndDate,
			"region":        festival.Region,
			"image_url":     festival.ImageURL,
			"website":       festival.Website,
			"contact_email": festival.ContactEmail,
			"contact_phone": festival.ContactPhone,
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

func (d *FestivalDAO) Delete(ctx context.Context, id uint) (int64, error) {
	result := d.db.WithContext(ctx).Delete(&Festival{}, id)
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
