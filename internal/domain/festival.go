package domain

import (
	"io"
	"time"
)

// DateLayout is the calendar-date format used for festival start and end
// dates on the wire.
const DateLayout = "2006-01-02"

type Region string

const (
	RegionTirol  Region = "tirol"
	RegionBayern Region = "bayern"

	// RegionAll disables region filtering when listing festivals.
	RegionAll Region = "all"
)

var Regions = []Region{RegionTirol, RegionBayern}

func (r Region) IsValid() bool {
	for _, region := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

// Festival is a single, non-recurring festival occurrence. Nil pointer
// fields are absent values.
type Festival struct {
	ID           uint
	Name         string
	Description  *string
	Location     string
	Address      *string
	Latitude     *float64
	Longitude    *float64
	StartDate    time.Time
	EndDate      time.Time
	Region       Region
	ImageURL     *string
	Website      *string
	ContactEmail *string
	ContactPhone *string
	CreatedAt    time.Time
}

type FestivalFilter struct {
	Region Region
}

// Image is an uploaded festival image waiting to be stored.
type Image struct {
	Filename string
	Size     int64
	Content  io.Reader
}
