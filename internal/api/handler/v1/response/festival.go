package response

import (
	"time"

	"github.com/vietanh2810/festivals-api/internal/domain"
)

type Festival struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description"`
	Location     string    `json:"location"`
	Address      *string   `json:"address"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
	StartDate    string    `json:"start_date" example:"2025-09-01"`
	EndDate      string    `json:"end_date" example:"2025-09-03"`
	Region       string    `json:"region" enums:"tirol,bayern"`
	ImageURL     *string   `json:"image_url"`
	Website      *string   `json:"website"`
	ContactEmail *string   `json:"contact_email"`
	ContactPhone *string   `json:"contact_phone"`
	CreatedAt    time.Time `json:"created_at"`
}

type CreatedResponse struct {
	ID uint `json:"id"`
}

type ChangesResponse struct {
	Changes int64 `json:"changes"`
}

func NewFestival(f domain.Festival) Festival {
	return Festival{
		ID:           f.ID,
		Name:         f.Name,
		Description:  f.Description,
		Location:     f.Location,
		Address:      f.Address,
		Latitude:     f.Latitude,
		Longitude:    f.Longitude,
		StartDate:    f.StartDate.Format(domain.DateLayout),
		EndDate:      f.EndDate.Format(domain.DateLayout),
		Region:       string(f.Region),
		ImageURL:     f.ImageURL,
		Website:      f.Website,
		ContactEmail: f.ContactEmail,
		ContactPhone: f.ContactPhone,
		CreatedAt:    f.CreatedAt,
	}
}

func NewFestivals(festivals []domain.Festival) []Festival {
	out := make([]Festival, 0, len(festivals))
	for _, f := range festivals {
		out = append(out, NewFestival(f))
	}
	return out
}
