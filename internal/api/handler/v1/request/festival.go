package request

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/festivals-api/internal/domain"
)

var (
	errNotANumber = errors.New("must be a finite number")
)

// FestivalRequest is the multipart form sent on create and update. All
// values arrive as strings and are coerced by ToDomain.
type FestivalRequest struct {
	Name         string `form:"name"`
	Description  string `form:"description"`
	Location     string `form:"location"`
	Address      string `form:"address"`
	Latitude     string `form:"latitude"`
	Longitude    string `form:"longitude"`
	StartDate    string `form:"start_date"`
	EndDate      string `form:"end_date"`
	Region       string `form:"region"`
	Website      string `form:"website"`
	ContactEmail string `form:"contact_email"`
	ContactPhone string `form:"contact_phone"`

	// ExistingImage is only read on update; it is written back when no new
	// image is uploaded.
	ExistingImage string `form:"existing_image"`
}

func (req *FestivalRequest) Validate() error {
	req.trim()

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.Location, validation.Required, validation.Length(1, 200)),
		validation.Field(&req.StartDate, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.EndDate, validation.Required, validation.Date(domain.DateLayout)),
		validation.Field(&req.Region, validation.Required, validation.In(regionValues()...)),
		validation.Field(&req.Latitude, validation.By(floatBetween(-90, 90))),
		validation.Field(&req.Longitude, validation.By(floatBetween(-180, 180))),
	)
}

// ToDomain converts a validated request. Empty optional fields become nil.
func (req *FestivalRequest) ToDomain() (domain.Festival, error) {
	startDate, err := time.Parse(domain.DateLayout, req.StartDate)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("start_date: %w", err)
	}
	endDate, err := time.Parse(domain.DateLayout, req.EndDate)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("end_date: %w", err)
	}
	latitude, err := optionalFloat(req.Latitude)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("latitude: %w", err)
	}
	longitude, err := optionalFloat(req.Longitude)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("longitude: %w", err)
	}

	return domain.Festival{
		Name:         req.Name,
		Description:  optionalString(req.Description),
		Location:     req.Location,
		Address:      optionalString(req.Address),
		Latitude:     latitude,
		Longitude:    longitude,
		StartDate:    startDate,
		EndDate:      endDate,
		Region:       domain.Region(req.Region),
		Website:      optionalString(req.Website),
		ContactEmail: optionalString(req.ContactEmail),
		ContactPhone: optionalString(req.ContactPhone),
	}, nil
}

// ExistingImageRef returns the image reference echoed back by the client.
// Browsers serialise a missing value as "null" or "undefined".
func (req *FestivalRequest) ExistingImageRef() *string {
	switch req.ExistingImage {
	case "", "null", "undefined":
		return nil
	}
	return optionalString(req.ExistingImage)
}

func (req *FestivalRequest) trim() {
	for _, field := range []*string{
		&req.Name, &req.Description, &req.Location, &req.Address,
		&req.Latitude, &req.Longitude, &req.StartDate, &req.EndDate,
		&req.Region, &req.Website, &req.ContactEmail, &req.ContactPhone,
		&req.ExistingImage,
	} {
		*field = strings.TrimSpace(*field)
	}
}

func regionValues() []interface{} {
	values := make([]interface{}, 0, len(domain.Regions))
	for _, r := range domain.Regions {
		values = append(values, string(r))
	}
	return values
}

func floatBetween(min, max float64) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		f, err := parseFinite(s)
		if err != nil {
			return err
		}
		if f < min || f > max {
			return fmt.Errorf("must be between %v and %v", min, max)
		}
		return nil
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	f, err := parseFinite(s)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// parseFinite rejects NaN and the infinities, which ParseFloat accepts.
func parseFinite(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotANumber
	}
	return f, nil
}
