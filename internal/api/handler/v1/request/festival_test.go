package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vietanh2810/festivals-api/internal/domain"
)

func validRequest() FestivalRequest {
	return FestivalRequest{
		Name:      " Almabtrieb ",
		Location:  "Innsbruck",
		StartDate: "2025-09-01",
		EndDate:   "2025-09-03",
		Region:    "tirol",
	}
}

func TestFestivalRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *FestivalRequest)
		wantErr bool
	}{
		{"valid", func(r *FestivalRequest) {}, false},
		{"missing name", func(r *FestivalRequest) { r.Name = "   " }, true},
		{"missing location", func(r *FestivalRequest) { r.Location = "" }, true},
		{"bad start date", func(r *FestivalRequest) { r.StartDate = "01/09/2025" }, true},
		{"missing end date", func(r *FestivalRequest) { r.EndDate = "" }, true},
		{"unknown region", func(r *FestivalRequest) { r.Region = "wien" }, true},
		{"region all is not storable", func(r *FestivalRequest) { r.Region = "all" }, true},
		{"latitude only", func(r *FestivalRequest) { r.Latitude = "47.26" }, false},
		{"latitude not a number", func(r *FestivalRequest) { r.Latitude = "north" }, true},
		{"latitude NaN", func(r *FestivalRequest) { r.Latitude = "NaN" }, true},
		{"latitude lower-case nan", func(r *FestivalRequest) { r.Latitude = "nan" }, true},
		{"latitude infinite", func(r *FestivalRequest) { r.Latitude = "+Inf" }, true},
		{"longitude infinite", func(r *FestivalRequest) { r.Longitude = "-Infinity" }, true},
		{"latitude out of range", func(r *FestivalRequest) { r.Latitude = "91" }, true},
		{"longitude out of range", func(r *FestivalRequest) { r.Longitude = "-181" }, true},
		{"end before start is accepted", func(r *FestivalRequest) { r.EndDate = "2025-08-01" }, false},
		{"contact fields are free text", func(r *FestivalRequest) { r.ContactEmail = "not-an-email" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFestivalRequest_ToDomain(t *testing.T) {
	req := validRequest()
	req.Longitude = "11.39"
	req.Website = "https://innsbruck.info"
	req.Description = "  "
	require.NoError(t, req.Validate())

	f, err := req.ToDomain()
	require.NoError(t, err)

	assert.Equal(t, "Almabtrieb", f.Name)
	assert.Nil(t, f.Description)
	assert.Nil(t, f.Latitude)
	require.NotNil(t, f.Longitude)
	assert.InDelta(t, 11.39, *f.Longitude, 1e-9)
	assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), f.StartDate)
	assert.Equal(t, domain.RegionTirol, f.Region)
	require.NotNil(t, f.Website)
	assert.Equal(t, "https://innsbruck.info", *f.Website)
	assert.Nil(t, f.ImageURL)
}

func TestFestivalRequest_ToDomain_RejectsNonFinite(t *testing.T) {
	req := validRequest()
	req.Latitude = "NaN"

	_, err := req.ToDomain()
	assert.ErrorIs(t, err, errNotANumber)

	req = validRequest()
	req.Longitude = "Inf"

	_, err = req.ToDomain()
	assert.ErrorIs(t, err, errNotANumber)
}

func TestFestivalRequest_ExistingImageRef(t *testing.T) {
	for _, v := range []string{"", "null", "undefined"} {
		req := FestivalRequest{ExistingImage: v}
		assert.Nil(t, req.ExistingImageRef(), v)
	}

	req := FestivalRequest{ExistingImage: "/uploads/1.png"}
	require.NotNil(t, req.ExistingImageRef())
	assert.Equal(t, "/uploads/1.png", *req.ExistingImageRef())
}

func TestLoginRequest_Validate(t *testing.T) {
	assert.NoError(t, (&LoginRequest{Username: "admin", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Username: "", Password: "x"}).Validate())
	assert.Error(t, (&LoginRequest{Username: "admin"}).Validate())
}
