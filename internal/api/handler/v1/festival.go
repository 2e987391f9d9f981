package v1

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/vietanh2810/festivals-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/festivals-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/festivals-api/internal/domain"
	"github.com/vietanh2810/festivals-api/internal/filestore"
	"github.com/vietanh2810/festivals-api/internal/service"
)

const imageFormField = "image"

type FestivalService interface {
	ListFestivals(ctx context.Context, region domain.Region) ([]domain.Festival, error)
	GetFestival(ctx context.Context, id uint) (domain.Festival, error)
	CreateFestival(ctx context.Context, festival domain.Festival, image *domain.Image) (uint, error)
	UpdateFestival(ctx context.Context, id uint, festival domain.Festival, image *domain.Image, existingImage *string) (int64, error)
	DeleteFestival(ctx context.Context, id uint) (int64, error)
}

type FestivalHandler struct {
	svc          FestivalService
	maxImageSize int64
}

func NewFestivalHandler(svc FestivalService, maxImageSize int64) *FestivalHandler {
	return &FestivalHandler{
		svc:          svc,
		maxImageSize: maxImageSize,
	}
}

// HandleGetFestivals godoc
// @Summary      List festivals
// @Description  Lists all festivals ordered by start date, optionally filtered by region. "all" disables the filter.
// @Tags         festivals
// @Produce      json
// @Param        region  query     string  false  "Region"  Enums(all, tirol, bayern)
// @Success      200  {array}   response.Festival
// @Failure      500  {object}  response.Err
// @Router       /festivals [get]
func (h *FestivalHandler) HandleGetFestivals(ctx *gin.Context) {
	region := domain.Region(ctx.Query("region"))

	festivals, err := h.svc.ListFestivals(ctx.Request.Context(), region)
	if err != nil {
		err = fmt.Errorf("HandleGetFestivals -> h.svc.ListFestivals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewFestivals(festivals))
}

// HandleGetFestival godoc
// @Summary      Get a festival
// @Tags         festivals
// @Produce      json
// @Param        festivalID  path      int  true  "Festival ID"
// @Success      200  {object}  response.Festival
// @Failure      400  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals/{festivalID} [get]
func (h *FestivalHandler) HandleGetFestival(ctx *gin.Context) {
	id, respErr := festivalIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	festival, err := h.svc.GetFestival(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("Festival", "id", id))
			return
		}

		err = fmt.Errorf("HandleGetFestival -> h.svc.GetFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewFestival(festival))
}

// HandleCreateFestival godoc
// @Summary      Create a festival
// @Tags         festivals
// @Accept       mpfd
// @Produce      json
// @Param        name           formData  string  true   "Name"
// @Param        description    formData  string  false  "Description"
// @Param        location       formData  string  true   "Location"
// @Param        address        formData  string  false  "Address"
// @Param        latitude       formData  number  false  "Latitude"
// @Param        longitude      formData  number  false  "Longitude"
// @Param        start_date     formData  string  true   "Start date (YYYY-MM-DD)"
// @Param        end_date       formData  string  true   "End date (YYYY-MM-DD)"
// @Param        region         formData  string  true   "Region"  Enums(tirol, bayern)
// @Param        website        formData  string  false  "Website"
// @Param        contact_email  formData  string  false  "Contact email"
// @Param        contact_phone  formData  string  false  "Contact phone"
// @Param        image          formData  file    false  "Image"
// @Success      200  {object}  response.CreatedResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      413  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals [post]
// @Security     BearerAuth
func (h *FestivalHandler) HandleCreateFestival(ctx *gin.Context) {
	_, festival, respErr := bindFestival(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	image, closeImage, respErr := h.imageFromForm(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	defer closeImage()

	id, err := h.svc.CreateFestival(ctx.Request.Context(), festival, image)
	if err != nil {
		if errors.Is(err, filestore.ErrUnsupportedType) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleCreateFestival -> h.svc.CreateFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.CreatedResponse{ID: id})
}

// HandleUpdateFestival godoc
// @Summary      Replace a festival
// @Description  Replaces every field. Without a new image the existing_image value is stored as the image reference.
// @Tags         festivals
// @Accept       mpfd
// @Produce      json
// @Param        festivalID      path      int     true   "Festival ID"
// @Param        name            formData  string  true   "Name"
// @Param        description     formData  string  false  "Description"
// @Param        location        formData  string  true   "Location"
// @Param        address         formData  string  false  "Address"
// @Param        latitude        formData  number  false  "Latitude"
// @Param        longitude       formData  number  false  "Longitude"
// @Param        start_date      formData  string  true   "Start date (YYYY-MM-DD)"
// @Param        end_date        formData  string  true   "End date (YYYY-MM-DD)"
// @Param        region          formData  string  true   "Region"  Enums(tirol, bayern)
// @Param        website         formData  string  false  "Website"
// @Param        contact_email   formData  string  false  "Contact email"
// @Param        contact_phone   formData  string  false  "Contact phone"
// @Param        existing_image  formData  string  false  "Current image reference"
// @Param        image           formData  file    false  "Image"
// @Success      200  {object}  response.ChangesResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      413  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals/{festivalID} [put]
// @Security     BearerAuth
func (h *FestivalHandler) HandleUpdateFestival(ctx *gin.Context) {
	id, respErr := festivalIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	req, festival, respErr := bindFestival(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	image, closeImage, respErr := h.imageFromForm(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}
	defer closeImage()

	changes, err := h.svc.UpdateFestival(ctx.Request.Context(), id, festival, image, req.ExistingImageRef())
	if err != nil {
		if errors.Is(err, filestore.ErrUnsupportedType) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("HandleUpdateFestival -> h.svc.UpdateFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ChangesResponse{Changes: changes})
}

// HandleDeleteFestival godoc
// @Summary      Delete a festival
// @Tags         festivals
// @Produce      json
// @Param        festivalID  path      int  true  "Festival ID"
// @Success      200  {object}  response.ChangesResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /festivals/{festivalID} [delete]
// @Security     BearerAuth
func (h *FestivalHandler) HandleDeleteFestival(ctx *gin.Context) {
	id, respErr := festivalIDParam(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	changes, err := h.svc.DeleteFestival(ctx.Request.Context(), id)
	if err != nil {
		err = fmt.Errorf("HandleDeleteFestival -> h.svc.DeleteFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.ChangesResponse{Changes: changes})
}

func festivalIDParam(ctx *gin.Context) (uint, *response.Err) {
	id, err := strconv.ParseUint(ctx.Param("festivalID"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid festival ID: %w", err))
	}

	return uint(id), nil
}

func bindFestival(ctx *gin.Context) (request.FestivalRequest, domain.Festival, *response.Err) {
	var req request.FestivalRequest
	if err := ctx.ShouldBindWith(&req, binding.Form); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return req, domain.Festival{}, response.ErrRequestTooLarge(err)
		}
		return req, domain.Festival{}, response.ErrBadRequest(err)
	}

	if err := req.Validate(); err != nil {
		return req, domain.Festival{}, response.ErrBadRequest(err)
	}

	festival, err := req.ToDomain()
	if err != nil {
		return req, domain.Festival{}, response.ErrBadRequest(err)
	}

	return req, festival, nil
}

// imageFromForm opens the optional uploaded image. The returned close func
// is always safe to call.
func (h *FestivalHandler) imageFromForm(ctx *gin.Context) (*domain.Image, func(), *response.Err) {
	noop := func() {}

	header, err := ctx.FormFile(imageFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, noop, nil
		}
		return nil, noop, response.ErrBadRequest(fmt.Errorf("invalid image upload: %w", err))
	}

	if h.maxImageSize > 0 && header.Size > h.maxImageSize {
		return nil, noop, response.ErrBadRequest(fmt.Errorf("image exceeds the maximum size of %d bytes", h.maxImageSize))
	}
	if _, err = filestore.Extension(header.Filename); err != nil {
		return nil, noop, response.ErrBadRequest(err)
	}

	file, err := header.Open()
	if err != nil {
		return nil, noop, response.ErrInternalServerError(fmt.Errorf("header.Open -> %w", err))
	}

	return &domain.Image{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}
