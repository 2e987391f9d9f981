package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/festivals-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/festivals-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/festivals-api/internal/api/middleware"
	"github.com/vietanh2810/festivals-api/internal/config"
	"github.com/vietanh2810/festivals-api/internal/domain"
	"github.com/vietanh2810/festivals-api/internal/pkg/jwthelper"
	"github.com/vietanh2810/festivals-api/internal/service"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (domain.Admin, error)
}

type AuthHandler struct {
	conf *config.APIConfig
	svc  AuthService
}

func NewAuthHandler(conf *config.APIConfig, svc AuthService) *AuthHandler {
	return &AuthHandler{
		conf: conf,
		svc:  svc,
	}
}

// HandleLogin godoc
// @Summary      Login as admin
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request   body      request.LoginRequest true "request body"
// @Success      200      {object}   response.LoginResponse
// @Failure      401      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	// Unreadable bodies and missing fields are reported like any other
	// failed login.
	req := request.LoginRequest{}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrWrongCredentials(err))

		return
	}

	admin, err := h.svc.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))

			return
		}

		err = fmt.Errorf("v1.HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	token, err := jwthelper.GenerateToken([]byte(h.conf.JWTSigningKey), admin.ID, admin.Username, h.conf.TokenTTL)
	if err != nil {
		err = fmt.Errorf("v1.HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{
		Token: token,
	})
}

// HandleMe godoc
// @Summary      Describe the current token
// @Tags         auth
// @Produce      json
// @Success      200      {object}   response.MeResponse
// @Failure      401      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Router       /auth/me [get]
// @Security     BearerAuth
func (h *AuthHandler) HandleMe(ctx *gin.Context) {
	claims, ok := middleware.GetClaims(ctx)
	if !ok {
		response.RenderErr(ctx, response.ErrUnauthorized(errors.New("no claims in context")))
		return
	}

	var expiresAt string
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time.UTC().Format(time.RFC3339)
	}

	ctx.JSON(http.StatusOK, response.MeResponse{
		ID:        claims.UserID,
		Username:  claims.Username,
		ExpiresAt: expiresAt,
	})
}
