package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/festivals-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/festivals-api/internal/pkg/jwthelper"
)

const ClaimsKey = "claims"

var (
	errMissingToken   = errors.New("missing bearer token")
	errMalformedToken = errors.New("authorization header must be \"Bearer <token>\"")
)

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

// VerifyJWT rejects requests without a bearer token with 401 and requests
// whose token fails verification with 403. Verified claims are stored under
// ClaimsKey.
func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := bearerToken(ctx.GetHeader("Authorization"))
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, tokenString)
		if err != nil {
			if errors.Is(err, jwthelper.ErrMalformedToken) {
				response.RenderErr(ctx, response.ErrUnauthorized(err))
				return
			}

			response.RenderErr(ctx, response.ErrForbidden(err))
			return
		}

		ctx.Set(ClaimsKey, claims)
		ctx.Next()
	}
}

// GetClaims returns the claims stored by VerifyJWT.
func GetClaims(ctx *gin.Context) (*jwthelper.Claims, bool) {
	v, ok := ctx.Get(ClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*jwthelper.Claims)
	return claims, ok
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", errMalformedToken
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return "", errMissingToken
	}

	return token, nil
}
