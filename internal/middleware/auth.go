package middleware

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	inHttp "github.com/Alturino/storefront/internal/http"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/token"
)

// Auth verifies the bearer token and stores its claims on the request context.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
			c := logger.WithContext(r.Context())

			authorization := r.Header.Get(inHttp.HeaderAuthorization)
			scheme, bearer, found := strings.Cut(authorization, " ")
			if authorization == "" || !found || !strings.EqualFold(scheme, "bearer") || bearer == "" {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrEmptyAuth)
				return
			}

			claims, err := token.VerifyToken(c, secretKey, bearer)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrTokenInvalid)
				return
			}

			logger = logger.With().
				Str(log.KeyUserID, claims.Subject).
				Str(log.KeyRole, claims.Role).
				Logger()
			c = token.AttachClaims(logger.WithContext(c), claims)
			next.ServeHTTP(w, r.WithContext(c))
		})
	}
}

// RequireRole must run after Auth.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := r.Context()
			logger := zerolog.Ctx(c).With().Str(log.KeyTag, "middleware RequireRole").Logger()

			claims, ok := token.ClaimsFromContext(c)
			if !ok {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrEmptyAuth)
				return
			}
			if !slices.Contains(roles, claims.Role) {
				err := fmt.Errorf("role=%s with error=%w", claims.Role, inErrors.ErrForbidden)
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
