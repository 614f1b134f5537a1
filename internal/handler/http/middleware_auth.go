package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/service"
	"github.com/jmrodas/parkings-api/internal/utils"
)

// publicPrefixes lists the route prefixes that skip token verification.
var publicPrefixes = []string{
	"/api/public/",
	"/healthz",
}

func isPublicRoute(path string) bool {
	for _, prefix := range publicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}

	return false
}

// auth gates every non-public route behind bearer-token verification and
// attaches the authenticated identity to the request context.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicRoute(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		signed, err := getTokenFromAuthHeader(r)
		if err != nil {
			log.Debug().Err(err).Msg("rejected request without usable token")
			respuestaError(w, r, http.StatusUnauthorized, "Token no proporcionado", nil)
			return
		}

		identity, err := h.services.Auth.Verify(r.Context(), signed)
		if err != nil {
			log.Debug().Err(err).Msg("rejected request with invalid token")
			respuestaError(w, r, http.StatusUnauthorized, verifyErrorMessage(err), nil)
			return
		}

		ctx := context.WithValue(r.Context(), utils.IdentityCtxKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the token from "Authorization: Bearer x".
func getTokenFromAuthHeader(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrEmptyAuthorizationHeader
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", ErrInvalidAuthorizationHeader
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrEmptyToken
	}

	return token, nil
}

func verifyErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenIsExpired):
		return "Token expirado"
	case errors.Is(err, service.ErrTokenRevoked):
		return "Token revocado"
	case errors.Is(err, service.ErrTokenNotFound):
		return "Token no reconocido"
	default:
		return "Token inválido"
	}
}
