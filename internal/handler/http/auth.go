package http

import (
	"encoding/json"
	"net/http"

	"github.com/jmrodas/parkings-api/internal/logger"
)

type loginRequest struct {
	Usuario  string `json:"usuario"`
	Password string `json:"password"`
}

// login serves POST /api/public/login.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respuestaError(w, r, http.StatusBadRequest, "Formato JSON inválido", nil)
		return
	}
	if req.Usuario == "" || req.Password == "" {
		respuestaError(w, r, http.StatusBadRequest, "Usuario y password son requeridos", nil)
		return
	}

	identity, token, err := h.services.Auth.Login(r.Context(), req.Usuario, req.Password)
	if err != nil {
		h.renderError(w, r, err, nil)
		return
	}

	respuestaExitoConMensaje(w, r, http.StatusOK, "Sesión iniciada correctamente", map[string]any{
		"token":   token,
		"usuario": identity,
	})
}

// logout serves POST /api/public/logout. The route is public so expired
// tokens can still be revoked; an unusable header is still a 401.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	signed, err := getTokenFromAuthHeader(r)
	if err != nil {
		respuestaError(w, r, http.StatusUnauthorized, "Token no proporcionado", nil)
		return
	}

	if err := h.services.Auth.Invalidate(r.Context(), signed); err != nil {
		h.renderError(w, r, err, nil)
		return
	}

	logger.FromRequest(r).Info().Msg("token revoked by logout")
	respuestaExitoConMensaje(w, r, http.StatusOK, "Sesión cerrada correctamente", nil)
}

// health serves GET /healthz.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respuestaExito(w, r, http.StatusOK, map[string]string{"estado": "ok"})
}
