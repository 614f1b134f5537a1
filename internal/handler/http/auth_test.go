package http

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrodas/parkings-api/internal/service"
	"github.com/jmrodas/parkings-api/models"
)

func TestLogin(t *testing.T) {
	t.Run("valid credentials return token and identity", func(t *testing.T) {
		h, _, _ := newTestHandler()

		body := `{"usuario":"ana","password":"secreto123"}`
		rec := doJSONRequest(t, h, http.MethodPost, "/api/public/login", body)
		require.Equal(t, http.StatusOK, rec.Code)

		respuesta := decodeRespuesta(t, rec)
		assert.Equal(t, models.EstadoExito, respuesta.Estado)

		datos, ok := respuesta.Datos.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "token-valido", datos["token"])

		usuario, ok := datos["usuario"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "Ana", usuario["nombre"])
		assert.Equal(t, "admin", usuario["rol"])
	})

	t.Run("login is public", func(t *testing.T) {
		h, _, auth := newTestHandler()

		req := `{"usuario":"ana","password":"secreto123"}`
		rec := doRequestWithBody(t, h, http.MethodPost, "/api/public/login", req, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, auth.loginCalled)
	})

	t.Run("bad credentials", func(t *testing.T) {
		h, _, auth := newTestHandler()
		auth.loginErr = service.ErrInvalidCredentials

		body := `{"usuario":"ana","password":"mala"}`
		rec := doJSONRequest(t, h, http.MethodPost, "/api/public/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Credenciales inválidas", decodeRespuesta(t, rec).Mensaje)
	})

	t.Run("missing fields", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := doJSONRequest(t, h, http.MethodPost, "/api/public/login", `{"usuario":"ana"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Usuario y password son requeridos", decodeRespuesta(t, rec).Mensaje)
	})

	t.Run("malformed body", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := doJSONRequest(t, h, http.MethodPost, "/api/public/login", `{"usuario"`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Formato JSON inválido", decodeRespuesta(t, rec).Mensaje)
	})
}

func TestLogout(t *testing.T) {
	t.Run("revokes the presented token", func(t *testing.T) {
		h, _, auth := newTestHandler()

		rec := doRequestWithBody(t, h, http.MethodPost, "/api/public/logout", "", "Bearer token-valido")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Sesión cerrada correctamente", decodeRespuesta(t, rec).Mensaje)
		assert.Equal(t, []string{"token-valido"}, auth.revoked)
	})

	t.Run("missing header", func(t *testing.T) {
		h, _, _ := newTestHandler()

		rec := doRequestWithBody(t, h, http.MethodPost, "/api/public/logout", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Token no proporcionado", decodeRespuesta(t, rec).Mensaje)
	})
}

func TestHealth(t *testing.T) {
	h, _, _ := newTestHandler()

	rec := doRequestWithBody(t, h, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	respuesta := decodeRespuesta(t, rec)
	assert.Equal(t, models.EstadoExito, respuesta.Estado)
}
