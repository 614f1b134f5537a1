package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmrodas/parkings-api/models"
)

// TestAPIFlow exercises the full router over a real HTTP server: login,
// gated CRUD round trip, logout.
func TestAPIFlow(t *testing.T) {
	h, _, auth := newTestHandler()
	server := httptest.NewServer(h.Init())
	defer server.Close()

	client := resty.New().SetBaseURL(server.URL)

	// Unauthenticated access is rejected.
	var rechazo models.Respuesta
	resp, err := client.R().SetResult(&rechazo).SetError(&rechazo).Get("/api/parkings")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())
	assert.Equal(t, models.EstadoError, rechazo.Estado)

	// Login.
	var loginResp models.Respuesta
	resp, err = client.R().
		SetBody(map[string]string{"usuario": "ana", "password": "secreto123"}).
		SetResult(&loginResp).
		Post("/api/public/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	datos, ok := loginResp.Datos.(map[string]any)
	require.True(t, ok)
	token, ok := datos["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	authed := client.SetAuthToken(token)

	// Create.
	var createResp models.Respuesta
	resp, err = authed.R().
		SetBody(map[string]any{
			"nombre":          "Parking Centro",
			"direccion":       "Calle Mayor 1",
			"capacidad_total": 120,
		}).
		SetResult(&createResp).
		Post("/api/parkings")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	created, ok := createResp.Datos.(map[string]any)
	require.True(t, ok)
	id, ok := created["id"].(float64)
	require.True(t, ok)

	// Read back.
	var getResp models.Respuesta
	resp, err = authed.R().SetResult(&getResp).Get("/api/parkings/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	fetched, ok := getResp.Datos.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, id, fetched["id"])
	assert.Equal(t, "Parking Centro", fetched["nombre"])

	// Update.
	var updateResp models.Respuesta
	resp, err = authed.R().
		SetBody(map[string]any{"plazas_ocupadas": 15}).
		SetResult(&updateResp).
		Put("/api/parkings/1")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	updated, ok := updateResp.Datos.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(15), updated["plazas_ocupadas"])

	// Delete.
	resp, err = authed.R().Delete("/api/parkings/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())

	resp, err = authed.R().Get("/api/parkings/1")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())

	// Logout revokes the token server-side.
	resp, err = authed.R().Post("/api/public/logout")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, auth.revoked, token)
}
