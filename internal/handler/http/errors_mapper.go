package http

import (
	"errors"
	"net/http"

	"github.com/jmrodas/parkings-api/internal/logger"
	"github.com/jmrodas/parkings-api/internal/service"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/models"
)

type errorMapping struct {
	err     error
	status  int
	mensaje string
}

// errorMappings maps service and store errors to HTTP status and wire
// message. Order matters: the first match wins.
var errorMappings = []errorMapping{
	{store.ErrInvalidID, http.StatusBadRequest, "ID inválido"},
	{store.ErrRecordNotFound, http.StatusNotFound, "Registro no encontrado"},
	{store.ErrNoFields, http.StatusBadRequest, "No se proporcionaron datos"},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, "No se proporcionaron datos válidos"},
	{service.ErrInvalidOrder, http.StatusBadRequest, "Criterio de ordenación inválido"},
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "Credenciales inválidas"},
}

// renderError translates any error escaping the service layer into the wire
// envelope. Unrecognized errors become a 500 whose detail is only exposed in
// debug mode.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error, detalles any) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		respuestaError(w, r, http.StatusBadRequest, "Datos inválidos", map[string]any{
			"errores": vErr.Errores,
		})
		return
	}

	var dup *store.DuplicateError
	if errors.As(err, &dup) {
		respuestaError(w, r, http.StatusInternalServerError, "Error al guardar el registro", models.DetalleDuplicado{
			Tipo:    "duplicado",
			Campo:   dup.Campo,
			Valor:   dup.Valor,
			Mensaje: "Ya existe un registro con ese valor",
		})
		return
	}

	for _, mapping := range errorMappings {
		if errors.Is(err, mapping.err) {
			respuestaError(w, r, mapping.status, mapping.mensaje, detalles)
			return
		}
	}

	log := logger.FromRequest(r)
	log.Error().Err(err).Msg("unhandled error")

	var detail any
	if h.debug {
		detail = err.Error()
	}
	respuestaError(w, r, http.StatusInternalServerError, "Error interno del servidor", detail)
}
