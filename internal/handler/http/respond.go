package http

import (
	"net/http"

	"github.com/jmrodas/parkings-api/internal/utils"
	"github.com/jmrodas/parkings-api/models"
)

func respuestaExito(w http.ResponseWriter, r *http.Request, status int, datos any) {
	utils.WriteJSON(w, r, status, models.Exito(datos))
}

func respuestaExitoConMensaje(w http.ResponseWriter, r *http.Request, status int, mensaje string, datos any) {
	utils.WriteJSON(w, r, status, models.ExitoConMensaje(mensaje, datos))
}

func respuestaError(w http.ResponseWriter, r *http.Request, status int, mensaje string, detalles any) {
	utils.WriteJSON(w, r, status, models.Error(mensaje, detalles))
}

// respondRaw writes an already-assembled envelope, used when the caller
// needs to attach metadata.
func respondRaw(w http.ResponseWriter, r *http.Request, status int, respuesta models.Respuesta) {
	utils.WriteJSON(w, r, status, respuesta)
}
