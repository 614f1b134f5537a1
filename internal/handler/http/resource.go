package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jmrodas/parkings-api/internal/service"
	"github.com/jmrodas/parkings-api/internal/store"
	"github.com/jmrodas/parkings-api/models"
)

// Query parameters with reserved meaning on list endpoints; everything else
// is treated as a column filter.
const (
	paramOrden  = "orden"
	paramLimite = "limite"
	paramTexto  = "texto"
	paramCampos = "campos"
)

// resourceHandler serves the CRUD routes of one registered resource.
type resourceHandler struct {
	handler *Handler
	gateway service.RecordGateway
}

func (h *Handler) newResourceHandler(gateway service.RecordGateway) *resourceHandler {
	return &resourceHandler{handler: h, gateway: gateway}
}

// list serves GET /api/{recurso}. Query parameters are column filters, plus
// orden and limite.
func (rh *resourceHandler) list(w http.ResponseWriter, r *http.Request) {
	filters := make(map[string]string)
	for name, values := range r.URL.Query() {
		if name == paramOrden || name == paramLimite {
			continue
		}
		if len(values) == 0 || values[0] == "" {
			continue
		}
		filters[name] = values[0]
	}

	limit := 0
	if rawLimit := r.URL.Query().Get(paramLimite); rawLimit != "" {
		parsed, err := strconv.Atoi(rawLimit)
		if err != nil || parsed < 0 {
			respuestaError(w, r, http.StatusBadRequest, "Límite inválido", nil)
			return
		}
		limit = parsed
	}

	var rows []models.Row
	var err error
	if orden := r.URL.Query().Get(paramOrden); len(filters) == 0 && orden == "" && limit == 0 {
		rows, err = rh.gateway.List(r.Context())
	} else {
		rows, err = rh.gateway.ListFiltered(r.Context(), filters, orden, limit)
	}
	if err != nil {
		rh.handler.renderError(w, r, err, nil)
		return
	}

	respuestaExito(w, r, http.StatusOK, rowsOrEmpty(rows))
}

// get serves GET /api/{recurso}/{id}.
func (rh *resourceHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := rh.pathID(w, r)
	if !ok {
		return
	}

	row, err := rh.gateway.Get(r.Context(), id)
	if err != nil {
		rh.handler.renderError(w, r, err, rh.notFoundDetail(err, id))
		return
	}

	respuestaExito(w, r, http.StatusOK, row)
}

// search serves GET /api/{recurso}/buscar?texto=...&campos=a,b.
func (rh *resourceHandler) search(w http.ResponseWriter, r *http.Request) {
	text := r.URL.Query().Get(paramTexto)
	if text == "" {
		respuestaError(w, r, http.StatusBadRequest, "Texto de búsqueda no proporcionado", nil)
		return
	}

	var fields []string
	if raw := r.URL.Query().Get(paramCampos); raw != "" {
		for _, field := range strings.Split(raw, ",") {
			if field = strings.TrimSpace(field); field != "" {
				fields = append(fields, field)
			}
		}
	}

	rows, err := rh.gateway.Search(r.Context(), text, fields)
	if err != nil {
		rh.handler.renderError(w, r, err, nil)
		return
	}

	respuestaExito(w, r, http.StatusOK, rowsOrEmpty(rows))
}

// paginated serves GET /api/{recurso}/pagina/{pagina}/{porPagina}.
// Non-numeric or non-positive values fall back to page 1 and size 10.
func (rh *resourceHandler) paginated(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "pagina"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(chi.URLParam(r, "porPagina"))
	if err != nil || perPage < 1 {
		perPage = 10
	}

	rows, paginacion, err := rh.gateway.ListPaginated(r.Context(), page, perPage)
	if err != nil {
		rh.handler.renderError(w, r, err, nil)
		return
	}

	respuesta := models.Exito(rowsOrEmpty(rows))
	respuesta.Metadata = map[string]any{"paginacion": paginacion}
	respondRaw(w, r, http.StatusOK, respuesta)
}

// create serves POST /api/{recurso}.
func (rh *resourceHandler) create(w http.ResponseWriter, r *http.Request) {
	row, ok := rh.decodeBody(w, r)
	if !ok {
		return
	}

	created, err := rh.gateway.Create(r.Context(), row)
	if err != nil {
		rh.handler.renderError(w, r, err, nil)
		return
	}

	respuestaExitoConMensaje(w, r, http.StatusCreated, "Registro creado correctamente", created)
}

// update serves PUT /api/{recurso}/{id}.
func (rh *resourceHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := rh.pathID(w, r)
	if !ok {
		return
	}

	row, ok := rh.decodeBody(w, r)
	if !ok {
		return
	}

	updated, err := rh.gateway.Update(r.Context(), id, row)
	if err != nil {
		rh.handler.renderError(w, r, err, rh.notFoundDetail(err, id))
		return
	}

	respuestaExitoConMensaje(w, r, http.StatusOK, "Registro actualizado correctamente", updated)
}

// remove serves DELETE /api/{recurso}/{id}.
func (rh *resourceHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, ok := rh.pathID(w, r)
	if !ok {
		return
	}

	if err := rh.gateway.Delete(r.Context(), id); err != nil {
		rh.handler.renderError(w, r, err, rh.notFoundDetail(err, id))
		return
	}

	respuestaExitoConMensaje(w, r, http.StatusOK, "Registro eliminado correctamente", nil)
}

func (rh *resourceHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respuestaError(w, r, http.StatusBadRequest, "ID inválido", nil)
		return 0, false
	}

	return id, true
}

func (rh *resourceHandler) decodeBody(w http.ResponseWriter, r *http.Request) (models.Row, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil || len(body) == 0 {
		respuestaError(w, r, http.StatusBadRequest, "No se proporcionaron datos", nil)
		return nil, false
	}

	var row models.Row
	if err := json.Unmarshal(body, &row); err != nil {
		respuestaError(w, r, http.StatusBadRequest, "Formato JSON inválido", nil)
		return nil, false
	}
	if len(row) == 0 {
		respuestaError(w, r, http.StatusBadRequest, "No se proporcionaron datos", nil)
		return nil, false
	}

	return row, true
}

// notFoundDetail attaches {tabla, id} to not-found responses so the client
// can tell which lookup failed.
func (rh *resourceHandler) notFoundDetail(err error, id int64) any {
	if !errors.Is(err, store.ErrRecordNotFound) {
		return nil
	}

	return map[string]any{
		"tabla": rh.gateway.Resource().Name,
		"id":    id,
	}
}

// rowsOrEmpty normalizes a nil slice so empty lists marshal as [] instead of
// null.
func rowsOrEmpty(rows []models.Row) []models.Row {
	if rows == nil {
		return []models.Row{}
	}

	return rows
}
