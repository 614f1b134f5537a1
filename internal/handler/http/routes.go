package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router: middleware chain, public routes and one CRUD block
// per registered resource.
func (h *Handler) Init() chi.Router {
	router := chi.NewRouter()

	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(h.auth)

	router.Get("/healthz", h.health)

	router.Route("/api/public", func(r chi.Router) {
		r.Post("/login", h.login)
		r.Post("/logout", h.logout)
	})

	for _, name := range h.registry.Names() {
		gateway, ok := h.services.Records[name]
		if !ok {
			continue
		}
		rh := h.newResourceHandler(gateway)

		router.Route("/api/"+name, func(r chi.Router) {
			r.Get("/", rh.list)
			r.Post("/", rh.create)
			r.Get("/buscar", rh.search)
			r.Get("/pagina/{pagina}/{porPagina}", rh.paginated)
			r.Get("/{id}", rh.get)
			r.Put("/{id}", rh.update)
			r.Delete("/{id}", rh.remove)
		})
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respuestaError(w, r, http.StatusNotFound, "Ruta no encontrada", nil)
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respuestaError(w, r, http.StatusMethodNotAllowed, "Método no permitido", nil)
	})

	return router
}
