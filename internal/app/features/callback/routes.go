// internal/app/features/callback/routes.go
package callback

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter mounted under /callback.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.ServeCallback)
	return r
}
