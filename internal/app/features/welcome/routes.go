package welcome

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeWelcome)
	r.Post("/role", h.HandleRolePost)
	return r
}
