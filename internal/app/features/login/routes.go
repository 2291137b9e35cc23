package login

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSignIn)
	r.Post("/", h.HandleSignInPost)
	return r
}
