package signup

import "github.com/go-chi/chi/v5"

func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeSignUp)
	r.Post("/", h.HandleSignUpPost)
	r.Post("/password-strength", h.HandlePasswordStrength)
	return r
}
