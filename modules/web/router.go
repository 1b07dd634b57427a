package web

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Router mounts the shell's routes. Public pages sit at the top level;
// everything under the guarded group requires an authenticated session.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", h.home)
	r.Get("/login", h.loginForm)
	r.Post("/login", h.loginSubmit)
	r.Get("/signup", h.signupForm)
	r.Post("/signup", h.signupSubmit)
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/dashboard", h.dashboard)
		r.Get("/profile", h.profileForm)
		r.Post("/profile", h.profileSubmit)
	})

	return r
}
