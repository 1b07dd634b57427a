package web

import "net/http"

// requireAuth guards routes that need an authenticated session. It only
// reads the manager's projection: unauthenticated visitors are redirected to
// the login page, everyone else passes through untouched.
func (h *Handler) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.mgr.IsAuthenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
