package web

import (
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/webstarter/webstarter/pkg/apiclient"
	"github.com/webstarter/webstarter/pkg/authsession"
)

// Handler serves the starter shell: the public hero page, the login and
// signup forms, and the guarded dashboard and profile pages. It is a pure
// consumer of the session manager's projection; all authentication decisions
// live in pkg/authsession.
type Handler struct {
	mgr     *authsession.Manager
	api     apiclient.Client
	log     *slog.Logger
	appName string
	tmpl    map[string]*template.Template
}

// Option configures the Handler.
type Option func(*Handler)

// WithLogger attaches a logger for handler-level events.
func WithLogger(log *slog.Logger) Option {
	return func(h *Handler) {
		if log != nil {
			h.log = log
		}
	}
}

// WithAppName sets the name rendered in the navbar and page titles.
func WithAppName(name string) Option {
	return func(h *Handler) {
		if name != "" {
			h.appName = name
		}
	}
}

// NewHandler parses the embedded templates and returns a ready handler.
func NewHandler(mgr *authsession.Manager, api apiclient.Client, opts ...Option) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	h := &Handler{
		mgr:     mgr,
		api:     api,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		appName: "Bootstrap Starter",
		tmpl:    tmpl,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// home renders the public hero page.
func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "home", pageData{Title: "Welcome"})
}

// loginForm renders the login page; already-authenticated visitors go
// straight to the dashboard.
func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	if h.mgr.IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login", pageData{Title: "Log in"})
}

// loginSubmit exchanges the form credentials for a token pair, hands the
// pair to the session manager, and redirects to the dashboard. Any failure
// re-renders the form with the displayable message.
func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "login", pageData{
			Title: "Log in",
			Error: "Invalid form submission.",
		})
		return
	}

	creds := apiclient.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	echo := map[string]string{"username": creds.Username}

	pair, err := h.api.Login(r.Context(), creds)
	if err != nil {
		h.render(w, http.StatusUnprocessableEntity, "login", pageData{
			Title: "Log in",
			Error: apiclient.Message(err),
			Form:  echo,
		})
		return
	}

	if err := h.mgr.Login(r.Context(), pair.AccessToken, pair.RefreshToken); err != nil {
		h.render(w, http.StatusUnprocessableEntity, "login", pageData{
			Title: "Log in",
			Error: apiclient.Message(err),
			Form:  echo,
		})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// signupForm renders the registration page.
func (h *Handler) signupForm(w http.ResponseWriter, r *http.Request) {
	if h.mgr.IsAuthenticated() {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "signup", pageData{Title: "Sign up"})
}

// signupSubmit registers the account and logs the new user straight in with
// the returned token pair.
func (h *Handler) signupSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "signup", pageData{
			Title: "Sign up",
			Error: "Invalid form submission.",
		})
		return
	}

	reg := apiclient.Registration{
		Username: r.PostFormValue("username"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}

	echo := map[string]string{"username": reg.Username, "email": reg.Email}

	pair, err := h.api.Register(r.Context(), reg)
	if err != nil {
		h.render(w, http.StatusUnprocessableEntity, "signup", pageData{
			Title: "Sign up",
			Error: apiclient.Message(err),
			Form:  echo,
		})
		return
	}

	if err := h.mgr.Login(r.Context(), pair.AccessToken, pair.RefreshToken); err != nil {
		h.render(w, http.StatusUnprocessableEntity, "signup", pageData{
			Title: "Sign up",
			Error: apiclient.Message(err),
			Form:  echo,
		})
		return
	}

	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// dashboard renders the guarded dashboard page.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "dashboard", pageData{Title: "Dashboard"})
}

// profileForm renders the guarded profile page pre-filled with the current
// snapshot.
func (h *Handler) profileForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, "profile", pageData{Title: "Profile"})
}

// profileSubmit applies the edits through the session manager. Username and
// email are carried through unchanged; the server's returned representation
// replaces the local snapshot wholesale.
func (h *Handler) profileSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "profile", pageData{
			Title: "Profile",
			Error: "Invalid form submission.",
		})
		return
	}

	current := h.mgr.User()
	if current == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	firstName := r.PostFormValue("first_name")
	lastName := r.PostFormValue("last_name")
	bio := r.PostFormValue("bio")
	mobile := r.PostFormValue("mobile")

	update := apiclient.ProfileUpdate{
		Username:  &current.Username,
		Email:     &current.Email,
		FirstName: &firstName,
		LastName:  &lastName,
		Bio:       &bio,
		Mobile:    &mobile,
	}

	user, err := h.mgr.UpdateProfile(r.Context(), update)
	if err != nil {
		h.render(w, http.StatusUnprocessableEntity, "profile", pageData{
			Title: "Profile",
			Error: apiclient.Message(err),
		})
		return
	}

	h.render(w, http.StatusOK, "profile", pageData{
		Title:  "Profile",
		User:   user,
		Notice: "Profile updated.",
	})
}

// logout invalidates the token server-side on a best-effort basis, then
// clears the local session. The local logout happens regardless of whether
// the gateway call succeeded.
func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.mgr.AccessToken(); ok {
		if err := h.api.Logout(r.Context(), token); err != nil {
			h.log.Warn("server-side logout failed", "error", err)
		}
	}
	h.mgr.Logout()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
