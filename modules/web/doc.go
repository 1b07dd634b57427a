// Package web is the presentation shell of the starter application: the
// public hero page, the login and signup forms, and the guarded dashboard
// and profile pages, all rendered server-side from embedded html/template
// views.
//
// The package owns no authentication logic. It consumes the session
// manager's projection (User, IsAuthenticated) for the navbar and the route
// guard, and invokes the manager's operations from its form handlers.
// Transient UI state (submitted form values echoed after a failure, error
// banners, success notices) lives entirely in this package.
package web
