package middleware

import (
	"io"
	"net/http"

	goGuard "github.com/MrEthical07/goGuard"
)

// RequireTokenAPI returns middleware for XHR and API routes: clients without
// a token get 401 with a JSON body instead of a redirect.
func RequireTokenAPI(engine *goGuard.Engine, opts ...Option) func(http.Handler) http.Handler {
	opts = append(opts, WithDenyHandler(func(w http.ResponseWriter, _ *http.Request, _ goGuard.Decision) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"error":"unauthorized"}`)
	}))
	return Guard(engine, opts...)
}
