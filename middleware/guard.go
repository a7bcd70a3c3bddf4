package middleware

import (
	"context"
	"net"
	"net/http"

	goGuard "github.com/MrEthical07/goGuard"
	"github.com/MrEthical07/goGuard/storage"
)

type tokenContextKey struct{}

// TokenFromContext returns the token that admitted the request.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenContextKey{}).(string)
	return token, ok && token != ""
}

// StoreResolver picks the store a request's token is read from.
type StoreResolver func(r *http.Request) storage.Getter

// DenyHandler writes the response for a request the guard rejected.
type DenyHandler func(w http.ResponseWriter, r *http.Request, d goGuard.Decision)

type options struct {
	resolve StoreResolver
	deny    DenyHandler
}

// Option customizes Guard.
type Option func(*options)

// WithStoreResolver overrides how the per-request store is chosen.
func WithStoreResolver(fn StoreResolver) Option {
	return func(o *options) {
		if fn != nil {
			o.resolve = fn
		}
	}
}

// WithCookieStore reads the token straight from the request cookie named by
// Guard.TokenKey instead of the engine store.
func WithCookieStore() Option {
	return WithStoreResolver(func(r *http.Request) storage.Getter {
		return storage.NewCookie(r, nil, storage.CookieOptions{})
	})
}

// WithDenyHandler overrides the response written on redirect decisions.
func WithDenyHandler(fn DenyHandler) Option {
	return func(o *options) {
		if fn != nil {
			o.deny = fn
		}
	}
}

// Guard returns middleware that lets requests with a stored token through
// and redirects the rest to the engine's login path.
func Guard(engine *goGuard.Engine, opts ...Option) func(http.Handler) http.Handler {
	cfg := engine.Config().Guard

	o := options{
		resolve: engineStoreResolver(engine),
		deny:    redirectDeny(cfg.RedirectStatus),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r = r.WithContext(requestContext(r, cfg.ClientCookie))

			d := engine.Evaluate(r.Context(), o.resolve(r))
			if !d.Allowed {
				o.deny(w, r, d)
				return
			}

			ctx := context.WithValue(r.Context(), tokenContextKey{}, d.Token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireToken is Guard with default options.
func RequireToken(engine *goGuard.Engine) func(http.Handler) http.Handler {
	return Guard(engine)
}

// engineStoreResolver serves the engine store to requests that carry a
// client id and an always-empty store to the rest.
func engineStoreResolver(engine *goGuard.Engine) StoreResolver {
	return func(r *http.Request) storage.Getter {
		store := engine.Store()
		if store == nil {
			return storage.Empty{}
		}
		if _, ok := storage.ClientIDFromContext(r.Context()); !ok {
			return storage.Empty{}
		}
		return store
	}
}

func redirectDeny(status int) DenyHandler {
	return func(w http.ResponseWriter, r *http.Request, d goGuard.Decision) {
		http.Redirect(w, r, d.RedirectTo, status)
	}
}

func requestContext(r *http.Request, clientCookie string) context.Context {
	ctx := goGuard.WithRequestPath(r.Context(), r.URL.Path)
	if ip := clientIP(r); ip != "" {
		ctx = goGuard.WithClientIP(ctx, ip)
	}
	if ck, err := r.Cookie(clientCookie); err == nil && ck.Value != "" {
		ctx = storage.WithClientID(ctx, ck.Value)
	}
	return ctx
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
