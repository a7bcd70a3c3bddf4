package storage

import (
	"context"
	"net/http"
	"time"
)

// CookieOptions controls the attributes of cookies written by Cookie.
type CookieOptions struct {
	Path     string
	Domain   string
	MaxAge   time.Duration
	Secure   bool
	SameSite http.SameSite
}

// Cookie is a Store bound to one HTTP exchange. Get reads the request
// cookie named by the key; Set and Remove write Set-Cookie headers and
// require a ResponseWriter. Values travel verbatim: Get returns the raw
// cookie value and Set rejects values that are not valid cookie octets.
type Cookie struct {
	r    *http.Request
	w    http.ResponseWriter
	opts CookieOptions
}

// NewCookie binds a Cookie store to r and w. w may be nil for read-only use.
func NewCookie(r *http.Request, w http.ResponseWriter, opts CookieOptions) *Cookie {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if opts.SameSite == 0 {
		opts.SameSite = http.SameSiteLaxMode
	}
	return &Cookie{r: r, w: w, opts: opts}
}

func (c *Cookie) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}
	if c.r == nil {
		return "", ErrNotFound
	}

	ck, err := c.r.Cookie(key)
	if err != nil {
		return "", ErrNotFound
	}
	return ck.Value, nil
}

func (c *Cookie) Set(_ context.Context, key, value string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if c.w == nil {
		return ErrReadOnly
	}
	if !validCookieValue(value) {
		return ErrInvalidValue
	}

	ck := c.cookie(key, value)
	if c.opts.MaxAge > 0 {
		ck.MaxAge = int(c.opts.MaxAge / time.Second)
	}
	http.SetCookie(c.w, ck)
	return nil
}

func (c *Cookie) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if c.w == nil {
		return ErrReadOnly
	}

	ck := c.cookie(key, "")
	ck.MaxAge = -1
	http.SetCookie(c.w, ck)
	return nil
}

func (c *Cookie) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     c.opts.Path,
		Domain:   c.opts.Domain,
		Secure:   c.opts.Secure,
		HttpOnly: true,
		SameSite: c.opts.SameSite,
	}
}

// validCookieValue reports whether every byte of v is a cookie-octet
// (RFC 6265 section 4.1.1), so net/http writes it without quoting or
// dropping it.
func validCookieValue(v string) bool {
	for i := 0; i < len(v); i++ {
		b := v[i]
		if b < 0x21 || b > 0x7e || b == '"' || b == ',' || b == ';' || b == '\\' {
			return false
		}
	}
	return true
}
