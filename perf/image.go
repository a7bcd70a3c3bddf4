package perf

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	goGuard "github.com/MrEthical07/goGuard"
	"go.uber.org/zap"
)

var (
	// ErrImageStatus is returned when the image server answers with a non-2xx status.
	ErrImageStatus = errors.New("perf: image request failed")
	// ErrImageDecode is returned when the body is not a decodable image.
	ErrImageDecode = errors.New("perf: image could not be decoded")
)

const defaultImageMaxBytes = 10 << 20

// ImageLoader fetches src and reports whether it is a usable image.
type ImageLoader interface {
	Load(ctx context.Context, src string) error
}

// HTTPImageLoader loads images over HTTP and checks the header decodes as
// gif, jpeg or png.
type HTTPImageLoader struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client
	// MaxBytes caps how much of the body is read; zero means 10 MiB.
	MaxBytes int64
}

// Load implements ImageLoader.
func (l HTTPImageLoader) Load(ctx context.Context, src string) error {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	limit := l.MaxBytes
	if limit <= 0 {
		limit = defaultImageMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrImageStatus, resp.StatusCode)
	}
	if _, _, err := image.DecodeConfig(io.LimitReader(resp.Body, limit)); err != nil {
		return fmt.Errorf("%w: %v", ErrImageDecode, err)
	}
	return nil
}

// LazyLoadImage resolves to src when it loads and to fallback otherwise.
// It never fails.
func LazyLoadImage(ctx context.Context, src, fallback string, opts ...Option) string {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := newConfig(opts)

	err := catch(func() error { return cfg.loader.Load(ctx, src) })
	if err != nil {
		cfg.logger.Debug("image load failed, using fallback", errFields(err, zap.String("src", src))...)
		cfg.metrics.Inc(goGuard.MetricImageFallback)
		return fallback
	}
	return src
}

// LazyLoadImageAsync is LazyLoadImage on its own goroutine. The channel
// yields exactly one value and is then closed.
func LazyLoadImageAsync(ctx context.Context, src, fallback string, opts ...Option) <-chan string {
	out := make(chan string, 1)
	go func() {
		defer close(out)
		out <- LazyLoadImage(ctx, src, fallback, opts...)
	}()
	return out
}
