package perf

import (
	"fmt"

	goGuard "github.com/MrEthical07/goGuard"
)

// MediaElement is a playable handle holding a source.
type MediaElement interface {
	Pause() error
	SetSource(src string) error
	Load() error
}

// CleanupMedia stops playback, clears the source and reloads el so it drops
// its buffered data. A nil el is ignored. Failures, panics included, are
// logged and never returned.
func CleanupMedia(el MediaElement, opts ...Option) {
	if el == nil {
		return
	}
	cfg := newConfig(opts)

	err := catch(func() error {
		if err := el.Pause(); err != nil {
			return fmt.Errorf("pause: %w", err)
		}
		if err := el.SetSource(""); err != nil {
			return fmt.Errorf("clear source: %w", err)
		}
		if err := el.Load(); err != nil {
			return fmt.Errorf("reload: %w", err)
		}
		return nil
	})
	if err != nil {
		cfg.logger.Error("media cleanup failed", errFields(err)...)
		cfg.metrics.Inc(goGuard.MetricMediaCleanupFailure)
	}
}
