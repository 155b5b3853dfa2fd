package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/geotreasure/internal/config"
	"github.com/osse101/geotreasure/internal/event"
)

// InitializeEventSystem creates the in-process bus and wraps it in a
// resilient publisher that retries failed handlers and dead-letters the rest.
// Subscribers register on the returned bus; producers publish through the
// publisher.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *event.ResilientPublisher, error) {
	bus := event.NewMemoryBus()

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = config.DefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	publisher, err := event.NewResilientPublisher(bus, EventMaxRetries, EventRetryDelay, deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"max_retries", EventMaxRetries,
		"retry_delay", EventRetryDelay,
		"deadletter_path", deadLetterPath)

	return bus, publisher, nil
}
