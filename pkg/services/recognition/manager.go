package recognition

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Factory builds the underlying engine. Loading recognition models can take
// seconds, which is why the manager defers it until first use.
type Factory func(ctx context.Context) (Engine, error)

// Manager owns the process-wide engine lifecycle. Initialization runs
// exactly once, asynchronously; concurrent callers arriving before it
// finishes all suspend on the same result instead of re-initializing.
type Manager struct {
	factory Factory

	once   sync.Once
	ready  chan struct{}
	engine Engine
	err    error
}

func NewManager(factory Factory) *Manager {
	return &Manager{
		factory: factory,
		ready:   make(chan struct{}),
	}
}

// Engine returns the initialized engine, starting initialization on first
// call and waiting for it otherwise. A canceled context abandons the wait
// but never the initialization itself.
func (m *Manager) Engine(ctx context.Context) (Engine, error) {
	m.once.Do(func() {
		go func() {
			logger := zerolog.Ctx(ctx)
			logger.Info().Msg("initializing recognition engine")
			m.engine, m.err = m.factory(context.WithoutCancel(ctx))
			if m.err != nil {
				logger.Error().Err(m.err).Msg("recognition engine initialization failed")
			} else {
				logger.Info().Msg("recognition engine ready")
			}
			close(m.ready)
		}()
	})

	select {
	case <-m.ready:
		if m.err != nil {
			return nil, fmt.Errorf("recognition engine unavailable: %w", m.err)
		}
		return m.engine, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Shutdown releases the engine if it was ever initialized and implements
// io.Closer semantics.
func (m *Manager) Shutdown(ctx context.Context) error {
	select {
	case <-m.ready:
	default:
		return nil // never initialized
	}
	if closer, ok := m.engine.(interface{ Close() error }); ok && closer != nil {
		return closer.Close()
	}
	return nil
}
