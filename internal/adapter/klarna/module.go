package klarna

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/polkiloo/klarnapay/internal/config"
	"github.com/polkiloo/klarnapay/internal/domain/model"
)

// Module exposes Klarna client factory to fx graph.
var Module = fx.Provide(newFactory)

type factoryParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newFactory(p factoryParams) *Factory {
	return NewFactory(p.Config.KlarnaTimeout, p.Logger)
}

// Factory builds and caches one client per gateway.
type Factory struct {
	timeout time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	clients map[string]API
}

// NewFactory creates factory resolving base URLs from the region table.
func NewFactory(timeout time.Duration, logger *slog.Logger) *Factory {
	return &Factory{
		timeout: timeout,
		logger:  logger,
		clients: make(map[string]API),
	}
}

// Client returns API client for gateway.
func (f *Factory) Client(gw *model.Gateway) (API, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if c, ok := f.clients[gw.ID]; ok {
		return c, nil
	}
	base, err := BaseURL(gw.Region, gw.Mode)
	if err != nil {
		return nil, fmt.Errorf("gateway %s: %w", gw.ID, err)
	}
	c, err := NewClient(base, gw.Username, gw.Password, f.timeout, f.logger.With(slog.String("gateway", gw.ID)))
	if err != nil {
		return nil, fmt.Errorf("gateway %s: %w", gw.ID, err)
	}
	f.clients[gw.ID] = c
	return c, nil
}
