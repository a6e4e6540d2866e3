package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/aigateway/logger"
)

// DefaultStopTimeout bounds each component's Stop call.
const DefaultStopTimeout = 10 * time.Second

type slot struct {
	c       Component
	running bool
}

// Registry owns the lifecycle of the process components. Start follows
// registration order; Stop walks the list backwards, one component at a
// time, each under its own deadline.
type Registry struct {
	mu          sync.RWMutex
	slots       []*slot
	byName      map[string]*slot
	stopTimeout time.Duration
	log         *logger.Logger
}

// NewRegistry returns an empty registry that logs through the global logger.
func NewRegistry() *Registry {
	return &Registry{
		byName:      map[string]*slot{},
		stopTimeout: DefaultStopTimeout,
	}
}

// SetLogger replaces the registry logger.
func (r *Registry) SetLogger(l *logger.Logger) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = l
}

// SetStopTimeout changes the per-component stop bound. Non-positive values
// are ignored.
func (r *Registry) SetStopTimeout(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.stopTimeout = d
	}
}

func (r *Registry) currentLogger() *logger.Logger {
	if r.log != nil {
		return r.log
	}
	return logger.WithComponent("registry")
}

// Register appends c. Names must be unique; register dependencies first.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %s already registered", name)
	}
	s := &slot{c: c}
	r.slots = append(r.slots, s)
	r.byName[name] = s

	r.currentLogger().Debug("Component registered", map[string]interface{}{"component": name})
	return nil
}

// StartAll starts components in registration order and stops at the first
// failure. Components started before the failure stay running so StopAll
// can release them.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.currentLogger()
	for _, s := range r.slots {
		name := s.c.Name()
		began := time.Now()
		if err := s.c.Start(ctx); err != nil {
			log.Error("Component start failed", map[string]interface{}{
				"component": name,
				"error":     err.Error(),
			})
			return fmt.Errorf("failed to start %s: %w", name, err)
		}
		s.running = true
		log.Debug("Component started", map[string]interface{}{
			"component":   name,
			"duration_ms": time.Since(began).Milliseconds(),
		})
	}
	log.Info("Components started", map[string]interface{}{"count": len(r.slots)})
	return nil
}

// StopAll stops running components in reverse order. Every component gets
// a Stop call even if an earlier one failed; the errors are joined.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.currentLogger()
	var errs []error
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if !s.running {
			continue
		}
		name := s.c.Name()
		if err := r.stopOne(ctx, s); err != nil {
			log.Error("Component stop failed", map[string]interface{}{
				"component": name,
				"error":     err.Error(),
			})
			errs = append(errs, fmt.Errorf("failed to stop %s: %w", name, err))
			continue
		}
		log.Info("Component stopped", map[string]interface{}{"component": name})
	}
	return errors.Join(errs...)
}

func (r *Registry) stopOne(ctx context.Context, s *slot) error {
	stopCtx, cancel := context.WithTimeout(ctx, r.stopTimeout)
	defer cancel()
	s.running = false
	return s.c.Stop(stopCtx)
}

// HealthAll collects Health from every component in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c.Health(ctx)
	}
	return out
}

// Get returns the component registered under name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.byName[name]; ok {
		return s.c
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Component, len(r.slots))
	for i, s := range r.slots {
		out[i] = s.c
	}
	return out
}
