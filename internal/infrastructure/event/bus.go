package event

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lawmatch/backend/internal/domain/shared"
)

const (
	// DefaultBufferSize is the queue capacity used when none is configured
	DefaultBufferSize = 1024
	// DefaultWorkerCount is the number of dispatch workers used when none is configured
	DefaultWorkerCount = 4
)

// Bus is an in-process event bus. Publish enqueues events onto a buffered
// queue and a pool of workers dispatches them to subscribed handlers, so
// request handling never waits on notification fan-out. When the queue is
// full or the bus is not running, events are dispatched inline instead of
// being dropped.
type Bus struct {
	registry    *HandlerRegistry
	logger      *zap.Logger
	queue       chan shared.DomainEvent
	workerCount int

	mu      sync.RWMutex
	running bool
	wg      sync.WaitGroup
}

// NewBus creates a new event bus. Zero or negative sizes fall back to the
// package defaults.
func NewBus(bufferSize, workerCount int, logger *zap.Logger) *Bus {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if workerCount <= 0 {
		workerCount = DefaultWorkerCount
	}
	return &Bus{
		registry:    NewHandlerRegistry(),
		logger:      logger,
		queue:       make(chan shared.DomainEvent, bufferSize),
		workerCount: workerCount,
	}
}

// Publish enqueues events for asynchronous dispatch
func (b *Bus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, event := range events {
		b.mu.RLock()
		if !b.running {
			b.mu.RUnlock()
			b.dispatch(ctx, event)
			continue
		}
		select {
		case b.queue <- event:
			b.mu.RUnlock()
		default:
			b.mu.RUnlock()
			// queue is saturated, deliver inline rather than drop
			b.logger.Warn("event queue full, dispatching inline",
				zap.String("event_type", event.EventType()))
			b.dispatch(ctx, event)
		}
	}
	return nil
}

// Subscribe registers a handler. With no explicit event types the handler's
// own EventTypes() declaration is used; an empty declaration subscribes it
// to everything.
func (b *Bus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *Bus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// Start launches the dispatch workers
func (b *Bus) Start(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.running {
		return nil
	}
	b.running = true

	for i := 0; i < b.workerCount; i++ {
		b.wg.Add(1)
		go b.worker()
	}
	b.logger.Info("event bus started",
		zap.Int("workers", b.workerCount),
		zap.Int("buffer_size", cap(b.queue)))
	return nil
}

// Stop drains the queue and waits for in-flight handlers to finish
func (b *Bus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = false
	close(b.queue)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		b.logger.Info("event bus stopped")
		return nil
	case <-ctx.Done():
		b.logger.Warn("event bus stop timed out")
		return ctx.Err()
	}
}

func (b *Bus) worker() {
	defer b.wg.Done()
	for event := range b.queue {
		// handlers run detached from the request that published the event
		b.dispatch(context.Background(), event)
	}
}

func (b *Bus) dispatch(ctx context.Context, event shared.DomainEvent) {
	for _, handler := range b.registry.HandlersFor(event.EventType()) {
		if err := b.dispatchToHandler(ctx, handler, event); err != nil {
			b.logger.Error("handler failed to process event",
				zap.String("event_type", event.EventType()),
				zap.String("event_id", event.EventID().String()),
				zap.Error(err),
			)
		}
	}
}

// dispatchToHandler isolates handler panics so one bad subscriber cannot
// take down the worker pool
func (b *Bus) dispatchToHandler(ctx context.Context, handler shared.EventHandler, event shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("handler panicked",
				zap.String("event_type", event.EventType()),
				zap.Any("panic", r),
			)
		}
	}()
	return handler.Handle(ctx, event)
}

var _ shared.EventBus = (*Bus)(nil)
