package infobip

import (
	"context"
	"sync"
)

// inflight tracks running requests so that they can be canceled on close.
type inflight struct {
	mu            sync.Mutex
	closing       bool
	cancels       map[uint64]func()
	lastCancelKey uint64

	wg sync.WaitGroup
}

func newInflight() *inflight {
	return &inflight{
		cancels: make(map[uint64]func()),
	}
}

// start registers a request. The returned function must be called when
// the request is finished.
func (f *inflight) start(ctx context.Context) (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closing {
		cancel()
		return nil, nil, ErrClientClosing
	}

	// Add(1) and Wait() must not be called in parallel.
	// Call Add(1) under mutex protecting f.closing.
	f.wg.Add(1)

	key := f.lastCancelKey
	f.lastCancelKey++
	f.cancels[key] = cancel

	return ctx, func() {
		f.mu.Lock()
		delete(f.cancels, key)
		f.mu.Unlock()
		cancel()
		f.wg.Done()
	}, nil
}

func (f *inflight) close() {
	f.mu.Lock()
	if !f.closing {
		f.closing = true
		for _, cancel := range f.cancels {
			cancel()
		}
		f.cancels = nil
	}
	f.mu.Unlock()

	// By this point f.closing is true, so calls of start after Unlock
	// above won't result in Add(1).
	f.wg.Wait()
}
