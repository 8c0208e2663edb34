package storage

import (
	"context"
	"log"
	"sync/atomic"
	"time"
)

// recoveryInterval is how long the failover adapter waits before probing
// the primary again after marking it down.
const recoveryInterval = time.Minute

// FailoverAdapter routes operations to a primary adapter (Redis) and
// falls back to a secondary (memory) when the primary errors.  After a
// failure the primary is considered down and is re-probed at most once
// per recoveryInterval, keeping request latency stable while the
// backing store is unreachable.
//
// Note that state written to the fallback while the primary is down is
// not replayed on recovery; the trade-off is acceptable because the
// fallback keeps the current session consistent and the primary is
// re-hydrated on the next full write.
type FailoverAdapter struct {
	primary  Adapter
	fallback Adapter
	isDown   atomic.Bool
	// lastCheck is stored as UnixNano to keep access atomic.
	lastCheck atomic.Int64
}

// NewFailoverAdapter combines a primary and a fallback adapter.
func NewFailoverAdapter(primary, fallback Adapter) *FailoverAdapter {
	return &FailoverAdapter{primary: primary, fallback: fallback}
}

func (f *FailoverAdapter) markDown(err error) {
	log.Printf("storage: primary adapter failed, falling back to memory: %v", err)
	f.isDown.Store(true)
	f.lastCheck.Store(time.Now().UnixNano())
}

func (f *FailoverAdapter) shouldProbe() bool {
	return time.Since(time.Unix(0, f.lastCheck.Load())) > recoveryInterval
}

func (f *FailoverAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	if !f.isDown.Load() {
		val, err := f.primary.Get(ctx, key)
		if err == nil || err == ErrKeyNotFound {
			return val, err
		}
		f.markDown(err)
	} else if f.shouldProbe() {
		val, err := f.primary.Get(ctx, key)
		if err == nil || err == ErrKeyNotFound {
			f.isDown.Store(false)
			return val, err
		}
		f.lastCheck.Store(time.Now().UnixNano())
	}
	return f.fallback.Get(ctx, key)
}

func (f *FailoverAdapter) Set(ctx context.Context, key string, value []byte) error {
	if !f.isDown.Load() {
		err := f.primary.Set(ctx, key, value)
		if err == nil {
			// Mirror into the fallback so reads stay coherent after a
			// later primary failure.
			_ = f.fallback.Set(ctx, key, value)
			return nil
		}
		f.markDown(err)
	}
	return f.fallback.Set(ctx, key, value)
}

func (f *FailoverAdapter) Remove(ctx context.Context, key string) error {
	if !f.isDown.Load() {
		err := f.primary.Remove(ctx, key)
		if err == nil {
			_ = f.fallback.Remove(ctx, key)
			return nil
		}
		f.markDown(err)
	}
	return f.fallback.Remove(ctx, key)
}
