// evictor.go houses the eviction loop for Registry.  Every EvictInterval it
// scans the map and removes:
//
//   - handles idle longer than idleTTL
//   - least-recently-used handles when map size exceeds maxHandles
//
// Each eviction event is logged (fingerprint only) and updates Prometheus
// counters.
package registry

import (
	"sort"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/omniakid/omniakid/internal/metrics"
)

func (r *Registry) evictLoop() {
	for {
		select {
		case <-r.stop:
			return
		case <-r.evictTicker.C:
		}

		now := time.Now().UnixNano()
		var count int

		// ----------------------------------------------------------------
		// Idle eviction pass
		// ----------------------------------------------------------------
		r.m.Range(func(key, value any) bool {
			count++
			ent := value.(*entry)
			idle := time.Duration(now - atomic.LoadInt64(&ent.lastSeen))
			if idle > r.idleTTL {
				_ = ent.handle.close()
				r.m.Delete(key)
				count--
				zap.S().Infow("tenant handle evicted",
					"key", Fingerprint(key.(string)),
					"idle", idle.Truncate(time.Second).String(),
				)
				metrics.HandleEvictTotal.Inc()
				metrics.ActiveHandles.Dec()
			}
			return true
		})

		// ----------------------------------------------------------------
		// LRU eviction pass
		// ----------------------------------------------------------------
		if r.maxHandles > 0 && count > r.maxHandles {
			type kv struct {
				key string
				at  int64
			}
			var all []kv
			r.m.Range(func(key, value any) bool {
				ent := value.(*entry)
				all = append(all, kv{key: key.(string), at: atomic.LoadInt64(&ent.lastSeen)})
				return true
			})
			sort.Slice(all, func(i, j int) bool { return all[i].at < all[j].at })
			for i := 0; i < count-r.maxHandles && i < len(all); i++ {
				if v, ok := r.m.Load(all[i].key); ok {
					_ = v.(*entry).handle.close()
					r.m.Delete(all[i].key)
					zap.S().Infow("tenant handle evicted (LRU pressure)",
						"key", Fingerprint(all[i].key))
					metrics.HandleEvictTotal.Inc()
					metrics.ActiveHandles.Dec()
				}
			}
		}
	}
}
