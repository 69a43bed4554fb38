package catalog

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"sales-agent/internal/config"
)

// Fetcher produces the product list of one store. Implementations
// return an empty slice on any failure; errors never cross this
// boundary.
type Fetcher interface {
	FetchStore(ctx context.Context, store config.Store) []Product
}

// Refresher owns the catalog. It rebuilds a complete snapshot off to
// the side and publishes it with a single atomic swap, so concurrent
// readers never observe a half-updated catalog and never lock.
type Refresher struct {
	fetcher Fetcher
	stores  []config.Store

	snapshot    atomic.Pointer[Snapshot]
	lastRefresh atomic.Pointer[time.Time]
	refreshing  atomic.Bool
}

func NewRefresher(fetcher Fetcher, stores []config.Store) *Refresher {
	r := &Refresher{fetcher: fetcher, stores: stores}
	r.snapshot.Store(NewSnapshot(nil))
	return r
}

// Snapshot returns the latest published catalog. Never nil.
func (r *Refresher) Snapshot() *Snapshot {
	return r.snapshot.Load()
}

// LastRefresh reports when a snapshot was last published, zero before
// the first refresh.
func (r *Refresher) LastRefresh() time.Time {
	if t := r.lastRefresh.Load(); t != nil {
		return *t
	}
	return time.Time{}
}

// RefreshAll fetches every configured store in parallel and publishes
// the merged snapshot. A failing store contributes an empty listing and
// a warning instead of aborting the refresh. Overlapping invocations
// are collapsed: a refresh that finds another one in flight returns the
// current snapshot untouched, so no store is fetched re-entrantly.
func (r *Refresher) RefreshAll(ctx context.Context) *Snapshot {
	if !r.refreshing.CompareAndSwap(false, true) {
		log.Printf("catalog refresh already in progress, skipping")
		return r.Snapshot()
	}
	defer r.refreshing.Store(false)

	listings := make([]StoreListing, len(r.stores))
	g, gctx := errgroup.WithContext(ctx)
	for i, store := range r.stores {
		g.Go(func() error {
			products := r.fetcher.FetchStore(gctx, store)
			if len(products) == 0 {
				log.Printf("⚠️ store %s contributed no products", store.Name)
			}
			listings[i] = StoreListing{Store: store.Name, Products: products}
			return nil
		})
	}
	_ = g.Wait()

	snap := NewSnapshot(listings)
	now := time.Now().UTC()
	r.snapshot.Store(snap)
	r.lastRefresh.Store(&now)
	log.Printf("catalog refreshed: %d products from %d stores", snap.Total(), len(r.stores))
	return snap
}
