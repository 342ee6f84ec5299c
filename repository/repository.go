// Package repository translates typed read/write intents into database and
// object-storage calls. Reads go through the query cache; every successful
// mutation publishes its event so the declared invalidation edges mark the
// dependent cached reads stale.
package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/cafein/api-go/cache"
	"github.com/cafein/api-go/metrics"
	"github.com/cafein/api-go/storage"
)

// Repositories bundles the entity repositories over one database handle,
// query cache and mutation event bus.
type Repositories struct {
	Cafes   *CafeRepository
	Menus   *MenuRepository
	Hours   *HoursRepository
	Reviews *ReviewRepository
	Images  *ImageRepository
	Stats   *StatsRepository
}

// New wires the repositories and registers the cache invalidation edges.
// m and objects may be nil when the metrics or storage concern is unused.
func New(db *gorm.DB, store *cache.Store, bus *cache.Bus, objects storage.ObjectStore, m *metrics.Metrics) *Repositories {
	cache.RegisterDirectoryEdges(bus, store, m)

	return &Repositories{
		Cafes:   &CafeRepository{db: db, cache: store, bus: bus, m: m},
		Menus:   &MenuRepository{db: db, bus: bus, m: m},
		Hours:   &HoursRepository{db: db, bus: bus, m: m},
		Reviews: &ReviewRepository{db: db, bus: bus, m: m},
		Images:  &ImageRepository{db: db, bus: bus, m: m, objects: objects},
		Stats:   &StatsRepository{db: db, cache: store, m: m, SampleLimit: statsSampleLimit},
	}
}

func observe(m *metrics.Metrics, op string) func() {
	if m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.QueryDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}
}
