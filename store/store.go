package store

import (
	"time"

	"github.com/ansochagas/editaliza/internal/profile"
	"github.com/ansochagas/editaliza/store/cache"
)

// Store provides database access to all raw objects.
type Store struct {
	profile *profile.Profile
	driver  Driver

	// planCache caches plan rows by UID. Plans are read on every
	// scheduling operation but change rarely.
	planCache *cache.Cache
}

// New creates a new instance of Store.
func New(driver Driver, profile *profile.Profile) *Store {
	cacheConfig := cache.Config{
		DefaultTTL:      10 * time.Minute,
		CleanupInterval: 5 * time.Minute,
		MaxItems:        1000,
	}

	return &Store{
		driver:    driver,
		profile:   profile,
		planCache: cache.New(cacheConfig),
	}
}

func (s *Store) GetDriver() Driver {
	return s.driver
}

func (s *Store) Close() error {
	s.planCache.Close()
	return s.driver.Close()
}
