package services

import (
	"time"

	"github.com/patrickmn/go-cache"

	"tentamenbank-api/models"
)

// CacheService keeps object listings and enrolment lookups between requests
type CacheService struct {
	cache *cache.Cache
}

func NewCacheService(defaultExpiration, cleanupInterval time.Duration) *CacheService {
	return &CacheService{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// GetKeys returns a cached listing
func (s *CacheService) GetKeys(key string) ([]string, bool) {
	cached, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	keys, ok := cached.([]string)
	return keys, ok
}

// GetEnrolments returns a cached enrolment set
func (s *CacheService) GetEnrolments(key string) (models.EnrolmentSet, bool) {
	cached, found := s.cache.Get(key)
	if !found {
		return nil, false
	}
	set, ok := cached.(models.EnrolmentSet)
	return set, ok
}

func (s *CacheService) Set(key string, value interface{}, duration time.Duration) {
	s.cache.Set(key, value, duration)
}

func (s *CacheService) Flush() {
	s.cache.Flush()
}
