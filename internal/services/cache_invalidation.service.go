package services

import (
	"context"
	"time"

	"carelog/internal/database"
	"carelog/internal/logger"
	. "carelog/internal/models"
)

const DEFAULT_SETTINGS_CACHE_EXPIRY = time.Hour

func settingsCacheKey(userID string) string {
	return "settings:" + userID
}

// CacheInvalidationService owns the settings read-through cache. Failures are
// logged and swallowed: the database stays the source of truth.
type CacheInvalidationService struct {
	cache database.CacheClient
	ttl   time.Duration
	log   logger.Logger
}

func NewCacheInvalidationService(db database.DB, ttl time.Duration) *CacheInvalidationService {
	if ttl <= 0 {
		ttl = DEFAULT_SETTINGS_CACHE_EXPIRY
	}
	return &CacheInvalidationService{
		cache: db.Cache.Settings,
		ttl:   ttl,
		log:   logger.New("CacheInvalidationService"),
	}
}

func (s *CacheInvalidationService) GetSettings(ctx context.Context, userID string) (Settings, bool) {
	var settings Settings
	found, err := database.NewCacheBuilder(s.cache, settingsCacheKey(userID)).
		WithContext(ctx).
		Get(&settings)
	if err != nil {
		s.log.Function("GetSettings").Warn("failed to read settings from cache", "userID", userID, "error", err)
		return Settings{}, false
	}
	return settings, found
}

func (s *CacheInvalidationService) SetSettings(ctx context.Context, userID string, settings Settings) {
	if err := database.NewCacheBuilder(s.cache, settingsCacheKey(userID)).
		WithStruct(settings).
		WithTTL(s.ttl).
		WithContext(ctx).
		Set(); err != nil {
		s.log.Function("SetSettings").Warn("failed to write settings to cache", "userID", userID, "error", err)
	}
}

func (s *CacheInvalidationService) InvalidateSettings(ctx context.Context, userID string) {
	if err := database.NewCacheBuilder(s.cache, settingsCacheKey(userID)).
		WithContext(ctx).
		Delete(); err != nil {
		s.log.Function("InvalidateSettings").Warn("failed to invalidate settings cache", "userID", userID, "error", err)
	}
}
