// Copyright (c) 2026 ScholarHub. All rights reserved.

package stats

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/scholarhub/api/internal/catalog"
	"github.com/scholarhub/api/internal/platform/constants"
	"github.com/scholarhub/api/internal/platform/sec"
	"github.com/scholarhub/api/internal/publication"
	"github.com/scholarhub/api/internal/users"
	"github.com/scholarhub/api/pkg/textutil"
)

// UserSource supplies the account records feeding the user dashboard.
type UserSource interface {
	ListAll(context context.Context, filter users.Filter) ([]*users.User, error)
}

// PublicationSource supplies the records feeding the research dashboard.
type PublicationSource interface {
	ListAll(context context.Context, filter publication.Filter) ([]*publication.Publication, error)
}

// Service computes dashboard statistics with a short-lived Redis cache in
// front of the datastore.
//
// The cache is best-effort: a nil client or a failing Redis round-trip
// degrades to a direct datastore aggregation, never to an error.
type Service struct {
	userSource        UserSource
	publicationSource PublicationSource
	catalog           *catalog.Catalog
	cache             *redis.Client
	cacheTTL          time.Duration
	logger            *slog.Logger
}

// NewService constructs the stats [Service]. A nil cache client disables
// caching entirely.
func NewService(userSource UserSource, publicationSource PublicationSource, cat *catalog.Catalog, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		userSource:        userSource,
		publicationSource: publicationSource,
		catalog:           cat,
		cache:             cache,
		cacheTTL:          cacheTTL,
		logger:            logger,
	}
}

// # Dashboard Queries

/*
UserStatistics returns the account dashboard envelope for the viewer's
scope. Campus admins see only their own college with super-admin accounts
excluded; super admins see everything.
*/
func (service *Service) UserStatistics(context context.Context, viewer *sec.AuthClaims, filter users.Filter) (UserStatistics, error) {
	scoped := filter.Scoped(viewer)

	cacheable := isUserUnfiltered(scoped)
	cacheKey := constants.RedisPrefixUserStats + scopeKey(scoped.College)
	if scoped.ExcludeSuperAdmins {
		// A campus admin's view of a college differs from a super admin's
		// view of the same college.
		cacheKey += ":scoped"
	}

	if cacheable {
		var cached UserStatistics
		if service.cacheGet(context, cacheKey, &cached) {
			return cached, nil
		}
	}

	accounts, err := service.userSource.ListAll(context, scoped)
	if err != nil {
		return UserStatistics{}, err
	}

	envelope := BuildUserStatistics(service.catalog, accounts)
	if cacheable {
		service.cacheSet(context, cacheKey, envelope)
	}
	return envelope, nil
}

/*
PublicationStatistics returns the research dashboard envelope for the
viewer's scope, honoring the same filter keys as the publication listing.
*/
func (service *Service) PublicationStatistics(context context.Context, viewer *sec.AuthClaims, filter publication.Filter) (PublicationStatistics, error) {
	scoped := filter.Scoped(viewer)

	// Only unfiltered dashboards are cached; filtered views are cheap to
	// compute and too high-cardinality to cache usefully.
	cacheable := isUnfiltered(scoped)
	cacheKey := constants.RedisPrefixPublicationStats + scopeKey(scoped.College)

	if cacheable {
		var cached PublicationStatistics
		if service.cacheGet(context, cacheKey, &cached) {
			return cached, nil
		}
	}

	records, err := service.publicationSource.ListAll(context, scoped)
	if err != nil {
		return PublicationStatistics{}, err
	}

	envelope := BuildPublicationStatistics(service.catalog, records)
	if cacheable {
		service.cacheSet(context, cacheKey, envelope)
	}
	return envelope, nil
}

// isUserUnfiltered reports whether the account filter constrains anything
// beyond the viewer's scope. ExcludeSuperAdmins is part of the scope, not a
// user-supplied filter, so it does not defeat caching.
func isUserUnfiltered(filter users.Filter) bool {
	return filter.Role == "" && filter.Institute == "" &&
		filter.Department == "" && filter.IsActive == nil &&
		filter.Search == ""
}

// isUnfiltered reports whether the filter constrains anything beyond the
// viewer's college scope.
func isUnfiltered(filter publication.Filter) bool {
	return filter.Year == 0 && len(filter.Years) == 0 &&
		filter.QRating == "" && filter.Type == "" &&
		filter.SubjectArea == "" && filter.Search == "" &&
		filter.Institute == "" && filter.Department == "" &&
		filter.OwnerID == ""
}

// # Cache Helpers

// scopeKey derives a stable cache-key suffix from the scoped college. Super
// admins with no college filter share one global entry.
func scopeKey(college string) string {
	if college == "" {
		return "global"
	}
	return textutil.Fold(college)
}

// cacheGet reports whether a fresh envelope was found and decoded.
func (service *Service) cacheGet(context context.Context, key string, target any) bool {
	if service.cache == nil {
		return false
	}

	payload, err := service.cache.Get(context, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			service.logger.WarnContext(context, "stats_cache_read_failed",
				slog.String("key", key), slog.String("error", err.Error()))
		}
		return false
	}

	if err := json.Unmarshal(payload, target); err != nil {
		service.logger.WarnContext(context, "stats_cache_corrupt",
			slog.String("key", key), slog.String("error", err.Error()))
		return false
	}

	return true
}

// cacheSet stores an envelope with the configured TTL, best-effort.
func (service *Service) cacheSet(context context.Context, key string, envelope any) {
	if service.cache == nil {
		return
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}

	if err := service.cache.Set(context, key, payload, service.cacheTTL).Err(); err != nil {
		service.logger.WarnContext(context, "stats_cache_write_failed",
			slog.String("key", key), slog.String("error", err.Error()))
	}
}
