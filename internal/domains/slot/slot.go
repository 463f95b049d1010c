// Package slot turns weekly schedule windows into bookable appointment times.
package slot

import (
	"context"
	"fmt"
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/shared"
	"mediconnect/shared/cache"
	"mediconnect/shared/calendar"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
)

// Step is the length of one appointment slot.
const Step = 15 * time.Minute

const (
	cachePrefix      = "slot"
	generationPrefix = "slot-gen"
)

// Generate walks every [start, end) window in Step increments and returns the
// instants that are not booked, deduplicated across overlapping windows and in
// chronological order. It does not filter out past times.
func Generate(windows []model.Window, booked []calendar.TimeOfDay) []calendar.TimeOfDay {
	taken := make(map[int]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Minutes()] = struct{}{}
	}

	seen := map[int]struct{}{}
	slots := []calendar.TimeOfDay{}

	for _, w := range windows {
		for current := w.Start; current.Before(w.End); {
			minutes := current.Minutes()

			_, isTaken := taken[minutes]
			_, isSeen := seen[minutes]

			if !isTaken && !isSeen {
				seen[minutes] = struct{}{}
				slots = append(slots, current)
			}

			next, ok := current.Add(Step)
			if !ok {
				break
			}

			current = next
		}
	}

	slices.SortFunc(slots, func(a, b calendar.TimeOfDay) int {
		return a.Minutes() - b.Minutes()
	})

	return slots
}

// Contains reports whether t is one of the instants Generate would produce
// for windows when nothing is booked.
func Contains(windows []model.Window, t calendar.TimeOfDay) bool {
	step := int(Step / time.Minute)

	for _, w := range windows {
		if t.Before(w.Start) || !t.Before(w.End) {
			continue
		}

		if (t.Minutes()-w.Start.Minutes())%step == 0 {
			return true
		}
	}

	return false
}

// CachePrefix is the key prefix of every cached availability of a doctor. The
// trailing separator keeps "doc-1" from matching "doc-10".
func CachePrefix(doctorID string) string {
	return shared.BuildCacheKey(cachePrefix, doctorID) + ":"
}

// CacheKey is the key of one doctor's availability on one date.
func CacheKey(doctorID string, date calendar.Date) string {
	return shared.BuildCacheKey(cachePrefix, doctorID, date.String())
}

// GenerationKey holds the number of times a doctor's availability was
// invalidated. It lives outside CachePrefix so clearing the days keeps it.
func GenerationKey(doctorID string) string {
	return shared.BuildCacheKey(generationPrefix, doctorID)
}

// VersionedKey is CacheKey tagged with the generation read before the
// availability was computed.
func VersionedKey(doctorID string, date calendar.Date, generation int64) string {
	return fmt.Sprintf("%s:%d", CacheKey(doctorID, date), generation)
}

// Invalidate bumps the doctor's generation and drops the cached days. Entries
// saved by a reader that started before the bump carry the old generation and
// are never read again.
func Invalidate(ctx context.Context, redisCache cache.RedisCache, doctorID string) {
	if _, err := redisCache.Incr(ctx, GenerationKey(doctorID)); err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to bump availability generation")
	}

	shared.InvalidateCaches(ctx, redisCache, CachePrefix(doctorID))
}
