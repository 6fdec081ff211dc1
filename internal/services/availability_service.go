package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"homehelpBack/internal/models"
	"homehelpBack/internal/repositories"
)

// Working day boundaries and slot granularity, in minutes from midnight.
const (
	dayStartMinutes = 8 * 60
	dayEndMinutes   = 18 * 60
	slotStepMinutes = 30
)

const availabilityCacheTTL = 5 * time.Minute

// AvailabilityCache is the key-value surface the slot cache needs.
// *RedisAvailabilityCache satisfies it.
type AvailabilityCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Incr(ctx context.Context, key string) (int64, error)
}

// RedisAvailabilityCache backs the slot cache with Redis.
type RedisAvailabilityCache struct {
	Client *redis.Client
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, key string) ([]byte, error) {
	return c.Client.Get(ctx, key).Bytes()
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return c.Client.Set(ctx, key, value, ttl).Err()
}

func (c *RedisAvailabilityCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.Client.Incr(ctx, key).Result()
}

type AvailabilityService struct {
	ServiceRepo *repositories.ServiceRepository
	BookingRepo *repositories.BookingRepository
	Cache       AvailabilityCache
	ErrorLog    *log.Logger
}

// ComputeAvailability returns the 20 half-hour slots of the working day for a
// service on a date, marking as unavailable every slot a pending or confirmed
// booking would overlap. durationMinutes defaults to the service duration.
//
// The cache version is captured before the bookings read. A booking that
// commits during the read bumps the counter, so the stale slot map is stored
// under a version no later reader asks for.
func (s *AvailabilityService) ComputeAvailability(ctx context.Context, serviceID, date string, durationMinutes int) (models.AvailabilityResponse, error) {
	svc, err := s.ServiceRepo.GetServiceByID(ctx, serviceID)
	if err != nil {
		return models.AvailabilityResponse{}, err
	}
	if durationMinutes <= 0 {
		durationMinutes = svc.DurationMinutes
	}

	version, cacheable := s.currentVersion(ctx, serviceID, date)
	if cacheable {
		if cached, ok := s.cacheGet(ctx, serviceID, date, durationMinutes, version); ok {
			return cached, nil
		}
	}

	bookings, err := s.BookingRepo.ListActiveByServiceAndDate(ctx, serviceID, date)
	if err != nil {
		return models.AvailabilityResponse{}, err
	}

	resp := models.AvailabilityResponse{
		Date:  date,
		Slots: computeSlots(bookings, svc.DurationMinutes, durationMinutes),
	}
	if cacheable {
		s.cacheSet(ctx, serviceID, date, durationMinutes, version, resp)
	}
	return resp, nil
}

// computeSlots walks the working day in 30-minute steps. A slot is available
// when the candidate interval [start, start+duration) fits inside the day and
// intersects no occupied interval [bookingStart, bookingStart+serviceDuration).
func computeSlots(bookings []models.Booking, serviceDuration, requestDuration int) []models.TimeSlot {
	type interval struct{ start, end int }
	var occupied []interval
	for _, b := range bookings {
		start, ok := parseClock(b.ScheduledTime)
		if !ok {
			continue
		}
		occupied = append(occupied, interval{start, start + serviceDuration})
	}

	var slots []models.TimeSlot
	for start := dayStartMinutes; start < dayEndMinutes; start += slotStepMinutes {
		end := start + requestDuration
		available := end <= dayEndMinutes
		for _, occ := range occupied {
			if start < occ.end && occ.start < end {
				available = false
				break
			}
		}
		slots = append(slots, models.TimeSlot{
			StartTime: formatClock(start),
			EndTime:   formatClock(start + slotStepMinutes),
			Available: available,
		})
	}
	return slots
}

func parseClock(v string) (int, bool) {
	t, err := time.Parse("15:04", v)
	if err != nil {
		if t, err = time.Parse("15:04:05", v); err != nil {
			return 0, false
		}
	}
	return t.Hour()*60 + t.Minute(), true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Cache entries carry the availability version for the service and date, so
// booking writes invalidate readers by bumping a counter instead of scanning
// for keys to delete.

func (s *AvailabilityService) versionKey(serviceID, date string) string {
	return fmt.Sprintf("avail:ver:%s:%s", serviceID, date)
}

func (s *AvailabilityService) cacheKey(serviceID, date string, duration int, version int64) string {
	return fmt.Sprintf("avail:%s:%s:%d:%d", serviceID, date, duration, version)
}

// currentVersion reads the version counter for the service and date,
// initializing it to zero on first use. The second return is false when the
// cache is absent or unusable, in which case callers skip caching entirely.
func (s *AvailabilityService) currentVersion(ctx context.Context, serviceID, date string) (int64, bool) {
	if s.Cache == nil {
		return 0, false
	}
	raw, err := s.Cache.Get(ctx, s.versionKey(serviceID, date))
	if err != nil {
		if err := s.Cache.Set(ctx, s.versionKey(serviceID, date), []byte("0"), availabilityCacheTTL); err != nil {
			s.logf("availability cache: set version: %v", err)
			return 0, false
		}
		return 0, true
	}
	version, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, false
	}
	return version, true
}

func (s *AvailabilityService) cacheGet(ctx context.Context, serviceID, date string, duration int, version int64) (models.AvailabilityResponse, bool) {
	raw, err := s.Cache.Get(ctx, s.cacheKey(serviceID, date, duration, version))
	if err != nil {
		return models.AvailabilityResponse{}, false
	}
	var resp models.AvailabilityResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return models.AvailabilityResponse{}, false
	}
	return resp, true
}

func (s *AvailabilityService) cacheSet(ctx context.Context, serviceID, date string, duration int, version int64, resp models.AvailabilityResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, s.cacheKey(serviceID, date, duration, version), raw, availabilityCacheTTL); err != nil {
		s.logf("availability cache: set: %v", err)
	}
}

// Invalidate bumps the version counter so already-cached entries for the
// service and date are never served again, including a slot map computed
// before the bump but stored after it.
func (s *AvailabilityService) Invalidate(ctx context.Context, serviceID, date string) {
	if s.Cache == nil {
		return
	}
	if _, err := s.Cache.Incr(ctx, s.versionKey(serviceID, date)); err != nil {
		s.logf("availability cache: invalidate: %v", err)
	}
}

func (s *AvailabilityService) logf(format string, args ...interface{}) {
	if s.ErrorLog != nil {
		s.ErrorLog.Printf(format, args...)
	}
}
