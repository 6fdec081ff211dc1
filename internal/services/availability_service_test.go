package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"homehelpBack/internal/models"
)

func booked(at string) models.Booking {
	return models.Booking{ScheduledTime: at, Status: "confirmed"}
}

func slotByStart(t *testing.T, slots []models.TimeSlot, start string) models.TimeSlot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime == start {
			return s
		}
	}
	t.Fatalf("no slot starting at %s", start)
	return models.TimeSlot{}
}

func TestComputeSlotsEmptyDay(t *testing.T) {
	slots := computeSlots(nil, 60, 60)
	if len(slots) != 20 {
		t.Fatalf("expected 20 slots, got %d", len(slots))
	}
	if slots[0].StartTime != "08:00" || slots[0].EndTime != "08:30" {
		t.Errorf("first slot = %s-%s, want 08:00-08:30", slots[0].StartTime, slots[0].EndTime)
	}
	if slots[19].StartTime != "17:30" || slots[19].EndTime != "18:00" {
		t.Errorf("last slot = %s-%s, want 17:30-18:00", slots[19].StartTime, slots[19].EndTime)
	}
	// A 60-minute job cannot start at 17:30 without running past close.
	if slotByStart(t, slots, "17:30").Available {
		t.Error("slot 17:30 should be unavailable for a 60-minute duration")
	}
	if !slotByStart(t, slots, "17:00").Available {
		t.Error("slot 17:00 should be available for a 60-minute duration")
	}
}

func TestComputeSlotsOverlap(t *testing.T) {
	// One 60-minute booking at 10:00 occupies [10:00, 11:00).
	slots := computeSlots([]models.Booking{booked("10:00")}, 60, 30)
	for _, start := range []string{"09:30", "11:00"} {
		if !slotByStart(t, slots, start).Available {
			t.Errorf("slot %s should be available", start)
		}
	}
	for _, start := range []string{"10:00", "10:30"} {
		if slotByStart(t, slots, start).Available {
			t.Errorf("slot %s should be blocked", start)
		}
	}
}

func TestComputeSlotsHalfOpenBoundary(t *testing.T) {
	// A booking ending exactly at 11:00 must not block a request starting
	// at 11:00, and a 60-minute request ending at 10:00 must not collide
	// with a booking starting at 10:00.
	slots := computeSlots([]models.Booking{booked("10:00")}, 60, 60)
	if !slotByStart(t, slots, "09:00").Available {
		t.Error("slot 09:00 should be available: request ends as the booking starts")
	}
	if slotByStart(t, slots, "09:30").Available {
		t.Error("slot 09:30 should be blocked: request runs into the booking")
	}
	if !slotByStart(t, slots, "11:00").Available {
		t.Error("slot 11:00 should be available: booking ends as the request starts")
	}
}

func TestComputeSlotsIgnoresUnparsableTimes(t *testing.T) {
	slots := computeSlots([]models.Booking{booked("not-a-time")}, 60, 30)
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("slot %s blocked by an unparsable booking time", s.StartTime)
		}
	}
}

type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{data: make(map[string][]byte)}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := c.data[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return v, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *mapCache) Incr(_ context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

// A slot map computed against version v but stored after an invalidation must
// land under v, where no reader looks anymore, rather than under the bumped
// current version.
func TestInvalidateDropsInFlightCacheWrite(t *testing.T) {
	ctx := context.Background()
	s := &AvailabilityService{Cache: newMapCache()}

	version, ok := s.currentVersion(ctx, "s1", "2026-09-01")
	if !ok || version != 0 {
		t.Fatalf("initial version = (%d, %v), want (0, true)", version, ok)
	}

	// A booking commits while the slot map is being computed.
	s.Invalidate(ctx, "s1", "2026-09-01")

	resp := models.AvailabilityResponse{Date: "2026-09-01", Slots: computeSlots(nil, 60, 60)}
	s.cacheSet(ctx, "s1", "2026-09-01", 60, version, resp)

	current, ok := s.currentVersion(ctx, "s1", "2026-09-01")
	if !ok || current != 1 {
		t.Fatalf("version after invalidate = (%d, %v), want (1, true)", current, ok)
	}
	if _, hit := s.cacheGet(ctx, "s1", "2026-09-01", 60, current); hit {
		t.Fatal("stale slot map served under the current version")
	}
	if _, hit := s.cacheGet(ctx, "s1", "2026-09-01", 60, version); !hit {
		t.Fatal("slot map missing under the version it was computed against")
	}
}

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"08:00", 480, true},
		{"17:30", 1050, true},
		{"09:15:00", 555, true},
		{"25:00", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := parseClock(c.in)
		if ok != c.ok || got != c.want {
			t.Errorf("parseClock(%q) = (%d, %v), want (%d, %v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
