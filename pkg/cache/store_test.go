package cache

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// setupTestRedis connects to a local Redis on the dedicated test DB,
// skipping the test when none is running. Integration tests under
// tests/ use testcontainers instead.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available for testing: %v", err)
	}

	if err := client.FlushDB(ctx).Err(); err != nil {
		t.Fatalf("Failed to flush test DB: %v", err)
	}

	t.Cleanup(func() {
		client.FlushDB(context.Background())
		client.Close()
	})

	return client
}

// deadStore returns a store whose Redis backend is unreachable.
func deadStore() *Store {
	return NewStore(redis.NewClient(&redis.Options{
		Addr:        "localhost:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	}))
}

func TestNewStore_Panic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("NewStore should panic with nil redis client")
		}
	}()
	NewStore(nil)
}

func TestStore_SetAndGet(t *testing.T) {
	store := NewStore(setupTestRedis(t))
	ctx := context.Background()

	key := RaceResultsKey(2026, 5)
	if !store.Set(ctx, key, `{"round":5}`, time.Minute) {
		t.Fatal("Set failed")
	}

	val, ok := store.Get(ctx, key)
	if !ok {
		t.Fatal("Get reported a miss for an existing key")
	}
	if val != `{"round":5}` {
		t.Errorf("Get = %q, want %q", val, `{"round":5}`)
	}
}

func TestStore_Get_Miss(t *testing.T) {
	store := NewStore(setupTestRedis(t))

	if _, ok := store.Get(context.Background(), "race_results_1999_1"); ok {
		t.Error("Get reported a hit for an absent key")
	}
}

func TestStore_Set_RejectsNonPositiveTTL(t *testing.T) {
	store := NewStore(setupTestRedis(t))
	ctx := context.Background()

	if store.Set(ctx, "race_schedule_2026", "{}", 0) {
		t.Error("Set accepted a zero TTL")
	}
	if store.Set(ctx, "race_schedule_2026", "{}", -time.Minute) {
		t.Error("Set accepted a negative TTL")
	}
	if store.Exists(ctx, "race_schedule_2026") {
		t.Error("rejected write still created the key")
	}
}

func TestStore_TTLRemaining(t *testing.T) {
	client := setupTestRedis(t)
	store := NewStore(client)
	ctx := context.Background()

	store.Set(ctx, "race_results_2026_5", "{}", time.Hour)
	d, state := store.TTLRemaining(ctx, "race_results_2026_5")
	if state != TTLSet {
		t.Fatalf("state = %v, want TTLSet", state)
	}
	if d <= 0 || d > time.Hour {
		t.Errorf("remaining TTL = %v, want within (0, 1h]", d)
	}

	// A key written without expiry, as a foreign writer might.
	client.Set(ctx, "no_expiry_key", "{}", 0)
	if _, state := store.TTLRemaining(ctx, "no_expiry_key"); state != TTLNone {
		t.Errorf("state = %v, want TTLNone", state)
	}

	if _, state := store.TTLRemaining(ctx, "absent_key"); state != TTLMissing {
		t.Errorf("state = %v, want TTLMissing", state)
	}
}

func TestStore_DeleteMatching(t *testing.T) {
	store := NewStore(setupTestRedis(t))
	ctx := context.Background()

	store.Set(ctx, DriverStandingsKey(2026, 1), "{}", time.Minute)
	store.Set(ctx, DriverStandingsKey(2026, 2), "{}", time.Minute)
	store.Set(ctx, ScheduleKey(2026), "{}", time.Minute)

	if n := store.DeleteMatching(ctx, "driver_standings_*"); n != 2 {
		t.Errorf("DeleteMatching = %d, want 2", n)
	}
	if !store.Exists(ctx, ScheduleKey(2026)) {
		t.Error("DeleteMatching removed a key outside the pattern")
	}
}

func TestStore_PurgeAllAndStats(t *testing.T) {
	store := NewStore(setupTestRedis(t))
	ctx := context.Background()

	store.Set(ctx, DriverStandingsKey(2026, 1), "{}", time.Minute)
	store.Set(ctx, ScheduleKey(2026), "{}", time.Minute)
	store.Set(ctx, AvailableYearsKey(), "[]", time.Minute)

	stats := store.CollectStats(ctx)
	if stats.Total != 3 {
		t.Errorf("Total = %d, want 3", stats.Total)
	}
	if stats.Prefixes["driver_standings"] != 1 {
		t.Errorf("driver_standings count = %d, want 1", stats.Prefixes["driver_standings"])
	}
	if stats.Prefixes["race_schedule"] != 1 {
		t.Errorf("race_schedule count = %d, want 1", stats.Prefixes["race_schedule"])
	}

	if n := store.PurgeAll(ctx); n != 3 {
		t.Errorf("PurgeAll = %d, want 3", n)
	}
	if stats := store.CollectStats(ctx); stats.Total != 0 {
		t.Errorf("Total after purge = %d, want 0", stats.Total)
	}
}

// The store must degrade, not error, when Redis is unreachable.
func TestStore_DegradesWhenUnreachable(t *testing.T) {
	store := deadStore()
	ctx := context.Background()

	if _, ok := store.Get(ctx, "race_schedule_2026"); ok {
		t.Error("Get reported a hit with the store unreachable")
	}
	if store.Set(ctx, "race_schedule_2026", "{}", time.Minute) {
		t.Error("Set reported success with the store unreachable")
	}
	if store.Delete(ctx, "race_schedule_2026") {
		t.Error("Delete reported success with the store unreachable")
	}
	if store.Exists(ctx, "race_schedule_2026") {
		t.Error("Exists reported true with the store unreachable")
	}
	if _, state := store.TTLRemaining(ctx, "race_schedule_2026"); state != TTLMissing {
		t.Errorf("TTLRemaining state = %v, want TTLMissing", state)
	}
	if n := store.PurgeAll(ctx); n != 0 {
		t.Errorf("PurgeAll = %d, want 0", n)
	}
	if stats := store.CollectStats(ctx); stats.Total != 0 {
		t.Errorf("CollectStats total = %d, want 0", stats.Total)
	}
}
