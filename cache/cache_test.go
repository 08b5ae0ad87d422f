/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SchwabischesBauernbrot/firefish/feedstore/mock"
)

type profile struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheSetGet(t *testing.T) {
	kv := mock.NewKVStore()
	c := New[profile](kv, "profiles", time.Minute)
	ctx := context.Background()

	want := profile{Name: "ada", Count: 3}
	if err := c.Set(ctx, "u1", want); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := c.Get(ctx, "u1", false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected a hit")
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestCacheGetAbsent(t *testing.T) {
	kv := mock.NewKVStore()
	c := New[profile](kv, "profiles", time.Minute)

	_, ok, err := c.Get(context.Background(), "missing", false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected a miss for an absent key")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	kv := mock.NewKVStore().WithClock(func() time.Time { return now })
	c := New[profile](kv, "profiles", time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "u1", profile{Name: "ada"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Advance the simulated clock past the TTL.
	now = now.Add(2 * time.Minute)

	_, ok, err := c.Get(ctx, "u1", false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected a miss after TTL elapsed")
	}
}

func TestCacheGetRenew(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	kv := mock.NewKVStore().WithClock(func() time.Time { return now })
	c := New[profile](kv, "profiles", time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "u1", profile{Name: "ada"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	// Read with renew at 40s; the entry should then survive past the
	// original expiry.
	now = now.Add(40 * time.Second)
	if _, ok, err := c.Get(ctx, "u1", true); err != nil || !ok {
		t.Fatalf("Expected renewing hit, ok=%v err=%v", ok, err)
	}

	now = now.Add(50 * time.Second)
	_, ok, err := c.Get(ctx, "u1", false)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Error("Expected hit: renew should have reset the TTL")
	}
}

func TestCacheGetAll(t *testing.T) {
	kv := mock.NewKVStore()
	c := New[int](kv, "counters", time.Minute)
	ctx := context.Background()

	for i, key := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, key, i); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	all, err := c.GetAll(ctx, false)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(all))
	}
	if all["b"] != 1 {
		t.Errorf("Expected b=1, got %d", all["b"])
	}
}

func TestCacheFetchOrPopulate(t *testing.T) {
	kv := mock.NewKVStore()
	c := New[profile](kv, "profiles", time.Minute)
	ctx := context.Background()

	calls := 0
	producer := func(ctx context.Context) (profile, bool, error) {
		calls++
		return profile{Name: "ada"}, true, nil
	}

	t.Run("miss invokes producer and stores", func(t *testing.T) {
		got, ok, err := c.FetchOrPopulate(ctx, "u1", producer, false, nil)
		if err != nil {
			t.Fatalf("FetchOrPopulate failed: %v", err)
		}
		if !ok || got.Name != "ada" {
			t.Errorf("Expected produced value, got ok=%v %+v", ok, got)
		}
		if calls != 1 {
			t.Errorf("Expected 1 producer call, got %d", calls)
		}
	})

	t.Run("hit skips producer", func(t *testing.T) {
		_, ok, err := c.FetchOrPopulate(ctx, "u1", producer, false, nil)
		if err != nil || !ok {
			t.Fatalf("Expected hit, ok=%v err=%v", ok, err)
		}
		if calls != 1 {
			t.Errorf("Expected producer not to run on a hit, calls=%d", calls)
		}
	})

	t.Run("failing validity check forces repopulation", func(t *testing.T) {
		_, ok, err := c.FetchOrPopulate(ctx, "u1", producer, false, func(p profile) bool {
			return false
		})
		if err != nil || !ok {
			t.Fatalf("Expected repopulated value, ok=%v err=%v", ok, err)
		}
		if calls != 2 {
			t.Errorf("Expected producer to run again, calls=%d", calls)
		}
	})

	t.Run("absent producer result is not stored", func(t *testing.T) {
		_, ok, err := c.FetchOrPopulate(ctx, "u2", func(ctx context.Context) (profile, bool, error) {
			return profile{}, false, nil
		}, false, nil)
		if err != nil {
			t.Fatalf("FetchOrPopulate failed: %v", err)
		}
		if ok {
			t.Error("Expected absent result")
		}
		if _, hit, _ := c.Get(ctx, "u2", false); hit {
			t.Error("Absent result must not be cached")
		}
	})
}

func TestCacheStoreErrorIsNotAMiss(t *testing.T) {
	kv := mock.NewKVStore().WithGetError(fmt.Errorf("connection refused"))
	c := New[profile](kv, "profiles", time.Minute)

	calls := 0
	_, _, err := c.FetchOrPopulate(context.Background(), "u1", func(ctx context.Context) (profile, bool, error) {
		calls++
		return profile{}, true, nil
	}, false, nil)
	if err == nil {
		t.Fatal("Expected store error to propagate")
	}
	if calls != 0 {
		t.Error("Store unavailability must not be treated as a miss")
	}
}

func TestCacheDelete(t *testing.T) {
	kv := mock.NewKVStore()
	c := New[int](kv, "counters", time.Minute)
	ctx := context.Background()

	if err := c.Set(ctx, "a", 1); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete(ctx, "a", "not-there"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "a", false); ok {
		t.Error("Expected entry to be deleted")
	}
	// Empty input is a no-op.
	if err := c.Delete(ctx); err != nil {
		t.Fatalf("Delete with no keys failed: %v", err)
	}
}
