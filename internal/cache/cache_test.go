// TaskPulse - Team Task Management Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/taskpulse

package cache

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.t = f.t.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*TTL[string], *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[string](ttl)
	c.now = clock.Now
	return c, clock
}

func TestTTL_GetSet(t *testing.T) {
	c, _ := newTestCache(time.Minute)

	c.Set("key1", "value1")
	if v, ok := c.Get("key1"); !ok || v != "value1" {
		t.Errorf("Get(key1) = %q, %v; want value1, true", v, ok)
	}
	if _, ok := c.Get("key2"); ok {
		t.Error("Get(key2) should miss")
	}

	c.Set("key1", "value2")
	if v, _ := c.Get("key1"); v != "value2" {
		t.Errorf("Get(key1) after overwrite = %q, want value2", v)
	}
}

func TestTTL_Expiration(t *testing.T) {
	c, clock := newTestCache(time.Second)
	c.Set("key1", "value1")

	clock.Advance(999 * time.Millisecond)
	if _, ok := c.Get("key1"); !ok {
		t.Fatal("entry should still be live just before the TTL")
	}

	clock.Advance(time.Millisecond)
	if _, ok := c.Get("key1"); ok {
		t.Fatal("entry should expire exactly at the TTL")
	}

	if s := c.Stats(); s.Keys != 0 || s.Evictions != 1 {
		t.Errorf("Stats = %+v, want 0 keys and 1 eviction", s)
	}
}

func TestTTL_DeleteClearCleanup(t *testing.T) {
	c, clock := newTestCache(time.Second)

	c.Set("a", "1")
	c.Set("b", "2")
	c.Delete("a")
	c.Delete("missing")
	if _, ok := c.Get("a"); ok {
		t.Error("a should be deleted")
	}

	c.Clear()
	if s := c.Stats(); s.Keys != 0 {
		t.Errorf("Keys after Clear = %d, want 0", s.Keys)
	}

	c.Set("x", "1")
	clock.Advance(2 * time.Second)
	c.Set("y", "2")
	if removed := c.Cleanup(); removed != 1 {
		t.Errorf("Cleanup() = %d, want 1", removed)
	}
	if _, ok := c.Get("y"); !ok {
		t.Error("y should survive cleanup")
	}

	if s := c.Stats(); s.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3 (delete, clear, cleanup)", s.Evictions)
	}
}

func TestTTL_GetOrLoad(t *testing.T) {
	c, clock := newTestCache(time.Second)
	calls := 0
	load := func() (string, error) {
		calls++
		return "loaded", nil
	}

	v, hit, err := c.GetOrLoad("k", load)
	if err != nil || hit || v != "loaded" {
		t.Fatalf("first GetOrLoad = %q, %v, %v", v, hit, err)
	}
	v, hit, _ = c.GetOrLoad("k", load)
	if !hit || v != "loaded" || calls != 1 {
		t.Errorf("second GetOrLoad = %q, hit=%v, calls=%d; want cached", v, hit, calls)
	}

	clock.Advance(time.Second)
	if _, hit, _ = c.GetOrLoad("k", load); hit || calls != 2 {
		t.Errorf("after expiry hit=%v calls=%d, want reload", hit, calls)
	}

	loadErr := errors.New("boom")
	_, _, err = c.GetOrLoad("bad", func() (string, error) { return "", loadErr })
	if !errors.Is(err, loadErr) {
		t.Errorf("err = %v, want %v", err, loadErr)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("errors must not be cached")
	}
}

func TestStats_HitRate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	if rate := c.Stats().HitRate(); rate != 0 {
		t.Errorf("empty HitRate = %f, want 0", rate)
	}

	c.Set("k", "v")
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("missing")

	if rate := c.Stats().HitRate(); rate != 75 {
		t.Errorf("HitRate = %f, want 75", rate)
	}
}

func TestTTL_Concurrent(t *testing.T) {
	c := New[int](time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("worker-%d", n%4)
			for j := 0; j < 100; j++ {
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	if s := c.Stats(); s.Keys != 4 {
		t.Errorf("Keys = %d, want 4", s.Keys)
	}
}
