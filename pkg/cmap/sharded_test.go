package cmap

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
)

func TestNewWithShards(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{0, DefaultShardCount},  // invalid, falls back
		{-1, DefaultShardCount}, // invalid, falls back
		{3, DefaultShardCount},  // not a power of 2, falls back
		{1, 1},
		{4, 4},
		{64, 64},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("shards=%d", tt.input), func(t *testing.T) {
			m := NewWithShards[int](tt.input)
			if len(m.shards) != tt.expected {
				t.Errorf("shard count = %d, want %d", len(m.shards), tt.expected)
			}
		})
	}
}

func TestSetGetDelete(t *testing.T) {
	m := New[int]()

	m.Set("key1", 100)
	m.Set("key2", 200)

	if v, ok := m.Get("key1"); !ok || v != 100 {
		t.Errorf("Get(key1) = %d, %v; want 100, true", v, ok)
	}
	if _, ok := m.Get("nope"); ok {
		t.Error("Get on absent key reported present")
	}
	if m.Count() != 2 {
		t.Errorf("Count = %d, want 2", m.Count())
	}

	m.Delete("key1")
	if _, ok := m.Get("key1"); ok {
		t.Error("deleted key still present")
	}
}

func TestGetOrCompute(t *testing.T) {
	m := New[int]()
	var calls atomic.Int32

	compute := func() int {
		calls.Add(1)
		return 42
	}

	if v := m.GetOrCompute("k", compute); v != 42 {
		t.Errorf("first GetOrCompute = %d, want 42", v)
	}
	if v := m.GetOrCompute("k", compute); v != 42 {
		t.Errorf("second GetOrCompute = %d, want 42", v)
	}
	if calls.Load() != 1 {
		t.Errorf("compute ran %d times, want 1", calls.Load())
	}
}

func TestGetOrCompute_Concurrent(t *testing.T) {
	m := New[int]()
	var calls atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.GetOrCompute("shared", func() int {
				calls.Add(1)
				return 1
			})
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("compute ran %d times under contention, want 1", calls.Load())
	}
}

func TestRange(t *testing.T) {
	m := New[int]()
	for i := 0; i < 100; i++ {
		m.Set(fmt.Sprintf("key%d", i), i)
	}

	seen := 0
	m.Range(func(string, int) bool {
		seen++
		return true
	})
	if seen != 100 {
		t.Errorf("Range visited %d items, want 100", seen)
	}

	seen = 0
	m.Range(func(string, int) bool {
		seen++
		return seen < 10
	})
	if seen != 10 {
		t.Errorf("early-stop Range visited %d items, want 10", seen)
	}
}

func TestConcurrentAccess(t *testing.T) {
	m := New[int]()
	var wg sync.WaitGroup

	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key := fmt.Sprintf("g%d-k%d", g, i)
				m.Set(key, i)
				if v, ok := m.Get(key); !ok || v != i {
					t.Errorf("Get(%s) = %d, %v; want %d, true", key, v, ok, i)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	if m.Count() != 8*500 {
		t.Errorf("Count = %d, want %d", m.Count(), 8*500)
	}
}
