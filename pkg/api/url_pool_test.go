package api

import (
	"sync"
	"testing"
)

func TestURLPool_SingleURL(t *testing.T) {
	pool := NewURLPool("https://metrics.example.com/v1/keywords")

	if pool.Size() != 1 {
		t.Errorf("Expected size 1, got %d", pool.Size())
	}
	for i := 0; i < 5; i++ {
		if got := pool.Next(); got != "https://metrics.example.com/v1/keywords" {
			t.Errorf("Unexpected endpoint %s", got)
		}
	}
}

func TestURLPool_RoundRobinAndCleanup(t *testing.T) {
	pool := NewURLPool(" https://m1.example.com/ , ,https://m2.example.com,https://m3.example.com ")

	expected := []string{"https://m1.example.com", "https://m2.example.com", "https://m3.example.com"}
	if pool.Size() != 3 {
		t.Fatalf("Expected size 3, got %d (%v)", pool.Size(), pool.URLs())
	}
	for i := 0; i < 6; i++ {
		if got := pool.Next(); got != expected[i%3] {
			t.Errorf("At iteration %d, expected %s, got %s", i, expected[i%3], got)
		}
	}
}

func TestURLPool_Empty(t *testing.T) {
	pool := NewURLPool("")

	if !pool.IsEmpty() {
		t.Error("Expected empty pool")
	}
	if pool.Next() != "" {
		t.Error("Expected empty string from empty pool")
	}
}

func TestURLPool_ConcurrentNext(t *testing.T) {
	pool := NewURLPool("https://m1.example.com,https://m2.example.com")

	var wg sync.WaitGroup
	results := make([]string, 64)
	for i := range results {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			results[index] = pool.Next()
		}(i)
	}
	wg.Wait()

	counts := make(map[string]int)
	for _, u := range results {
		counts[u]++
	}
	if counts["https://m1.example.com"] != 32 || counts["https://m2.example.com"] != 32 {
		t.Errorf("Expected an even split, got %v", counts)
	}
}
