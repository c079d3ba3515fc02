package parallel

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForChunksCoversRangeExactlyOnce(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 8}
	const n = 1000

	var mu sync.Mutex
	seen := make([]int, n)
	ForChunks(n, cfg, func(start, end int) {
		mu.Lock()
		defer mu.Unlock()
		for i := start; i < end; i++ {
			seen[i]++
		}
	})

	for i, c := range seen {
		if c != 1 {
			t.Fatalf("index %d visited %d times", i, c)
		}
	}
}

func TestForChunksSequentialBelowCutoff(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 100}

	calls := 0
	ForChunks(50, cfg, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 50, end)
	})
	assert.Equal(t, 1, calls)
}

func TestForChunksDisabled(t *testing.T) {
	cfg := Config{Enabled: false, NumWorkers: 8, MinChunkSize: 1}

	calls := 0
	ForChunks(10_000, cfg, func(start, end int) { calls++ })
	assert.Equal(t, 1, calls)
}

func TestForChunksEmptyRange(t *testing.T) {
	called := false
	ForChunks(0, DefaultConfig(), func(start, end int) { called = true })
	assert.False(t, called)

	ForChunks(-3, DefaultConfig(), func(start, end int) { called = true })
	assert.False(t, called)
}

func TestFor(t *testing.T) {
	cfg := Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1}
	const n = 500

	var mu sync.Mutex
	sum := 0
	For(n, cfg, func(i int) {
		mu.Lock()
		sum += i
		mu.Unlock()
	})
	assert.Equal(t, n*(n-1)/2, sum)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Positive(t, cfg.NumWorkers)
	assert.Positive(t, cfg.MinChunkSize)
}
