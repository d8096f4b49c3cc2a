package kvstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryBackend_Contract(t *testing.T) {
	testBackendContract(t, NewMemoryBackend())
}

func TestMemoryBackend_ConcurrentWrites(t *testing.T) {
	b := NewMemoryBackend()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = b.Set(ctx, fmt.Sprintf("key_%d", i), "v")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, b.Len())
}
