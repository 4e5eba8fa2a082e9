package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterNext_Monotonic(t *testing.T) {
	db := newTestDB(t)
	counters := NewCounterRepository(db)
	ctx := context.Background()

	for want := int64(1); want <= 5; want++ {
		got, err := counters.Next(ctx, CollectionJobs)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestCounterNext_CollectionsIndependent(t *testing.T) {
	db := newTestDB(t)
	counters := NewCounterRepository(db)
	ctx := context.Background()

	jobID, err := counters.Next(ctx, CollectionJobs)
	require.NoError(t, err)
	userID, err := counters.Next(ctx, CollectionUsers)
	require.NoError(t, err)
	jobID2, err := counters.Next(ctx, CollectionJobs)
	require.NoError(t, err)

	assert.Equal(t, int64(1), jobID)
	assert.Equal(t, int64(1), userID)
	assert.Equal(t, int64(2), jobID2)
}

func TestMemoryCounterNext_ConcurrentUniqueness(t *testing.T) {
	t.Parallel()

	counters := NewMemoryStore().Counters()
	ctx := context.Background()

	const workers = 50
	const perWorker = 20

	var wg sync.WaitGroup
	ids := make(chan int64, workers*perWorker)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				id, err := counters.Next(ctx, CollectionApplications)
				assert.NoError(t, err)
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, workers*perWorker)
	var max int64
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d issued", id)
		seen[id] = true
		if id > max {
			max = id
		}
	}
	assert.Len(t, seen, workers*perWorker)
	assert.Equal(t, int64(workers*perWorker), max)
}
