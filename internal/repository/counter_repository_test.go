package repository_test

import (
	"sync"
	"testing"

	"github.com/aitoolhub/backend/internal/models"
	"github.com/aitoolhub/backend/internal/repository"
	"github.com/aitoolhub/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterNext_FreshNamespaceStartsAtOne(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	counters := repository.NewCounterRepository(testDB.DB)

	id, err := counters.Next(models.NamespaceTools)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "First allocation for a fresh namespace should return 1")
}

func TestCounterNext_SequentialAllocationsAreContiguous(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	counters := repository.NewCounterRepository(testDB.DB)

	for i := int64(1); i <= 10; i++ {
		id, err := counters.Next(models.NamespaceReviews)
		require.NoError(t, err)
		assert.Equal(t, i, id, "Allocations should be contiguous with no gaps")
	}
}

func TestCounterNext_NamespacesAreIndependent(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	counters := repository.NewCounterRepository(testDB.DB)

	for i := 0; i < 5; i++ {
		_, err := counters.Next(models.NamespaceTools)
		require.NoError(t, err)
	}

	id, err := counters.Next(models.NamespaceReviews)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id, "A namespace should not be advanced by allocations in another")

	id, err = counters.Next(models.NamespaceTools)
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)
}

func TestCounterNext_ConcurrentAllocationsAreDistinct(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	counters := repository.NewCounterRepository(testDB.DB)

	// Advance the counter so the test covers a non-fresh namespace too.
	last, err := counters.Next(models.NamespaceTools)
	require.NoError(t, err)

	const k = 50
	results := make(chan int64, k)
	var wg sync.WaitGroup

	for i := 0; i < k; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := counters.Next(models.NamespaceTools)
			assert.NoError(t, err)
			results <- id
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[int64]bool, k)
	for id := range results {
		assert.False(t, seen[id], "Duplicate ID allocated: %d", id)
		seen[id] = true
	}

	// Exactly {last+1, ..., last+k}: no duplicates, no gaps.
	require.Len(t, seen, k)
	for i := last + 1; i <= last+int64(k); i++ {
		assert.True(t, seen[i], "Missing ID in allocated range: %d", i)
	}
}
