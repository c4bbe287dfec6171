package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastBatchConfig(workers int) Config {
	cfg := DefaultConfig()
	cfg.BatchWorkers = workers
	cfg.BatchPacing = time.Millisecond
	return cfg
}

func TestAnalyzeMany_PerItemIndependence(t *testing.T) {
	o := New(healthyCatalog(), healthyOwnership(), nil, fastBatchConfig(1))

	// A bad id in the middle never fails the batch.
	items := o.AnalyzeMany(context.Background(), []int{620, -1, 440}, DefaultOptions())
	require.Len(t, items, 3)

	assert.NoError(t, items[0].Err)
	assert.NotNil(t, items[0].Result)

	assert.ErrorIs(t, items[1].Err, ErrInvalidAppID)
	assert.Nil(t, items[1].Result)

	assert.NoError(t, items[2].Err)
	assert.Equal(t, 440, items[2].AppID)
}

func TestAnalyzeMany_PreservesInputOrder(t *testing.T) {
	o := New(healthyCatalog(), healthyOwnership(), nil, fastBatchConfig(4))

	ids := []int{10, 20, 30, 40, 50, 60}
	items := o.AnalyzeMany(context.Background(), ids, DefaultOptions())
	require.Len(t, items, len(ids))
	for i, item := range items {
		assert.Equal(t, ids[i], item.AppID)
	}
}

func TestAnalyzeMany_Empty(t *testing.T) {
	o := New(healthyCatalog(), healthyOwnership(), nil, fastBatchConfig(2))
	assert.Empty(t, o.AnalyzeMany(context.Background(), nil, DefaultOptions()))
}

func TestAnalyzeMany_CancelledContext(t *testing.T) {
	o := New(healthyCatalog(), healthyOwnership(), nil, fastBatchConfig(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	items := o.AnalyzeMany(ctx, []int{1, 2, 3}, DefaultOptions())
	require.Len(t, items, 3)
	// Every undispatched item settles with the context error.
	for _, item := range items[1:] {
		if item.Err != nil {
			assert.ErrorIs(t, item.Err, context.Canceled)
		}
	}
}
