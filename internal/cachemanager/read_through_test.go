package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/folashadea/Quantum-Entanglement-Network/internal/mocks"
)

func countingLoader(calls *int, id int) func(context.Context) (*cachedRecord, error) {
	return func(context.Context) (*cachedRecord, error) {
		*calls++
		return &cachedRecord{ID: id, Owner: "alice"}, nil
	}
}

func failingLoader(context.Context) (*cachedRecord, error) {
	return nil, errors.New("record store offline")
}

func TestReadThrough_Disabled(t *testing.T) {
	cache := mocks.NewMockCache[*cachedRecord](t)
	r := NewReadThrough[*cachedRecord](cache, time.Minute, true)
	var calls int

	got, err := r.Get(context.Background(), "key:1", countingLoader(&calls, 1))
	require.NoError(t, err)
	require.Equal(t, 1, got.ID)
	require.Equal(t, 1, calls)

	r.Put(context.Background(), "key:1", got)
	r.Invalidate(context.Background(), "key:1")
	cache.AssertNotCalled(t, "Touch", mock.Anything, mock.Anything, mock.Anything)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThrough_Hit(t *testing.T) {
	cache := mocks.NewMockCache[*cachedRecord](t)
	cached := &cachedRecord{ID: 1, Owner: "cached"}
	cache.On("Touch", mock.Anything, "key:1", time.Minute).Return(cached, true).Once()

	r := NewReadThrough[*cachedRecord](cache, time.Minute, false)
	got, err := r.Get(context.Background(), "key:1", failingLoader)
	require.NoError(t, err)
	require.Same(t, cached, got)
}

func TestReadThrough_MissLoadsAndStores(t *testing.T) {
	cache := mocks.NewMockCache[*cachedRecord](t)
	cache.On("Touch", mock.Anything, "key:2", time.Minute).Return(nil, false).Once()
	cache.On("Set", mock.Anything, "key:2", &cachedRecord{ID: 2, Owner: "alice"}, time.Minute).Once()

	r := NewReadThrough[*cachedRecord](cache, time.Minute, false)
	var calls int
	got, err := r.Get(context.Background(), "key:2", countingLoader(&calls, 2))
	require.NoError(t, err)
	require.Equal(t, 2, got.ID)
	require.Equal(t, 1, calls)
}

func TestReadThrough_LoadErrorIsNotCached(t *testing.T) {
	cache := mocks.NewMockCache[*cachedRecord](t)
	cache.On("Touch", mock.Anything, "key:3", time.Minute).Return(nil, false).Once()

	r := NewReadThrough[*cachedRecord](cache, time.Minute, false)
	_, err := r.Get(context.Background(), "key:3", failingLoader)
	require.EqualError(t, err, "record store offline")
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReadThrough_WithMemory(t *testing.T) {
	ctx := context.Background()
	r := NewReadThrough[*cachedRecord](newRecords(), time.Minute, false)
	var calls int

	for i := 0; i < 3; i++ {
		got, err := r.Get(ctx, "key:1", countingLoader(&calls, 1))
		require.NoError(t, err)
		require.Equal(t, 1, got.ID)
	}
	require.Equal(t, 1, calls, "only the first read reaches the loader")

	r.Put(ctx, "key:1", &cachedRecord{ID: 1, Owner: "bob"})
	got, err := r.Get(ctx, "key:1", failingLoader)
	require.NoError(t, err)
	require.Equal(t, "bob", got.Owner)

	r.Invalidate(ctx, "key:1")
	_, err = r.Get(ctx, "key:1", countingLoader(&calls, 1))
	require.NoError(t, err)
	require.Equal(t, 2, calls)
}
