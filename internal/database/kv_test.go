package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type counter struct {
	Value int `json:"value"`
}

func openTestKV(t *testing.T) *KVStore {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := OpenKV(KVConfig{Dir: t.TempDir()}, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenKV_RequiresDir(t *testing.T) {
	store, err := OpenKV(KVConfig{}, nil)
	assert.Nil(t, store)
	assert.Error(t, err)
}

func TestKVStore_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CommitIsVisible", func(t *testing.T) {
		store := openTestKV(t)

		err := store.WithTx(ctx, func(ctx context.Context) error {
			return store.Update(ctx, func(txn *badger.Txn) error {
				return SetJSON(txn, "counter/a", counter{Value: 7})
			})
		})
		require.NoError(t, err)

		var got counter
		err = store.View(ctx, func(txn *badger.Txn) error {
			found, err := GetJSON(txn, "counter/a", &got)
			assert.True(t, found)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 7, got.Value)
	})

	t.Run("Error_DiscardOnFailure", func(t *testing.T) {
		store := openTestKV(t)
		fnErr := errors.New("boom")

		err := store.WithTx(ctx, func(ctx context.Context) error {
			if err := store.Update(ctx, func(txn *badger.Txn) error {
				return SetJSON(txn, "counter/b", counter{Value: 1})
			}); err != nil {
				return err
			}
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)

		err = store.View(ctx, func(txn *badger.Txn) error {
			found, err := Exists(txn, "counter/b")
			assert.False(t, found)
			return err
		})
		assert.NoError(t, err)
	})

	t.Run("Success_ConflictingWritersAreSerialized", func(t *testing.T) {
		store := openTestKV(t)
		const writers = 25

		var g errgroup.Group
		for i := 0; i < writers; i++ {
			g.Go(func() error {
				return store.WithTx(ctx, func(ctx context.Context) error {
					return store.Update(ctx, func(txn *badger.Txn) error {
						var c counter
						if _, err := GetJSON(txn, "counter/c", &c); err != nil {
							return err
						}
						c.Value++
						return SetJSON(txn, "counter/c", c)
					})
				})
			})
		}
		require.NoError(t, g.Wait())

		var got counter
		require.NoError(t, store.View(ctx, func(txn *badger.Txn) error {
			_, err := GetJSON(txn, "counter/c", &got)
			return err
		}))
		assert.Equal(t, writers, got.Value)
	})

	t.Run("Success_HighFanOutNeverSurfacesConflicts", func(t *testing.T) {
		store := openTestKV(t)
		const writers = 400

		var g errgroup.Group
		for i := 0; i < writers; i++ {
			g.Go(func() error {
				return store.Update(ctx, func(txn *badger.Txn) error {
					var c counter
					if _, err := GetJSON(txn, "counter/hot", &c); err != nil {
						return err
					}
					c.Value++
					return SetJSON(txn, "counter/hot", c)
				})
			})
		}
		require.NoError(t, g.Wait())

		var got counter
		require.NoError(t, store.View(ctx, func(txn *badger.Txn) error {
			_, err := GetJSON(txn, "counter/hot", &got)
			return err
		}))
		assert.Equal(t, writers, got.Value)
	})

	t.Run("Error_OtherErrorsAreNotRetried", func(t *testing.T) {
		store := openTestKV(t)
		fnErr := errors.New("validation failed")
		attempts := 0

		err := store.WithTx(ctx, func(ctx context.Context) error {
			attempts++
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)
		assert.Equal(t, 1, attempts)
	})

	t.Run("Error_ConflictsStopAtTheOperationTimeout", func(t *testing.T) {
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		store, err := OpenKV(KVConfig{Dir: t.TempDir(), Timeout: 50 * time.Millisecond}, logger)
		require.NoError(t, err)
		t.Cleanup(func() { _ = store.Close() })

		attempts := 0
		started := time.Now()
		err = store.Update(ctx, func(txn *badger.Txn) error {
			attempts++
			var c counter
			if _, err := GetJSON(txn, "counter/contended", &c); err != nil {
				return err
			}
			// A competing writer commits after our read, so our commit always conflicts.
			if err := store.db.Update(func(other *badger.Txn) error {
				return SetJSON(other, "counter/contended", counter{Value: attempts})
			}); err != nil {
				return err
			}
			return SetJSON(txn, "counter/contended", counter{Value: -1})
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "kept conflicting")
		assert.True(t, errors.Is(err, badger.ErrConflict) || errors.Is(err, context.DeadlineExceeded))
		assert.Greater(t, attempts, 1)
		assert.Less(t, time.Since(started), 5*time.Second)
	})
}

func TestScanPrefix(t *testing.T) {
	ctx := context.Background()
	store := openTestKV(t)

	require.NoError(t, store.Update(ctx, func(txn *badger.Txn) error {
		for i := 0; i < 5; i++ {
			if err := SetJSON(txn, fmt.Sprintf("items/%02d", i), counter{Value: i}); err != nil {
				return err
			}
		}
		return SetJSON(txn, "other/00", counter{Value: 100})
	}))

	collect := func(reverse bool, offset, limit int) []int {
		var values []int
		require.NoError(t, store.View(ctx, func(txn *badger.Txn) error {
			return ScanPrefix(txn, "items/", reverse, offset, limit, func(_, value []byte) error {
				var c counter
				if err := json.Unmarshal(value, &c); err != nil {
					return err
				}
				values = append(values, c.Value)
				return nil
			})
		}))
		return values
	}

	assert.Equal(t, []int{0, 1, 2, 3, 4}, collect(false, 0, 0))
	assert.Equal(t, []int{4, 3, 2, 1, 0}, collect(true, 0, 0))
	assert.Equal(t, []int{3, 2}, collect(true, 1, 2))
	assert.Equal(t, []int{4}, collect(false, 4, 10))
}

func TestKVStore_PingContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := OpenKV(KVConfig{InMemory: true}, logger)
	require.NoError(t, err)

	assert.NoError(t, store.PingContext(context.Background()))

	require.NoError(t, store.Close())
	assert.ErrorIs(t, store.PingContext(context.Background()), ErrKVClosed)
}

func TestSetJSONWithExpiry(t *testing.T) {
	store := openTestKV(t)
	ctx := context.Background()

	err := store.Update(ctx, func(txn *badger.Txn) error {
		if err := SetJSONWithExpiry(txn, "live", counter{Value: 1}, time.Now().Add(time.Hour)); err != nil {
			return err
		}
		return SetJSONWithExpiry(txn, "dead", counter{Value: 2}, time.Now().Add(-time.Hour))
	})
	require.NoError(t, err)

	err = store.View(ctx, func(txn *badger.Txn) error {
		var c counter
		found, err := GetJSON(txn, "live", &c)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, 1, c.Value)

		found, err = GetJSON(txn, "dead", &c)
		require.NoError(t, err)
		assert.False(t, found)
		return nil
	})
	require.NoError(t, err)
}
